package domain

// TimeSlot é um horário do dia (no fuso de agendamento) sugerido pela análise de audiência
type TimeSlot struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// PlatformResult é o retorno de uma ação executada na plataforma
type PlatformResult struct {
	ContentID string `json:"content_id"`
	Status    string `json:"status"`
}
