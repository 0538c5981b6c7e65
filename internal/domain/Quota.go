package domain

import "time"

// QuotaState representa o consumo de uma plataforma em um dia do fuso de reset
type QuotaState struct {
	Platform Platform `json:"platform"`
	Day      string   `json:"day"`
	Used     int      `json:"used"`
	Limit    int      `json:"limit"`
}

type QuotaStatus struct {
	Platform  Platform  `json:"platform"`
	Used      int       `json:"used"`
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
}
