package platformdomain

import "time"

// AccountRef identifica uma conta no gateway
type AccountRef struct {
	ID         string `json:"id"`
	ExternalID string `json:"external_id"`
	Username   string `json:"username,omitempty"`
}

// ActionRequest é o corpo enviado ao gateway para executar uma ação
type ActionRequest struct {
	ActionID        string      `json:"action_id"`
	Type            string      `json:"type"`
	EngagementKind  string      `json:"engagement_kind,omitempty"`
	Account         AccountRef  `json:"account"`
	TargetAccount   *AccountRef `json:"target_account,omitempty"`
	TargetContentID string      `json:"target_content_id,omitempty"`
	Hashtag         string      `json:"hashtag,omitempty"`
	Voice           string      `json:"voice,omitempty"`
	ScheduledFor    time.Time   `json:"scheduled_for"`
}

// ActionResponse é o retorno do gateway para uma ação aceita
type ActionResponse struct {
	ContentID string `json:"content_id"`
	Status    string `json:"status"`
}
