package domain

import "time"

type InteractionRecord struct {
	AccountID string     `json:"account_id"`
	Platform  Platform   `json:"platform"`
	ContentID string     `json:"content_id"`
	Type      ActionType `json:"type"`
	Timestamp time.Time  `json:"timestamp"`
}
