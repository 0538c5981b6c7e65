package domain

type SocialAccount struct {
	ID         string   `json:"id"`
	Platform   Platform `json:"platform"`
	ExternalID string   `json:"external_id"`
	UserID     string   `json:"user_id"`
	Username   string   `json:"username,omitempty"`
}

type ChildAccount struct {
	SocialAccount
	Profile EngagementProfile `json:"profile"`
}
