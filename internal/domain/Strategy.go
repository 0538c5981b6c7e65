package domain

import "time"

type Strategy struct {
	ActionsPerDay    int                `json:"actions_per_day"`
	InteractionDelay time.Duration      `json:"interaction_delay"`
	TargetHashtags   []string           `json:"target_hashtags"`
	ContentTypes     []string           `json:"content_types"`
	ActionRatios     map[string]float64 `json:"action_ratios,omitempty"`
}
