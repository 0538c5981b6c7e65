package domain

import "fmt"

type EngagementStyle string

const (
	EngagementStyleSupportive EngagementStyle = "supportive"
	EngagementStyleCritical   EngagementStyle = "critical"
	EngagementStyleNeutral    EngagementStyle = "neutral"
	EngagementStyleHumorous   EngagementStyle = "humorous"
)

type EngagementProfile struct {
	Personality     string          `json:"personality"`
	EngagementStyle EngagementStyle `json:"engagement_style"`
	// Frequency é a probabilidade (0-100) de um conteúdo receber cada tipo de engajamento
	Frequency map[string]int `json:"frequency"`
}

func (p EngagementProfile) Validate() error {
	switch p.EngagementStyle {
	case "", EngagementStyleSupportive, EngagementStyleCritical, EngagementStyleNeutral, EngagementStyleHumorous:
	default:
		return fmt.Errorf("engagement style %q is not supported", p.EngagementStyle)
	}

	for kind, freq := range p.Frequency {
		if freq < 0 || freq > 100 {
			return fmt.Errorf("frequency for %q must be between 0 and 100, got %d", kind, freq)
		}
	}

	return nil
}
