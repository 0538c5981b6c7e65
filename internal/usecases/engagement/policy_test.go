package engagement

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/engagement-automation-api/internal/domain"
	"github.com/vfg2006/engagement-automation-api/pkg/utils"
)

func TestPolicy_ShouldEngageMatchesFrequency(t *testing.T) {
	const trials = 20000

	tests := []struct {
		name      string
		frequency int
	}{
		{name: "10 por cento", frequency: 10},
		{name: "35 por cento", frequency: 35},
		{name: "50 por cento", frequency: 50},
		{name: "90 por cento", frequency: 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := NewPolicy(utils.NewRandom(uint64(tt.frequency)))
			profile := domain.EngagementProfile{
				Frequency: map[string]int{domain.EngageLike: tt.frequency},
			}

			hits := 0
			for i := 0; i < trials; i++ {
				if policy.ShouldEngage(profile, domain.EngageLike) {
					hits++
				}
			}

			observed := float64(hits) / trials * 100
			assert.LessOrEqual(t, math.Abs(observed-float64(tt.frequency)), 2.0,
				"frequência observada %.2f%% longe demais de %d%%", observed, tt.frequency)
		})
	}
}

func TestPolicy_ShouldEngageEdges(t *testing.T) {
	policy := NewPolicy(utils.NewRandom(1))
	profile := domain.EngagementProfile{
		Frequency: map[string]int{
			domain.EngageLike:    0,
			domain.EngageComment: 100,
		},
	}

	for i := 0; i < 1000; i++ {
		assert.False(t, policy.ShouldEngage(profile, domain.EngageLike))
		assert.True(t, policy.ShouldEngage(profile, domain.EngageComment))
		assert.False(t, policy.ShouldEngage(profile, domain.EngageFollow), "tipo sem frequência não engaja")
	}
}

func TestPolicy_Voice(t *testing.T) {
	policy := NewPolicy(utils.NewRandom(1))

	assert.Equal(t, domain.EngagementStyleNeutral, policy.Voice(domain.EngagementProfile{}))
	assert.Equal(t, domain.EngagementStyleHumorous, policy.Voice(domain.EngagementProfile{EngagementStyle: domain.EngagementStyleHumorous}))
}
