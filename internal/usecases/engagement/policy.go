package engagement

import (
	"github.com/vfg2006/engagement-automation-api/internal/domain"
	"github.com/vfg2006/engagement-automation-api/pkg/utils"
)

// EngagementPolicy decide se uma conta filha engaja com um conteúdo e com qual tom
type EngagementPolicy interface {
	ShouldEngage(profile domain.EngagementProfile, engagementType string) bool
	Voice(profile domain.EngagementProfile) domain.EngagementStyle
}

type Policy struct {
	rnd utils.Random
}

func NewPolicy(rnd utils.Random) *Policy {
	if rnd == nil {
		rnd = utils.NewTimeSeededRandom()
	}
	return &Policy{rnd: rnd}
}

// ShouldEngage sorteia um valor uniforme em [0,100) e engaja quando ele não passa da frequência do perfil.
// Tipos sem frequência configurada nunca engajam.
func (p *Policy) ShouldEngage(profile domain.EngagementProfile, engagementType string) bool {
	freq, ok := profile.Frequency[engagementType]
	if !ok || freq <= 0 {
		return false
	}
	if freq >= 100 {
		return true
	}

	return p.rnd.Float64()*100 <= float64(freq)
}

func (p *Policy) Voice(profile domain.EngagementProfile) domain.EngagementStyle {
	if profile.EngagementStyle == "" {
		return domain.EngagementStyleNeutral
	}
	return profile.EngagementStyle
}
