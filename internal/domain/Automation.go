package domain

import "time"

type AutomationStatus string

const (
	AutomationStatusActive  AutomationStatus = "active"
	AutomationStatusPaused  AutomationStatus = "paused"
	AutomationStatusDeleted AutomationStatus = "deleted"
)

type Automation struct {
	ID            string            `json:"id"`
	MotherAccount SocialAccount     `json:"mother_account"`
	ChildAccounts []ChildAccount    `json:"child_accounts"`
	Strategy      Strategy          `json:"strategy"`
	Status        AutomationStatus  `json:"status"`
	Metrics       AutomationMetrics `json:"metrics"`
	StartedAt     time.Time         `json:"started_at"`
	PausedAt      *time.Time        `json:"paused_at,omitempty"`
	ResumedAt     *time.Time        `json:"resumed_at,omitempty"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type AutomationMetrics struct {
	ActionsPerformed int          `json:"actions_performed"`
	FailedActions    int          `json:"failed_actions"`
	TransientRetries int          `json:"transient_retries"`
	SuccessRate      float64      `json:"success_rate"`
	LastActionAt     *time.Time   `json:"last_action_at,omitempty"`
	Errors           []ErrorEntry `json:"errors"`
}

type ErrorKind string

const (
	ErrorKindPermanent ErrorKind = "permanent"
	ErrorKindQuota     ErrorKind = "quota"
)

type ErrorEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Kind      ErrorKind `json:"kind"`
	ActionID  string    `json:"action_id,omitempty"`
	Message   string    `json:"message"`
}

// Child procura uma conta filha pelo ID
func (a *Automation) Child(accountID string) (ChildAccount, bool) {
	for _, child := range a.ChildAccounts {
		if child.ID == accountID {
			return child, true
		}
	}
	return ChildAccount{}, false
}

// Clone devolve uma cópia profunda, usada como snapshot para leitores externos
func (a *Automation) Clone() *Automation {
	if a == nil {
		return nil
	}

	c := *a
	c.ChildAccounts = make([]ChildAccount, len(a.ChildAccounts))
	for i, child := range a.ChildAccounts {
		c.ChildAccounts[i] = child
		if child.Profile.Frequency != nil {
			freq := make(map[string]int, len(child.Profile.Frequency))
			for k, v := range child.Profile.Frequency {
				freq[k] = v
			}
			c.ChildAccounts[i].Profile.Frequency = freq
		}
	}

	c.Strategy.TargetHashtags = append([]string(nil), a.Strategy.TargetHashtags...)
	c.Strategy.ContentTypes = append([]string(nil), a.Strategy.ContentTypes...)
	if a.Strategy.ActionRatios != nil {
		ratios := make(map[string]float64, len(a.Strategy.ActionRatios))
		for k, v := range a.Strategy.ActionRatios {
			ratios[k] = v
		}
		c.Strategy.ActionRatios = ratios
	}

	c.Metrics = a.Metrics.Clone()
	c.PausedAt = cloneTime(a.PausedAt)
	c.ResumedAt = cloneTime(a.ResumedAt)
	return &c
}

func (m AutomationMetrics) Clone() AutomationMetrics {
	c := m
	c.Errors = append([]ErrorEntry(nil), m.Errors...)
	c.LastActionAt = cloneTime(m.LastActionAt)
	return c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
