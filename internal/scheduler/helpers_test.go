package scheduler

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vfg2006/engagement-automation-api/internal/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type failingJournal struct{}

func (failingJournal) SaveActions([]*domain.Action) error    { return errors.New("connection refused") }
func (failingJournal) DeleteAction(string) error             { return errors.New("connection refused") }
func (failingJournal) DeleteByAutomation(string) error       { return errors.New("connection refused") }
func (failingJournal) ListPending() ([]*domain.Action, error) { return nil, errors.New("connection refused") }

func testAction(id, automationID string, due time.Time) *domain.Action {
	return &domain.Action{
		ID:            id,
		Type:          domain.EngageActionType(domain.EngageLike),
		AutomationID:  automationID,
		Platform:      domain.PlatformTwitter,
		ActingAccount: domain.SocialAccount{ID: "mother", Platform: domain.PlatformTwitter},
		DueAt:         due,
		CreatedAt:     due,
	}
}

func testActions(automationID string, n int, due time.Time) []*domain.Action {
	actions := make([]*domain.Action, 0, n)
	for i := 0; i < n; i++ {
		actions = append(actions, testAction(fmt.Sprintf("%s-act-%d", automationID, i), automationID, due.Add(time.Duration(i)*time.Minute)))
	}
	return actions
}

func testAutomation(id string, status domain.AutomationStatus) *domain.Automation {
	mother := domain.SocialAccount{ID: "mother", Platform: domain.PlatformTwitter, ExternalID: "m-1", UserID: "user-1"}
	return &domain.Automation{
		ID:            id,
		MotherAccount: mother,
		ChildAccounts: []domain.ChildAccount{
			{
				SocialAccount: domain.SocialAccount{ID: "child-1", Platform: domain.PlatformTwitter, ExternalID: "c-1"},
				Profile: domain.EngagementProfile{
					EngagementStyle: domain.EngagementStyleSupportive,
					Frequency: map[string]int{
						domain.EngageLike:    100,
						domain.EngageComment: 0,
					},
				},
			},
		},
		Strategy: domain.Strategy{
			ActionsPerDay:    10,
			InteractionDelay: 5 * time.Minute,
			TargetHashtags:   []string{"golang"},
		},
		Status: status,
	}
}
