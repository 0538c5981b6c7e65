package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/engagement-automation-api/internal/domain"
	"github.com/vfg2006/engagement-automation-api/internal/scheduler/mocks"
	"github.com/vfg2006/engagement-automation-api/internal/usecases/engagement"
	"github.com/vfg2006/engagement-automation-api/pkg/utils"
	"go.uber.org/mock/gomock"
)

func testPlannerConfig() PlannerConfig {
	return PlannerConfig{
		MaxActionsPerDay:      100,
		MaxInteractionsPerDay: 100,
		MinInteractionDelay:   60 * time.Second,
		PostJitter:            15 * time.Minute,
		EngageJitter:          5 * time.Minute,
		AmplifyDelay:          30 * time.Minute,
		DefaultPostsPerDay:    3,
		Location:              time.UTC,
	}
}

func newTestPlanner(config PlannerConfig, analytics AnalyticsProvider, now time.Time) *ActionScheduler {
	rnd := utils.NewRandom(99)
	return NewActionScheduler(config, analytics, engagement.NewPolicy(rnd), rnd, newFakeClock(now))
}

func TestActionScheduler_Validate(t *testing.T) {
	planner := newTestPlanner(testPlannerConfig(), nil, time.Now())

	tests := []struct {
		name     string
		strategy domain.Strategy
		wantErr  bool
	}{
		{
			name:     "Estratégia válida com atraso de 300s",
			strategy: domain.Strategy{ActionsPerDay: 10, InteractionDelay: 300 * time.Second},
		},
		{
			name:     "Atraso igual ao mínimo é aceito",
			strategy: domain.Strategy{ActionsPerDay: 10, InteractionDelay: 60 * time.Second},
		},
		{
			name:     "Atraso abaixo do mínimo",
			strategy: domain.Strategy{ActionsPerDay: 10, InteractionDelay: 10 * time.Second},
			wantErr:  true,
		},
		{
			name:     "Ações por dia acima do máximo global",
			strategy: domain.Strategy{ActionsPerDay: 101, InteractionDelay: 300 * time.Second},
			wantErr:  true,
		},
		{
			name:     "Ações por dia zeradas",
			strategy: domain.Strategy{ActionsPerDay: 0, InteractionDelay: 300 * time.Second},
			wantErr:  true,
		},
		{
			name: "Proporção negativa",
			strategy: domain.Strategy{
				ActionsPerDay:    10,
				InteractionDelay: 300 * time.Second,
				ActionRatios:     map[string]float64{domain.EngageLike: -1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := planner.Validate(tt.strategy)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrStrategyInvalid)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestActionScheduler_PlanInvalidStrategyProducesNothing(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	planner := newTestPlanner(testPlannerConfig(), nil, from)

	automation := testAutomation("auto-1", domain.AutomationStatusActive)
	automation.Strategy.InteractionDelay = 10 * time.Second

	actions, err := planner.Plan(context.Background(), automation, from, from.Add(24*time.Hour))
	assert.ErrorIs(t, err, domain.ErrStrategyInvalid)
	assert.Empty(t, actions)
}

func TestActionScheduler_PlanRespectsJitterAndOrdering(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	config := testPlannerConfig()

	analytics := mocks.NewMockAnalyticsProvider(ctrl)
	analytics.EXPECT().
		OptimalPostingTimes(gomock.Any(), gomock.Any()).
		Return([]domain.TimeSlot{{Hour: 9, Minute: 0}, {Hour: 18, Minute: 30}}, nil)

	planner := newTestPlanner(config, analytics, from)
	automation := testAutomation("auto-1", domain.AutomationStatusActive)

	actions, err := planner.Plan(context.Background(), automation, from, from.Add(24*time.Hour))
	require.NoError(t, err)

	postBases := []time.Time{from.Add(9 * time.Hour), from.Add(18*time.Hour + 30*time.Minute)}
	posts := map[string]*domain.Action{}
	amplifies := make([]*domain.Action, 0)
	engagements := map[string][]*domain.Action{}

	for _, action := range actions {
		assert.Equal(t, "auto-1", action.AutomationID)
		assert.Equal(t, domain.PlatformTwitter, action.Platform)
		assert.NotEmpty(t, action.ID)

		switch {
		case action.Type == domain.ActionTypePost:
			posts[action.ID] = action
			assert.False(t, action.IsChild)
			matched := false
			for _, base := range postBases {
				if absDuration(action.DueAt.Sub(base)) <= config.PostJitter {
					matched = true
				}
			}
			assert.True(t, matched, "publicação fora da janela de jitter: %s", action.DueAt)
		case action.Type == domain.ActionTypeAmplify:
			amplifies = append(amplifies, action)
		case action.Type.IsEngagement():
			engagements[action.ActingAccount.ID] = append(engagements[action.ActingAccount.ID], action)
			assert.Contains(t, domain.PlatformTwitter.EngagementTypes(), action.Type.EngagementKind())
		default:
			t.Fatalf("tipo inesperado %s", action.Type)
		}
	}

	require.Len(t, posts, 2)
	require.Len(t, amplifies, 2)
	for _, amplify := range amplifies {
		post, ok := posts[amplify.DependsOn]
		require.True(t, ok)
		assert.True(t, amplify.DueAt.After(post.DueAt), "amplificação antes da publicação")
		assert.LessOrEqual(t, absDuration(amplify.DueAt.Sub(post.DueAt)-config.AmplifyDelay), config.EngageJitter)
		assert.True(t, amplify.IsChild)
		assert.Equal(t, "child-1", amplify.ActingAccount.ID)
		assert.Equal(t, "mother", amplify.TargetAccount.ID)
		assert.Equal(t, domain.EngagementStyleSupportive, amplify.Voice)
	}

	interval := 24 * time.Hour / 10
	for _, account := range []string{"mother", "child-1"} {
		planned := engagements[account]
		require.Len(t, planned, 10, "conta %s", account)
		for i, action := range planned {
			base := from.Add(time.Duration(i)*interval + interval/2)
			assert.LessOrEqual(t, absDuration(action.DueAt.Sub(base)), config.EngageJitter)
			assert.Equal(t, "golang", action.Hashtag)
		}
	}
	assert.True(t, engagements["child-1"][0].IsChild)
	assert.Nil(t, engagements["mother"][0].TargetAccount)
}

func TestActionScheduler_PlanFallsBackToDefaultSlots(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	analytics := mocks.NewMockAnalyticsProvider(ctrl)
	analytics.EXPECT().
		OptimalPostingTimes(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("analytics offline"))

	planner := newTestPlanner(testPlannerConfig(), analytics, from)
	actions, err := planner.Plan(context.Background(), testAutomation("auto-1", domain.AutomationStatusActive), from, from.Add(24*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, 3, countType(actions, domain.ActionTypePost))
}

func TestActionScheduler_PlanScalesWithWindow(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	planner := newTestPlanner(testPlannerConfig(), nil, from)

	actions, err := planner.Plan(context.Background(), testAutomation("auto-1", domain.AutomationStatusActive), from, from.Add(12*time.Hour))
	require.NoError(t, err)

	// Horários padrão 04:00 e 12:00... apenas 04:00 cabe antes das 12:00
	assert.Equal(t, 1, countType(actions, domain.ActionTypePost))
	assert.Equal(t, 1, countType(actions, domain.ActionTypeAmplify))

	engagementsPerAccount := map[string]int{}
	for _, action := range actions {
		if action.Type.IsEngagement() {
			engagementsPerAccount[action.ActingAccount.ID]++
		}
	}
	assert.Equal(t, 5, engagementsPerAccount["mother"])
	assert.Equal(t, 5, engagementsPerAccount["child-1"])

	empty, err := planner.Plan(context.Background(), testAutomation("auto-1", domain.AutomationStatusActive), from, from)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestActionScheduler_PlanBoundedByMaxInteractions(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	config := testPlannerConfig()
	config.MaxInteractionsPerDay = 4
	planner := newTestPlanner(config, nil, from)

	actions, err := planner.Plan(context.Background(), testAutomation("auto-1", domain.AutomationStatusActive), from, from.Add(24*time.Hour))
	require.NoError(t, err)

	mother := 0
	for _, action := range actions {
		if action.Type.IsEngagement() && action.ActingAccount.ID == "mother" {
			mother++
		}
	}
	assert.Equal(t, 4, mother)
}

func TestActionScheduler_PlanUsesActionRatios(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	planner := newTestPlanner(testPlannerConfig(), nil, from)

	automation := testAutomation("auto-1", domain.AutomationStatusActive)
	automation.Strategy.ActionRatios = map[string]float64{domain.EngageFollow: 1}

	actions, err := planner.Plan(context.Background(), automation, from, from.Add(24*time.Hour))
	require.NoError(t, err)

	for _, action := range actions {
		if action.Type.IsEngagement() {
			assert.Equal(t, domain.EngageFollow, action.Type.EngagementKind())
		}
	}
}

func TestDefaultTimeSlots(t *testing.T) {
	assert.Equal(t, []domain.TimeSlot{{Hour: 4}, {Hour: 12}, {Hour: 20}}, DefaultTimeSlots(3))
	assert.Equal(t, []domain.TimeSlot{{Hour: 2, Minute: 24}, {Hour: 7, Minute: 12}, {Hour: 12}, {Hour: 16, Minute: 48}, {Hour: 21, Minute: 36}}, DefaultTimeSlots(5))
	assert.Nil(t, DefaultTimeSlots(0))
}

func countType(actions []*domain.Action, actionType domain.ActionType) int {
	count := 0
	for _, action := range actions {
		if action.Type == actionType {
			count++
		}
	}
	return count
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
