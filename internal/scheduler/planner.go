package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/engagement-automation-api/internal/domain"
	"github.com/vfg2006/engagement-automation-api/internal/usecases/engagement"
	"github.com/vfg2006/engagement-automation-api/pkg/utils"
)

//go:generate mockgen -source=planner.go -destination=mocks/planner_mock.go -package=mocks

// AnalyticsProvider sugere os melhores horários de publicação de uma conta
type AnalyticsProvider interface {
	OptimalPostingTimes(ctx context.Context, account domain.SocialAccount) ([]domain.TimeSlot, error)
}

// PlannerConfig representa os limites e janelas usados no planejamento das ações
type PlannerConfig struct {
	MaxActionsPerDay      int
	MaxInteractionsPerDay int
	MinInteractionDelay   time.Duration
	PostJitter            time.Duration
	EngageJitter          time.Duration
	AmplifyDelay          time.Duration
	DefaultPostsPerDay    int
	Location              *time.Location
}

// ActionScheduler calcula as ações de uma automação para uma janela de tempo
type ActionScheduler struct {
	config    PlannerConfig
	analytics AnalyticsProvider
	policy    engagement.EngagementPolicy
	rnd       utils.Random
	clock     utils.Clock
}

func NewActionScheduler(
	config PlannerConfig,
	analytics AnalyticsProvider,
	policy engagement.EngagementPolicy,
	rnd utils.Random,
	clock utils.Clock,
) *ActionScheduler {
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.DefaultPostsPerDay <= 0 {
		config.DefaultPostsPerDay = 3
	}
	if clock == nil {
		clock = utils.SystemClock
	}
	if rnd == nil {
		rnd = utils.NewTimeSeededRandom()
	}
	if policy == nil {
		policy = engagement.NewPolicy(rnd)
	}

	return &ActionScheduler{
		config:    config,
		analytics: analytics,
		policy:    policy,
		rnd:       rnd,
		clock:     clock,
	}
}

// Validate confere a estratégia contra os limites globais
func (s *ActionScheduler) Validate(strategy domain.Strategy) error {
	if strategy.ActionsPerDay <= 0 {
		return fmt.Errorf("%w: actions_per_day deve ser positivo", domain.ErrStrategyInvalid)
	}
	if strategy.ActionsPerDay > s.config.MaxActionsPerDay {
		return fmt.Errorf("%w: actions_per_day %d acima do máximo %d",
			domain.ErrStrategyInvalid, strategy.ActionsPerDay, s.config.MaxActionsPerDay)
	}
	if strategy.InteractionDelay < s.config.MinInteractionDelay {
		return fmt.Errorf("%w: interaction_delay %s abaixo do mínimo %s",
			domain.ErrStrategyInvalid, strategy.InteractionDelay, s.config.MinInteractionDelay)
	}
	for kind, ratio := range strategy.ActionRatios {
		if ratio < 0 {
			return fmt.Errorf("%w: proporção negativa para %q", domain.ErrStrategyInvalid, kind)
		}
	}
	return nil
}

// Plan gera as ações da automação com vencimento base dentro de [from, to).
// Nada é enfileirado aqui; uma estratégia inválida não produz nenhuma ação.
func (s *ActionScheduler) Plan(ctx context.Context, automation *domain.Automation, from, to time.Time) ([]*domain.Action, error) {
	if err := s.Validate(automation.Strategy); err != nil {
		return nil, err
	}
	if !from.Before(to) {
		return nil, nil
	}

	now := s.clock.Now()
	actions := make([]*domain.Action, 0)

	posts, err := s.planPosts(ctx, automation, from, to, now)
	if err != nil {
		return nil, err
	}
	actions = append(actions, posts...)

	for _, post := range posts {
		for _, child := range automation.ChildAccounts {
			amplify, err := s.planAmplify(automation, post, child, now)
			if err != nil {
				return nil, err
			}
			actions = append(actions, amplify)
		}
	}

	engagements, err := s.planEngagements(automation, automation.MotherAccount, nil, from, to, now)
	if err != nil {
		return nil, err
	}
	actions = append(actions, engagements...)

	for i := range automation.ChildAccounts {
		child := automation.ChildAccounts[i]
		engagements, err := s.planEngagements(automation, child.SocialAccount, &child, from, to, now)
		if err != nil {
			return nil, err
		}
		actions = append(actions, engagements...)
	}

	logrus.WithFields(logrus.Fields{
		"automation_id": automation.ID,
		"from":          from.Format(time.RFC3339),
		"to":            to.Format(time.RFC3339),
		"posts":         len(posts),
		"actions":       len(actions),
	}).Debug("Ações planejadas para a janela")

	return actions, nil
}

func (s *ActionScheduler) planPosts(ctx context.Context, automation *domain.Automation, from, to, now time.Time) ([]*domain.Action, error) {
	slots := s.postingSlots(ctx, automation)

	posts := make([]*domain.Action, 0)
	for day := utils.StartOfDay(from, s.config.Location); day.Before(to); day = day.AddDate(0, 0, 1) {
		for _, slot := range slots {
			base := time.Date(day.Year(), day.Month(), day.Day(), slot.Hour, slot.Minute, 0, 0, s.config.Location)
			if base.Before(from) || !base.Before(to) {
				continue
			}

			post, err := s.newAction(automation, domain.ActionTypePost, automation.MotherAccount, now)
			if err != nil {
				return nil, err
			}
			post.DueAt = base.Add(utils.Jitter(s.rnd, s.config.PostJitter))
			post.Hashtag = s.pickHashtag(automation.Strategy)
			posts = append(posts, post)
		}
	}

	return posts, nil
}

// postingSlots usa os horários da análise de audiência e recorre a horários espaçados
// igualmente quando ela não responde.
func (s *ActionScheduler) postingSlots(ctx context.Context, automation *domain.Automation) []domain.TimeSlot {
	if s.analytics != nil {
		slots, err := s.analytics.OptimalPostingTimes(ctx, automation.MotherAccount)
		if err == nil && len(slots) > 0 {
			return slots
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"automation_id": automation.ID,
				"account_id":    automation.MotherAccount.ID,
				"error":         err.Error(),
			}).Warn("Análise de horários indisponível, usando horários padrão")
		}
	}

	return DefaultTimeSlots(s.config.DefaultPostsPerDay)
}

// DefaultTimeSlots distribui n horários igualmente ao longo do dia, no meio de cada intervalo
func DefaultTimeSlots(n int) []domain.TimeSlot {
	if n <= 0 {
		return nil
	}

	interval := 24 * time.Hour / time.Duration(n)
	slots := make([]domain.TimeSlot, 0, n)
	for i := 0; i < n; i++ {
		offset := time.Duration(i)*interval + interval/2
		slots = append(slots, domain.TimeSlot{
			Hour:   int(offset / time.Hour),
			Minute: int((offset % time.Hour) / time.Minute),
		})
	}
	return slots
}

func (s *ActionScheduler) planAmplify(automation *domain.Automation, post *domain.Action, child domain.ChildAccount, now time.Time) (*domain.Action, error) {
	amplify, err := s.newAction(automation, domain.ActionTypeAmplify, child.SocialAccount, now)
	if err != nil {
		return nil, err
	}

	mother := automation.MotherAccount
	amplify.IsChild = true
	amplify.TargetAccount = &mother
	amplify.DependsOn = post.ID
	amplify.Voice = s.policy.Voice(child.Profile)
	amplify.DueAt = post.DueAt.Add(s.config.AmplifyDelay + utils.Jitter(s.rnd, s.config.EngageJitter))

	// A amplificação nunca pode vencer antes da publicação original
	if !amplify.DueAt.After(post.DueAt) {
		amplify.DueAt = post.DueAt.Add(s.config.MinInteractionDelay)
	}

	return amplify, nil
}

func (s *ActionScheduler) planEngagements(
	automation *domain.Automation,
	account domain.SocialAccount,
	child *domain.ChildAccount,
	from, to, now time.Time,
) ([]*domain.Action, error) {
	perDay := automation.Strategy.ActionsPerDay
	if s.config.MaxInteractionsPerDay > 0 && perDay > s.config.MaxInteractionsPerDay {
		perDay = s.config.MaxInteractionsPerDay
	}
	if perDay <= 0 {
		return nil, nil
	}

	interval := 24 * time.Hour / time.Duration(perDay)
	if interval < automation.Strategy.InteractionDelay {
		interval = automation.Strategy.InteractionDelay
	}

	types := automation.MotherAccount.Platform.EngagementTypes()
	if len(types) == 0 {
		return nil, nil
	}

	actions := make([]*domain.Action, 0)
	for base := from.Add(interval / 2); base.Before(to); base = base.Add(interval) {
		kind := s.pickEngagementType(types, automation.Strategy.ActionRatios)

		action, err := s.newAction(automation, domain.EngageActionType(kind), account, now)
		if err != nil {
			return nil, err
		}
		action.DueAt = base.Add(utils.Jitter(s.rnd, s.config.EngageJitter))
		action.Hashtag = s.pickHashtag(automation.Strategy)

		if child != nil {
			mother := automation.MotherAccount
			action.IsChild = true
			action.TargetAccount = &mother
			action.Voice = s.policy.Voice(child.Profile)
		}

		actions = append(actions, action)
	}

	return actions, nil
}

// pickEngagementType sorteia o tipo de engajamento, ponderado pelas proporções da estratégia
// quando existirem para os tipos aceitos pela plataforma.
func (s *ActionScheduler) pickEngagementType(types []string, ratios map[string]float64) string {
	total := 0.0
	for _, kind := range types {
		total += ratios[kind]
	}
	if total <= 0 {
		return types[s.rnd.IntN(len(types))]
	}

	draw := s.rnd.Float64() * total
	for _, kind := range types {
		draw -= ratios[kind]
		if draw < 0 {
			return kind
		}
	}
	return types[len(types)-1]
}

func (s *ActionScheduler) pickHashtag(strategy domain.Strategy) string {
	if len(strategy.TargetHashtags) == 0 {
		return ""
	}
	return strategy.TargetHashtags[s.rnd.IntN(len(strategy.TargetHashtags))]
}

func (s *ActionScheduler) newAction(automation *domain.Automation, actionType domain.ActionType, account domain.SocialAccount, now time.Time) (*domain.Action, error) {
	id, err := utils.GenerateActionID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar ID da ação: %w", err)
	}

	return &domain.Action{
		ID:            id,
		Type:          actionType,
		AutomationID:  automation.ID,
		Platform:      automation.MotherAccount.Platform,
		ActingAccount: account,
		CreatedAt:     now,
	}, nil
}
