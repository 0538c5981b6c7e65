package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/engagement-automation-api/infrastructure/quotastore"
	"github.com/vfg2006/engagement-automation-api/infrastructure/repository/memory"
	"github.com/vfg2006/engagement-automation-api/internal/domain"
	"github.com/vfg2006/engagement-automation-api/internal/scheduler/mocks"
	"github.com/vfg2006/engagement-automation-api/internal/usecases/engagement"
	usecasemetrics "github.com/vfg2006/engagement-automation-api/internal/usecases/metrics"
	"github.com/vfg2006/engagement-automation-api/internal/usecases/quota"
	"github.com/vfg2006/engagement-automation-api/pkg/utils"
	"go.uber.org/mock/gomock"
)

type staticLookup struct {
	mu          sync.Mutex
	automations map[string]*domain.Automation
	// afterLookup roda uma única vez depois da próxima leitura
	afterLookup func()
}

func (l *staticLookup) Lookup(id string) (*domain.Automation, bool) {
	l.mu.Lock()
	automation, ok := l.automations[id]
	hook := l.afterLookup
	l.afterLookup = nil
	l.mu.Unlock()

	if hook != nil {
		hook()
	}
	if !ok {
		return nil, false
	}
	return automation.Clone(), true
}

func (l *staticLookup) onNextLookup(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.afterLookup = fn
}

func (l *staticLookup) set(automation *domain.Automation) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.automations[automation.ID] = automation
}

func (l *staticLookup) remove(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.automations, id)
}

type dispatcherFixture struct {
	dispatcher   *Dispatcher
	queue        *ActionQueue
	journal      *memory.ActionStore
	lookup       *staticLookup
	quota        *quota.Service
	recorder     *usecasemetrics.Recorder
	interactions *memory.InteractionStore
	client       *mocks.MockPlatformClient
	clock        *fakeClock
}

func testDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		Tick:                  time.Second,
		Workers:               1,
		RetryBaseDelay:        30 * time.Second,
		RetryMaxDelay:         30 * time.Minute,
		RetryMaxAttempts:      5,
		RecheckInterval:       time.Minute,
		ActionRelevanceWindow: 24 * time.Hour,
		MaxInteractionsPerDay: 100,
		Location:              time.UTC,
	}
}

func newDispatcherFixture(t *testing.T, config DispatcherConfig, limits map[domain.Platform]int) *dispatcherFixture {
	ctrl := gomock.NewController(t)

	clock := newFakeClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	journal := memory.NewActionStore()
	queue := NewActionQueue(journal)
	lookup := &staticLookup{automations: map[string]*domain.Automation{}}
	if limits == nil {
		limits = map[domain.Platform]int{domain.PlatformTwitter: 10000}
	}
	quotaService := quota.NewService(quotastore.NewMemoryStore(), limits, time.UTC, clock)
	recorder := usecasemetrics.NewRecorder(100)
	interactions := memory.NewInteractionStore()
	client := mocks.NewMockPlatformClient(ctrl)

	dispatcher := NewDispatcher(
		config,
		queue,
		lookup,
		quotaService,
		engagement.NewPolicy(utils.NewRandom(7)),
		client,
		recorder,
		interactions,
		nil,
		clock,
	)

	return &dispatcherFixture{
		dispatcher:   dispatcher,
		queue:        queue,
		journal:      journal,
		lookup:       lookup,
		quota:        quotaService,
		recorder:     recorder,
		interactions: interactions,
		client:       client,
		clock:        clock,
	}
}

func (f *dispatcherFixture) register(automation *domain.Automation) {
	if automation.Status == domain.AutomationStatusPaused {
		f.queue.MarkPaused(automation.ID)
	}
	f.lookup.set(automation)
	f.recorder.Register(automation.ID, domain.AutomationMetrics{})
}

func (f *dispatcherFixture) metrics(t *testing.T, automationID string) domain.AutomationMetrics {
	snapshot, ok := f.recorder.Snapshot(automationID)
	require.True(t, ok)
	return snapshot
}

func TestDispatcher_ExecutesDueAction(t *testing.T) {
	f := newDispatcherFixture(t, testDispatcherConfig(), nil)
	f.register(testAutomation("auto-1", domain.AutomationStatusActive))

	action := testAction("act-1", "auto-1", f.clock.Now())
	require.NoError(t, f.queue.Push(action, testAction("act-2", "auto-1", f.clock.Now().Add(time.Hour))))

	f.client.EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a *domain.Action) (*domain.PlatformResult, error) {
			assert.Equal(t, "act-1", a.ID)
			return &domain.PlatformResult{ContentID: "tweet-1", Status: "ok"}, nil
		})

	assert.Equal(t, 1, f.dispatcher.Tick(context.Background()))

	metrics := f.metrics(t, "auto-1")
	assert.Equal(t, 1, metrics.ActionsPerformed)
	assert.Equal(t, 1.0, metrics.SuccessRate)

	count, err := f.interactions.CountSince("mother", domain.PlatformTwitter, utils.StartOfDay(f.clock.Now(), time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	status, err := f.quota.Status(context.Background(), domain.PlatformTwitter)
	require.NoError(t, err)
	assert.Equal(t, 50, status.Used)

	pending, err := f.journal.ListPending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "act-2", pending[0].ID)
}

func TestDispatcher_PausedAutomationParksAndResumeReadmits(t *testing.T) {
	f := newDispatcherFixture(t, testDispatcherConfig(), nil)
	automation := testAutomation("auto-1", domain.AutomationStatusPaused)
	f.register(automation)

	require.NoError(t, f.queue.Push(testAction("act-1", "auto-1", f.clock.Now())))

	// Pausada: nenhuma chamada à plataforma
	f.dispatcher.Tick(context.Background())
	assert.Equal(t, 1, f.queue.Pending("auto-1"))
	assert.Equal(t, 0, f.queue.Len())

	f.clock.Advance(3 * time.Hour)
	f.dispatcher.Tick(context.Background())

	resumed := automation.Clone()
	resumed.Status = domain.AutomationStatusActive
	f.lookup.set(resumed)
	f.queue.Unpark("auto-1", f.clock.Now())

	f.client.EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		Return(&domain.PlatformResult{ContentID: "like-1"}, nil)

	// Primeiro tick após a retomada executa a ação vencida durante a pausa
	assert.Equal(t, 1, f.dispatcher.Tick(context.Background()))
	assert.Equal(t, 1, f.metrics(t, "auto-1").ActionsPerformed)
}

func TestDispatcher_ResumeBetweenLookupAndParkKeepsAction(t *testing.T) {
	f := newDispatcherFixture(t, testDispatcherConfig(), nil)
	automation := testAutomation("auto-1", domain.AutomationStatusPaused)
	f.register(automation)

	require.NoError(t, f.queue.Push(testAction("act-1", "auto-1", f.clock.Now())))

	// O dispatcher lê o status pausado e a retomada acontece antes de estacionar
	f.lookup.onNextLookup(func() {
		resumed := automation.Clone()
		resumed.Status = domain.AutomationStatusActive
		f.lookup.set(resumed)
		f.queue.Unpark("auto-1", f.clock.Now())
	})
	f.dispatcher.Tick(context.Background())
	assert.Equal(t, 1, f.queue.Len(), "a ação volta para a fila em vez de ficar estacionada")

	f.client.EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		Return(&domain.PlatformResult{ContentID: "like-1"}, nil)

	f.clock.Advance(48 * time.Hour)
	assert.Equal(t, 1, f.dispatcher.Tick(context.Background()))
	assert.Equal(t, 1, f.metrics(t, "auto-1").ActionsPerformed)
	assert.Equal(t, 0, f.queue.Pending("auto-1"))
}

func TestDispatcher_DeletedAutomationPerformsNothing(t *testing.T) {
	f := newDispatcherFixture(t, testDispatcherConfig(), nil)
	f.register(testAutomation("auto-1", domain.AutomationStatusActive))

	require.NoError(t, f.queue.Push(testActions("auto-1", 5, f.clock.Now())...))

	_, err := f.queue.RemoveAutomation("auto-1")
	require.NoError(t, err)
	f.lookup.remove("auto-1")

	// O mock falha o teste se Execute for chamado
	for i := 0; i < 3; i++ {
		f.clock.Advance(time.Hour)
		assert.Equal(t, 0, f.dispatcher.Tick(context.Background()))
	}

	pending, err := f.journal.ListPending()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestDispatcher_DropsActionsOfUnknownAutomation(t *testing.T) {
	f := newDispatcherFixture(t, testDispatcherConfig(), nil)
	require.NoError(t, f.queue.Push(testActions("ghost", 3, f.clock.Now())...))

	f.clock.Advance(time.Hour)
	assert.Equal(t, 3, f.dispatcher.Tick(context.Background()))
	assert.Equal(t, 0, f.queue.Pending("ghost"))
}

func TestDispatcher_TransientFailuresThenSuccess(t *testing.T) {
	f := newDispatcherFixture(t, testDispatcherConfig(), nil)
	f.register(testAutomation("auto-1", domain.AutomationStatusActive))
	require.NoError(t, f.queue.Push(testAction("act-1", "auto-1", f.clock.Now())))

	gomock.InOrder(
		f.client.EXPECT().
			Execute(gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("%w: rate limited", domain.ErrPlatformTransient)).
			Times(3),
		f.client.EXPECT().
			Execute(gomock.Any(), gomock.Any()).
			Return(&domain.PlatformResult{ContentID: "like-1"}, nil),
	)

	start := f.clock.Now()
	delays := []time.Duration{}
	for i := 0; i < 4; i++ {
		f.dispatcher.Tick(context.Background())
		if last, ok := f.queue.LastDue("auto-1"); ok {
			delays = append(delays, last.Sub(f.clock.Now()))
		}
		f.clock.Advance(time.Hour)
	}

	// Backoff exponencial a partir de 30s
	assert.Equal(t, []time.Duration{30 * time.Second, time.Minute, 2 * time.Minute}, delays)
	assert.True(t, f.clock.Now().After(start))

	metrics := f.metrics(t, "auto-1")
	assert.Equal(t, 1, metrics.ActionsPerformed)
	assert.Equal(t, 0, metrics.FailedActions)
	assert.Equal(t, 3, metrics.TransientRetries)
	assert.Empty(t, metrics.Errors)

	// A cota só fica cobrada pela execução bem sucedida
	status, err := f.quota.Status(context.Background(), domain.PlatformTwitter)
	require.NoError(t, err)
	assert.Equal(t, 50, status.Used)
}

func TestDispatcher_TransientFailuresExhaustRetries(t *testing.T) {
	config := testDispatcherConfig()
	config.RetryMaxAttempts = 2
	f := newDispatcherFixture(t, config, nil)
	f.register(testAutomation("auto-1", domain.AutomationStatusActive))
	require.NoError(t, f.queue.Push(testAction("act-1", "auto-1", f.clock.Now())))

	f.client.EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		Return(nil, context.DeadlineExceeded).
		Times(3)

	for i := 0; i < 5; i++ {
		f.dispatcher.Tick(context.Background())
		f.clock.Advance(time.Hour)
	}

	metrics := f.metrics(t, "auto-1")
	assert.Equal(t, 2, metrics.TransientRetries)
	assert.Equal(t, 1, metrics.FailedActions)
	require.Len(t, metrics.Errors, 1)
	assert.Equal(t, domain.ErrorKindPermanent, metrics.Errors[0].Kind)
	assert.Equal(t, 0, f.queue.Pending("auto-1"))

	status, err := f.quota.Status(context.Background(), domain.PlatformTwitter)
	require.NoError(t, err)
	assert.Equal(t, 0, status.Used)
}

func TestDispatcher_PermanentFailureIsRecordedAndDropped(t *testing.T) {
	f := newDispatcherFixture(t, testDispatcherConfig(), nil)
	f.register(testAutomation("auto-1", domain.AutomationStatusActive))
	require.NoError(t, f.queue.Push(testAction("act-1", "auto-1", f.clock.Now())))

	f.client.EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("%w: account suspended", domain.ErrPlatformPermanent))

	f.dispatcher.Tick(context.Background())
	f.clock.Advance(time.Hour)
	f.dispatcher.Tick(context.Background())

	metrics := f.metrics(t, "auto-1")
	assert.Equal(t, 1, metrics.ActionsPerformed)
	assert.Equal(t, 1, metrics.FailedActions)
	assert.Equal(t, 0.0, metrics.SuccessRate)
	require.Len(t, metrics.Errors, 1)
	assert.Equal(t, "act-1", metrics.Errors[0].ActionID)
	assert.Contains(t, metrics.Errors[0].Message, "account suspended")
}

func TestDispatcher_QuotaUnavailableRequeuesThenDiscards(t *testing.T) {
	f := newDispatcherFixture(t, testDispatcherConfig(), map[domain.Platform]int{domain.PlatformTwitter: 10})
	f.register(testAutomation("auto-1", domain.AutomationStatusActive))
	require.NoError(t, f.queue.Push(testAction("act-1", "auto-1", f.clock.Now())))

	f.dispatcher.Tick(context.Background())

	var deferred *domain.Action
	f.queue.Each("auto-1", func(a *domain.Action) { deferred = a })
	require.NotNil(t, deferred)
	assert.Equal(t, 1, deferred.QuotaDeferrals)
	assert.Equal(t, f.clock.Now().Add(time.Minute), deferred.DueAt)
	assert.Empty(t, f.metrics(t, "auto-1").Errors)

	// Depois da janela de relevância a ação é descartada com erro de cota
	f.clock.Advance(25 * time.Hour)
	f.dispatcher.Tick(context.Background())

	assert.Equal(t, 0, f.queue.Pending("auto-1"))
	metrics := f.metrics(t, "auto-1")
	require.Len(t, metrics.Errors, 1)
	assert.Equal(t, domain.ErrorKindQuota, metrics.Errors[0].Kind)
	assert.Equal(t, "quota exhausted", metrics.Errors[0].Message)
}

func TestDispatcher_ChildPolicyDecidesEngagement(t *testing.T) {
	f := newDispatcherFixture(t, testDispatcherConfig(), nil)
	f.register(testAutomation("auto-1", domain.AutomationStatusActive))

	child := domain.SocialAccount{ID: "child-1", Platform: domain.PlatformTwitter}
	comment := testAction("comment", "auto-1", f.clock.Now())
	comment.Type = domain.EngageActionType(domain.EngageComment)
	comment.ActingAccount = child
	comment.IsChild = true

	like := testAction("like", "auto-1", f.clock.Now())
	like.ActingAccount = child
	like.IsChild = true

	require.NoError(t, f.queue.Push(comment, like))

	// Frequência 0 para comentários e 100 para curtidas
	f.client.EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a *domain.Action) (*domain.PlatformResult, error) {
			assert.Equal(t, "like", a.ID)
			assert.Equal(t, domain.EngagementStyleSupportive, a.Voice)
			return &domain.PlatformResult{}, nil
		})

	f.dispatcher.Tick(context.Background())

	metrics := f.metrics(t, "auto-1")
	assert.Equal(t, 1, metrics.ActionsPerformed)
	assert.Empty(t, metrics.Errors)
}

func TestDispatcher_DailyInteractionCap(t *testing.T) {
	config := testDispatcherConfig()
	config.MaxInteractionsPerDay = 3
	config.Workers = 4
	f := newDispatcherFixture(t, config, nil)
	f.register(testAutomation("auto-1", domain.AutomationStatusActive))

	actions := make([]*domain.Action, 0, 10)
	for i := 0; i < 10; i++ {
		actions = append(actions, testAction(fmt.Sprintf("act-%d", i), "auto-1", f.clock.Now()))
	}
	require.NoError(t, f.queue.Push(actions...))

	var executed atomic.Int32
	f.client.EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *domain.Action) (*domain.PlatformResult, error) {
			executed.Add(1)
			time.Sleep(5 * time.Millisecond)
			return &domain.PlatformResult{}, nil
		}).
		AnyTimes()

	f.dispatcher.Tick(context.Background())

	assert.Equal(t, int32(3), executed.Load())
	count, err := f.interactions.CountSince("mother", domain.PlatformTwitter, utils.StartOfDay(f.clock.Now(), time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 0, f.queue.Pending("auto-1"))
}

func TestDispatcher_AmplifyWaitsForPost(t *testing.T) {
	f := newDispatcherFixture(t, testDispatcherConfig(), nil)
	f.register(testAutomation("auto-1", domain.AutomationStatusActive))

	now := f.clock.Now()
	post := testAction("post-1", "auto-1", now)
	post.Type = domain.ActionTypePost

	mother := post.ActingAccount
	amplify := testAction("amp-1", "auto-1", now)
	amplify.Type = domain.ActionTypeAmplify
	amplify.ActingAccount = domain.SocialAccount{ID: "child-1", Platform: domain.PlatformTwitter}
	amplify.IsChild = true
	amplify.TargetAccount = &mother
	amplify.DependsOn = post.ID

	require.NoError(t, f.queue.Push(post, amplify))

	gomock.InOrder(
		f.client.EXPECT().
			Execute(gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("%w: 503", domain.ErrPlatformTransient)),
		f.client.EXPECT().
			Execute(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, a *domain.Action) (*domain.PlatformResult, error) {
				assert.Equal(t, "post-1", a.ID)
				return &domain.PlatformResult{ContentID: "video-9"}, nil
			}),
		f.client.EXPECT().
			Execute(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, a *domain.Action) (*domain.PlatformResult, error) {
				assert.Equal(t, "amp-1", a.ID)
				assert.Equal(t, "video-9", a.TargetContentID)
				return &domain.PlatformResult{}, nil
			}),
	)

	// Publicação falha transitoriamente e a amplificação aguarda
	f.dispatcher.Tick(context.Background())
	assert.Equal(t, 2, f.queue.Pending("auto-1"))

	f.clock.Advance(time.Hour)
	f.dispatcher.Tick(context.Background())

	assert.Equal(t, 0, f.queue.Pending("auto-1"))
	assert.Equal(t, 2, f.metrics(t, "auto-1").ActionsPerformed)
}

func TestDispatcher_AmplifyOfDroppedPostIsDropped(t *testing.T) {
	f := newDispatcherFixture(t, testDispatcherConfig(), nil)
	f.register(testAutomation("auto-1", domain.AutomationStatusActive))

	mother := domain.SocialAccount{ID: "mother", Platform: domain.PlatformTwitter}
	amplify := testAction("amp-1", "auto-1", f.clock.Now())
	amplify.Type = domain.ActionTypeAmplify
	amplify.ActingAccount = domain.SocialAccount{ID: "child-1", Platform: domain.PlatformTwitter}
	amplify.IsChild = true
	amplify.TargetAccount = &mother
	amplify.DependsOn = "post-descartado"

	require.NoError(t, f.queue.Push(amplify))

	// Nenhuma chamada à plataforma: o mock falha se Execute for chamado
	assert.Equal(t, 1, f.dispatcher.Tick(context.Background()))
	assert.Equal(t, 0, f.queue.Pending("auto-1"))
	assert.Equal(t, 0, f.metrics(t, "auto-1").ActionsPerformed)

	status, err := f.quota.Status(context.Background(), domain.PlatformTwitter)
	require.NoError(t, err)
	assert.Equal(t, 0, status.Used)
}

func TestDispatcher_RefundAfterMidnightReturnsToChargedDay(t *testing.T) {
	f := newDispatcherFixture(t, testDispatcherConfig(), map[domain.Platform]int{domain.PlatformTwitter: 100})
	f.register(testAutomation("auto-1", domain.AutomationStatusActive))

	f.clock.Advance(11*time.Hour + 59*time.Minute)
	require.NoError(t, f.queue.Push(testAction("act-1", "auto-1", f.clock.Now())))

	f.client.EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *domain.Action) (*domain.PlatformResult, error) {
			// A chamada termina depois da meia-noite e já há consumo no dia novo
			f.clock.Advance(2 * time.Minute)
			_, err := f.quota.Deduct(context.Background(), domain.PlatformTwitter, 50)
			assert.NoError(t, err)
			return nil, fmt.Errorf("%w: 403", domain.ErrPlatformPermanent)
		})

	f.dispatcher.Tick(context.Background())

	status, err := f.quota.Status(context.Background(), domain.PlatformTwitter)
	require.NoError(t, err)
	assert.Equal(t, 50, status.Used, "a devolução não libera cota do dia novo")
}

func TestDispatcher_ShutdownDuringCallRequeuesWithoutAttempt(t *testing.T) {
	f := newDispatcherFixture(t, testDispatcherConfig(), nil)
	f.register(testAutomation("auto-1", domain.AutomationStatusActive))
	require.NoError(t, f.queue.Push(testAction("act-1", "auto-1", f.clock.Now())))

	ctx, cancel := context.WithCancel(context.Background())
	f.client.EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(callCtx context.Context, _ *domain.Action) (*domain.PlatformResult, error) {
			cancel()
			return nil, callCtx.Err()
		})

	f.dispatcher.Tick(ctx)

	assert.Equal(t, 1, f.queue.Pending("auto-1"))
	assert.Equal(t, 0, f.metrics(t, "auto-1").TransientRetries)

	pending, err := f.journal.ListPending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 0, pending[0].Attempts)

	status, err := f.quota.Status(context.Background(), domain.PlatformTwitter)
	require.NoError(t, err)
	assert.Equal(t, 0, status.Used, "a cobrança é devolvida mesmo com o contexto cancelado")
}

func TestDispatcher_ResultOfDeletedAutomationIsDiscarded(t *testing.T) {
	f := newDispatcherFixture(t, testDispatcherConfig(), nil)
	f.register(testAutomation("auto-1", domain.AutomationStatusActive))
	require.NoError(t, f.queue.Push(testAction("act-1", "auto-1", f.clock.Now())))

	f.client.EXPECT().
		Execute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *domain.Action) (*domain.PlatformResult, error) {
			f.lookup.remove("auto-1")
			return &domain.PlatformResult{ContentID: "like-1"}, nil
		})

	f.dispatcher.Tick(context.Background())

	assert.Equal(t, 0, f.metrics(t, "auto-1").ActionsPerformed)
	count, err := f.interactions.CountSince("mother", domain.PlatformTwitter, utils.StartOfDay(f.clock.Now(), time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestDispatcher_RunStopsWithContext(t *testing.T) {
	config := testDispatcherConfig()
	config.Tick = 5 * time.Millisecond
	f := newDispatcherFixture(t, config, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.dispatcher.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("dispatcher não parou após o cancelamento")
	}
}
