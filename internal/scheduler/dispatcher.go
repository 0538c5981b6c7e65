package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/engagement-automation-api/infrastructure/repository"
	"github.com/vfg2006/engagement-automation-api/internal/domain"
	"github.com/vfg2006/engagement-automation-api/internal/metrics"
	"github.com/vfg2006/engagement-automation-api/internal/usecases/engagement"
	usecasemetrics "github.com/vfg2006/engagement-automation-api/internal/usecases/metrics"
	"github.com/vfg2006/engagement-automation-api/internal/usecases/quota"
	"github.com/vfg2006/engagement-automation-api/pkg/utils"
)

//go:generate mockgen -source=dispatcher.go -destination=mocks/dispatcher_mock.go -package=mocks

// PlatformClient executa uma ação na rede social
type PlatformClient interface {
	Execute(ctx context.Context, action *domain.Action) (*domain.PlatformResult, error)
}

// AutomationLookup devolve o estado atual de uma automação; ok é false quando ela não existe mais
type AutomationLookup interface {
	Lookup(automationID string) (*domain.Automation, bool)
}

// Observer recebe os eventos do dispatcher para exportação de métricas
type Observer interface {
	ObserveAction(platform, actionType, outcome string)
	SetQuotaRemaining(platform string, remaining int)
	SetQueueDepth(depth int)
}

const publishedRetention = 48 * time.Hour

type publishedContent struct {
	contentID string
	at        time.Time
}

type nopObserver struct{}

func (nopObserver) ObserveAction(string, string, string) {}
func (nopObserver) SetQuotaRemaining(string, int)        {}
func (nopObserver) SetQueueDepth(int)                    {}

// DispatcherConfig representa a configuração do laço de execução
type DispatcherConfig struct {
	Tick                  time.Duration
	Workers               int
	RetryBaseDelay        time.Duration
	RetryMaxDelay         time.Duration
	RetryMaxAttempts      int
	RecheckInterval       time.Duration
	ActionRelevanceWindow time.Duration
	MaxInteractionsPerDay int
	Location              *time.Location
}

// Dispatcher drena a fila global executando as ações vencidas de todas as automações
type Dispatcher struct {
	config       DispatcherConfig
	queue        *ActionQueue
	automations  AutomationLookup
	quota        quota.QuotaService
	policy       engagement.EngagementPolicy
	client       PlatformClient
	recorder     usecasemetrics.MetricsRecorder
	interactions repository.InteractionRepository
	observer     Observer
	clock        utils.Clock

	// published guarda o conteúdo criado por cada publicação para as amplificações
	published *xsync.MapOf[string, publishedContent]

	capMutex    sync.Mutex
	capInFlight map[string]int
}

func NewDispatcher(
	config DispatcherConfig,
	queue *ActionQueue,
	automations AutomationLookup,
	quotaService quota.QuotaService,
	policy engagement.EngagementPolicy,
	client PlatformClient,
	recorder usecasemetrics.MetricsRecorder,
	interactions repository.InteractionRepository,
	observer Observer,
	clock utils.Clock,
) *Dispatcher {
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.Tick <= 0 {
		config.Tick = time.Second
	}
	if config.RecheckInterval <= 0 {
		config.RecheckInterval = 5 * time.Minute
	}
	if config.Location == nil {
		config.Location = time.UTC
	}
	if observer == nil {
		observer = nopObserver{}
	}
	if clock == nil {
		clock = utils.SystemClock
	}

	logrus.WithFields(logrus.Fields{
		"tick":                    config.Tick.String(),
		"workers":                 config.Workers,
		"retry_base_delay":        config.RetryBaseDelay.String(),
		"retry_max_delay":         config.RetryMaxDelay.String(),
		"retry_max_attempts":      config.RetryMaxAttempts,
		"recheck_interval":        config.RecheckInterval.String(),
		"action_relevance_window": config.ActionRelevanceWindow.String(),
	}).Info("Configuração do dispatcher carregada")

	return &Dispatcher{
		config:       config,
		queue:        queue,
		automations:  automations,
		quota:        quotaService,
		policy:       policy,
		client:       client,
		recorder:     recorder,
		interactions: interactions,
		observer:     observer,
		clock:        clock,
		published:    xsync.NewMapOf[string, publishedContent](),
		capInFlight:  make(map[string]int),
	}
}

// Run executa o laço até o contexto ser cancelado
func (d *Dispatcher) Run(ctx context.Context) error {
	logrus.Info("Iniciando dispatcher de ações")

	ticker := time.NewTicker(d.config.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Parando dispatcher de ações")
			return nil
		case <-ticker.C:
			d.Tick(ctx)
		}
	}
}

// Tick processa todas as ações vencidas com o pool de workers e devolve quantas foram retiradas da fila
func (d *Dispatcher) Tick(ctx context.Context) int {
	due := d.queue.PopDue(d.clock.Now(), 0)
	if len(due) > 0 {
		// Criar um canal para controlar o número de workers concorrentes
		semaphore := make(chan struct{}, d.config.Workers)
		var wg sync.WaitGroup

		for _, action := range due {
			wg.Add(1)
			semaphore <- struct{}{}

			go func(action *domain.Action) {
				defer func() {
					<-semaphore
					wg.Done()
				}()
				d.process(ctx, action)
			}(action)
		}

		wg.Wait()
	}

	d.observer.SetQueueDepth(d.queue.Len())
	d.forgetPublished()
	return len(due)
}

// forgetPublished descarta conteúdos publicados há mais tempo do que qualquer amplificação espera
func (d *Dispatcher) forgetPublished() {
	cutoff := d.clock.Now().Add(-publishedRetention)
	d.published.Range(func(postID string, content publishedContent) bool {
		if content.at.Before(cutoff) {
			d.published.Delete(postID)
		}
		return true
	})
}

func (d *Dispatcher) process(ctx context.Context, action *domain.Action) {
	log := actionLogger(action)

	automation, ok := d.automations.Lookup(action.AutomationID)
	if !ok || automation.Status == domain.AutomationStatusDeleted {
		log.Debug("Automação inexistente, descartando ação")
		d.drop(action, metrics.OutcomeDropped)
		return
	}
	if automation.Status == domain.AutomationStatusPaused {
		if d.queue.Park(action) {
			log.Debug("Automação pausada, estacionando ação")
		} else {
			log.Debug("Automação retomada durante a verificação, ação devolvida à fila")
		}
		return
	}

	now := d.clock.Now()

	if action.DependsOn != "" {
		if d.queue.Contains(action.DependsOn) {
			// Publicação original ainda pendente, a amplificação espera por ela
			action.DueAt = now.Add(d.config.RecheckInterval)
			d.queue.Requeue(action)
			return
		}
		content, found := d.published.Load(action.DependsOn)
		if !found {
			log.WithField("depends_on", action.DependsOn).Info("Publicação original não aconteceu, descartando amplificação")
			d.drop(action, metrics.OutcomeDropped)
			return
		}
		action.TargetContentID = content.contentID
	}

	if action.IsChild && action.Type.IsEngagement() {
		child, found := automation.Child(action.ActingAccount.ID)
		if !found {
			log.Warn("Conta filha não pertence mais à automação, descartando ação")
			d.drop(action, metrics.OutcomeDropped)
			return
		}
		if !d.policy.ShouldEngage(child.Profile, action.Type.EngagementKind()) {
			log.Debug("Perfil optou por não engajar")
			d.drop(action, metrics.OutcomeSkipped)
			return
		}
		action.Voice = d.policy.Voice(child.Profile)
	}

	release, allowed, err := d.reserveInteraction(action, now)
	if err != nil {
		log.WithError(err).Warn("Erro ao consultar interações do dia, reagendando ação")
		action.DueAt = now.Add(d.config.RecheckInterval)
		d.queue.Requeue(action)
		return
	}
	if !allowed {
		log.Info("Limite diário de interações da conta atingido, descartando ação")
		d.drop(action, metrics.OutcomeCapped)
		return
	}
	defer release()

	cost := d.quota.OperationCost(action.Type.Operation())
	charge, charged := d.chargeQuota(ctx, action, cost, now, log)
	if !charged {
		return
	}

	result, err := d.client.Execute(ctx, action)
	if err != nil {
		if refundErr := d.quota.Refund(context.WithoutCancel(ctx), charge); refundErr != nil {
			log.WithError(refundErr).Warn("Erro ao devolver cota de ação que falhou")
		}
		d.handleFailure(ctx, action, err, log)
		return
	}

	d.handleSuccess(action, result, log)
}

// chargeQuota cobra a cota antes da chamada à plataforma; a cobrança é devolvida se a chamada falhar.
// Devolve false quando a ação foi reagendada ou descartada por falta de cota.
func (d *Dispatcher) chargeQuota(ctx context.Context, action *domain.Action, cost int, now time.Time, log *logrus.Entry) (quota.Charge, bool) {
	available, err := d.quota.HasAvailable(ctx, action.Platform, cost)
	if err == nil && available {
		var charge quota.Charge
		charge, err = d.quota.Deduct(ctx, action.Platform, cost)
		if err == nil {
			d.observer.SetQuotaRemaining(string(action.Platform), charge.Remaining)
			return charge, true
		}
	}
	if err != nil && !errors.Is(err, domain.ErrQuotaExceeded) {
		log.WithError(err).Warn("Cota indisponível para consulta, tratando como esgotada")
	}

	if d.config.ActionRelevanceWindow > 0 && now.Sub(action.CreatedAt) > d.config.ActionRelevanceWindow {
		log.WithField("quota_deferrals", action.QuotaDeferrals).Warn("Cota esgotada além da janela de relevância, descartando ação")
		d.recordError(action, domain.ErrorKindQuota, "quota exhausted", now)
		d.drop(action, metrics.OutcomeDiscarded)
		return quota.Charge{}, false
	}

	action.QuotaDeferrals++
	action.DueAt = now.Add(d.config.RecheckInterval)
	d.queue.Requeue(action)
	d.observer.ObserveAction(string(action.Platform), string(action.Type), metrics.OutcomeDeferred)
	log.WithField("due_at", action.DueAt.Format(time.RFC3339)).Debug("Cota insuficiente, ação reagendada")
	return quota.Charge{}, false
}

func (d *Dispatcher) handleSuccess(action *domain.Action, result *domain.PlatformResult, log *logrus.Entry) {
	now := d.clock.Now()
	d.queue.Ack(action)

	contentID := ""
	if result != nil {
		contentID = result.ContentID
	}
	if action.Type == domain.ActionTypePost && contentID != "" {
		d.published.Store(action.ID, publishedContent{contentID: contentID, at: now})
	}

	if _, ok := d.automations.Lookup(action.AutomationID); !ok {
		log.Info("Automação removida durante a execução, resultado descartado")
		return
	}

	if contentID == "" {
		contentID = action.TargetContentID
	}
	err := d.interactions.Append(&domain.InteractionRecord{
		AccountID: action.ActingAccount.ID,
		Platform:  action.Platform,
		ContentID: contentID,
		Type:      action.Type,
		Timestamp: now,
	})
	if err != nil {
		log.WithError(err).Error("Erro ao registrar interação executada")
	}

	d.recorder.RecordSuccess(action.AutomationID, now)
	d.observer.ObserveAction(string(action.Platform), string(action.Type), metrics.OutcomeSuccess)
	log.WithField("content_id", contentID).Info("Ação executada com sucesso")
}

func (d *Dispatcher) handleFailure(ctx context.Context, action *domain.Action, err error, log *logrus.Entry) {
	now := d.clock.Now()

	if ctx.Err() != nil && errors.Is(err, context.Canceled) {
		// Desligamento do processo: a ação volta para a fila sem contar tentativa
		d.queue.Requeue(action)
		return
	}

	if _, ok := d.automations.Lookup(action.AutomationID); !ok {
		log.Info("Automação removida durante a execução, falha descartada")
		d.queue.Ack(action)
		return
	}

	if isTransient(err) {
		action.Attempts++
		if d.config.RetryMaxAttempts <= 0 || action.Attempts <= d.config.RetryMaxAttempts {
			delay := retryablehttp.DefaultBackoff(d.config.RetryBaseDelay, d.config.RetryMaxDelay, action.Attempts-1, nil)
			action.DueAt = now.Add(delay)
			d.queue.Requeue(action)
			d.recorder.RecordTransient(action.AutomationID)
			d.observer.ObserveAction(string(action.Platform), string(action.Type), metrics.OutcomeTransient)
			log.WithFields(logrus.Fields{
				"attempts": action.Attempts,
				"delay":    delay.String(),
				"error":    err.Error(),
			}).Warn("Falha transitória na plataforma, ação reagendada")
			return
		}

		err = fmt.Errorf("%w: %d tentativas esgotadas: %v", domain.ErrPlatformPermanent, action.Attempts-1, err)
	}

	log.WithError(err).Error("Falha permanente na plataforma, descartando ação")
	d.recordError(action, domain.ErrorKindPermanent, err.Error(), now)
	d.drop(action, metrics.OutcomePermanent)
}

// reserveInteraction garante o teto diário de interações por conta considerando também
// as ações da mesma conta que estão em execução neste momento.
func (d *Dispatcher) reserveInteraction(action *domain.Action, now time.Time) (func(), bool, error) {
	if d.config.MaxInteractionsPerDay <= 0 {
		return func() {}, true, nil
	}

	since := utils.StartOfDay(now, d.config.Location)
	key := string(action.Platform) + ":" + action.ActingAccount.ID

	// A contagem é lida sob o mesmo lock que reserva a vaga para não usar um valor defasado
	d.capMutex.Lock()
	defer d.capMutex.Unlock()

	count, err := d.interactions.CountSince(action.ActingAccount.ID, action.Platform, since)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	if count+d.capInFlight[key] >= d.config.MaxInteractionsPerDay {
		return nil, false, nil
	}
	d.capInFlight[key]++

	release := func() {
		d.capMutex.Lock()
		defer d.capMutex.Unlock()
		d.capInFlight[key]--
		if d.capInFlight[key] <= 0 {
			delete(d.capInFlight, key)
		}
	}
	return release, true, nil
}

func (d *Dispatcher) recordError(action *domain.Action, kind domain.ErrorKind, message string, now time.Time) {
	d.recorder.RecordError(action.AutomationID, domain.ErrorEntry{
		Timestamp: now,
		Kind:      kind,
		ActionID:  action.ID,
		Message:   message,
	})
}

func (d *Dispatcher) drop(action *domain.Action, outcome string) {
	d.queue.Ack(action)
	d.observer.ObserveAction(string(action.Platform), string(action.Type), outcome)
}

func isTransient(err error) bool {
	return errors.Is(err, domain.ErrPlatformTransient) || errors.Is(err, context.DeadlineExceeded)
}

func actionLogger(action *domain.Action) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"automation_id": action.AutomationID,
		"action_id":     action.ID,
		"platform":      action.Platform,
		"action_type":   action.Type,
	})
}
