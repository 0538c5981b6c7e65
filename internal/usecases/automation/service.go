package automation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/engagement-automation-api/infrastructure/repository"
	"github.com/vfg2006/engagement-automation-api/internal/domain"
	"github.com/vfg2006/engagement-automation-api/internal/scheduler"
	usecasemetrics "github.com/vfg2006/engagement-automation-api/internal/usecases/metrics"
	"github.com/vfg2006/engagement-automation-api/pkg/apiErrors"
	"github.com/vfg2006/engagement-automation-api/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

// AutomationManager é a superfície de controle das automações
type AutomationManager interface {
	Start(ctx context.Context, request StartRequest) (*domain.Automation, error)
	Status(ctx context.Context, id string) (*domain.Automation, error)
	List(ctx context.Context, ownerUserID string) ([]*domain.Automation, error)
	Pause(ctx context.Context, id string) (*domain.Automation, error)
	Resume(ctx context.Context, id string) (*domain.Automation, error)
	Delete(ctx context.Context, id string) error
}

// ActionPlanner valida estratégias e calcula as ações de uma janela
type ActionPlanner interface {
	Validate(strategy domain.Strategy) error
	Plan(ctx context.Context, automation *domain.Automation, from, to time.Time) ([]*domain.Action, error)
}

type StartRequest struct {
	MotherAccount domain.SocialAccount  `json:"mother_account"`
	ChildAccounts []domain.ChildAccount `json:"child_accounts"`
	Strategy      domain.Strategy       `json:"strategy"`
}

// Service mantém o registro das automações. O cache em memória é a fonte de verdade do
// processo e o repositório é gravado a cada mudança de estado; operações sobre o mesmo ID
// são serializadas por um lock próprio.
type Service struct {
	repo     repository.AutomationRepository
	queue    *scheduler.ActionQueue
	planner  ActionPlanner
	recorder usecasemetrics.MetricsRecorder
	clock    utils.Clock
	horizon  time.Duration

	automations *xsync.MapOf[string, *domain.Automation]
	locks       *xsync.MapOf[string, *sync.Mutex]
}

func NewService(
	repo repository.AutomationRepository,
	queue *scheduler.ActionQueue,
	planner ActionPlanner,
	recorder usecasemetrics.MetricsRecorder,
	clock utils.Clock,
	horizon time.Duration,
) *Service {
	if clock == nil {
		clock = utils.SystemClock
	}
	if horizon <= 0 {
		horizon = 24 * time.Hour
	}

	return &Service{
		repo:        repo,
		queue:       queue,
		planner:     planner,
		recorder:    recorder,
		clock:       clock,
		horizon:     horizon,
		automations: xsync.NewMapOf[string, *domain.Automation](),
		locks:       xsync.NewMapOf[string, *sync.Mutex](),
	}
}

func (s *Service) Start(ctx context.Context, request StartRequest) (*domain.Automation, error) {
	mother, children, err := validateAccounts(request.MotherAccount, request.ChildAccounts)
	if err != nil {
		return nil, err
	}

	if err := s.planner.Validate(request.Strategy); err != nil {
		return nil, NewAutomationError(domain.ErrStrategyInvalid, apiErrors.ErrStrategyInvalid, err.Error())
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, NewAutomationError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
	}

	now := s.clock.Now()
	automation := &domain.Automation{
		ID:            id,
		MotherAccount: mother,
		ChildAccounts: children,
		Strategy:      request.Strategy,
		Status:        domain.AutomationStatusActive,
		Metrics:       domain.AutomationMetrics{Errors: []domain.ErrorEntry{}},
		StartedAt:     now,
		UpdatedAt:     now,
	}

	unlock := s.lock(id)
	defer unlock()

	actions, err := s.planner.Plan(ctx, automation, now, now.Add(s.horizon))
	if err != nil {
		return nil, s.planningError(err, id)
	}

	if err := s.repo.Save(automation); err != nil {
		return nil, storageError(err, id, "Falha ao salvar automação")
	}

	if err := s.queue.Push(actions...); err != nil {
		if delErr := s.repo.Delete(id); delErr != nil {
			logrus.WithFields(logrus.Fields{
				"automation_id": id,
				"error":         delErr.Error(),
			}).Error("Erro ao desfazer automação sem ações enfileiradas")
		}
		return nil, storageError(err, id, "Falha ao enfileirar ações")
	}

	s.recorder.Register(id, automation.Metrics)
	s.automations.Store(id, automation.Clone())

	logrus.WithFields(logrus.Fields{
		"automation_id": id,
		"platform":      mother.Platform,
		"children":      len(children),
		"actions":       len(actions),
	}).Info("Automação iniciada")

	return automation, nil
}

func (s *Service) Status(_ context.Context, id string) (*domain.Automation, error) {
	if id == "" {
		return nil, NewAutomationError(ErrAutomationIDRequired, apiErrors.ErrMissingRequiredData, "ID da automação não informado")
	}

	if automation, ok := s.snapshot(id); ok {
		return automation, nil
	}

	stored, err := s.repo.GetByID(id)
	if err != nil {
		return nil, storageError(err, id, "Falha ao buscar automação")
	}
	if stored == nil || stored.Status == domain.AutomationStatusDeleted {
		return nil, notFound(id)
	}
	return stored, nil
}

func (s *Service) List(_ context.Context, ownerUserID string) ([]*domain.Automation, error) {
	stored, err := s.repo.List(ownerUserID)
	if err != nil {
		return nil, storageError(err, "", "Falha ao listar automações")
	}

	automations := make([]*domain.Automation, 0, len(stored))
	for _, automation := range stored {
		if live, ok := s.snapshot(automation.ID); ok {
			automation = live
		}
		if automation.Status == domain.AutomationStatusDeleted {
			continue
		}
		automations = append(automations, automation)
	}

	return automations, nil
}

// Pause interrompe a execução sem perder ações: o dispatcher estaciona as que vencerem.
// Pausar uma automação já pausada não tem efeito.
func (s *Service) Pause(_ context.Context, id string) (*domain.Automation, error) {
	unlock := s.lock(id)
	defer unlock()

	current, ok := s.snapshot(id)
	if !ok {
		return nil, notFound(id)
	}
	if current.Status == domain.AutomationStatusPaused {
		return current, nil
	}

	now := s.clock.Now()
	current.Status = domain.AutomationStatusPaused
	current.PausedAt = &now
	current.UpdatedAt = now

	if err := s.repo.Save(current); err != nil {
		return nil, storageError(err, id, "Falha ao pausar automação")
	}
	// A marca precisa existir antes de o dispatcher enxergar o status pausado
	s.queue.MarkPaused(id)
	s.automations.Store(id, current.Clone())

	logrus.WithFields(logrus.Fields{
		"automation_id":   id,
		"pending_actions": s.queue.Pending(id),
	}).Info("Automação pausada")

	return current, nil
}

// Resume reabastece a fila até o fim do horizonte e devolve as ações estacionadas,
// as que venceram durante a pausa passam a vencer imediatamente.
func (s *Service) Resume(ctx context.Context, id string) (*domain.Automation, error) {
	unlock := s.lock(id)
	defer unlock()

	current, ok := s.snapshot(id)
	if !ok {
		return nil, notFound(id)
	}
	if current.Status == domain.AutomationStatusActive {
		return current, nil
	}

	now := s.clock.Now()
	actions, err := s.planner.Plan(ctx, current, s.topUpStart(id, now), now.Add(s.horizon))
	if err != nil {
		return nil, s.planningError(err, id)
	}

	previous := current.Clone()
	current.Status = domain.AutomationStatusActive
	current.ResumedAt = &now
	current.UpdatedAt = now

	if err := s.repo.Save(current); err != nil {
		return nil, storageError(err, id, "Falha ao retomar automação")
	}

	if err := s.queue.Push(actions...); err != nil {
		if revertErr := s.repo.Save(previous); revertErr != nil {
			logrus.WithFields(logrus.Fields{
				"automation_id": id,
				"error":         revertErr.Error(),
			}).Error("Erro ao desfazer retomada da automação")
		}
		return nil, storageError(err, id, "Falha ao enfileirar ações")
	}

	// O status ativo precisa estar visível antes de liberar as ações estacionadas
	s.automations.Store(id, current.Clone())
	readmitted := s.queue.Unpark(id, now)

	logrus.WithFields(logrus.Fields{
		"automation_id": id,
		"readmitted":    readmitted,
		"new_actions":   len(actions),
	}).Info("Automação retomada")

	return current, nil
}

// Delete remove a automação e todas as ações ainda não executadas.
// Resultados de chamadas em andamento são descartados pelo dispatcher.
func (s *Service) Delete(_ context.Context, id string) error {
	unlock := s.lock(id)
	defer unlock()

	if _, ok := s.automations.Load(id); !ok {
		return notFound(id)
	}

	if err := s.repo.Delete(id); err != nil {
		return storageError(err, id, "Falha ao remover automação")
	}

	s.automations.Delete(id)
	removed, err := s.queue.RemoveAutomation(id)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"automation_id": id,
			"error":         err.Error(),
		}).Warn("Erro ao remover ações do diário")
	}
	s.recorder.Forget(id)

	logrus.WithFields(logrus.Fields{
		"automation_id":   id,
		"removed_actions": removed,
	}).Info("Automação removida")

	return nil
}

// Lookup devolve uma cópia do estado atual da automação para o dispatcher
func (s *Service) Lookup(id string) (*domain.Automation, bool) {
	automation, ok := s.automations.Load(id)
	if !ok {
		return nil, false
	}
	return automation.Clone(), true
}

// Restore carrega as automações ativas e pausadas e a fila persistida
func (s *Service) Restore(_ context.Context) (int, error) {
	stored, err := s.repo.ListByStatus([]domain.AutomationStatus{
		domain.AutomationStatusActive,
		domain.AutomationStatusPaused,
	})
	if err != nil {
		return 0, storageError(err, "", "Falha ao carregar automações")
	}

	for _, automation := range stored {
		s.recorder.Register(automation.ID, automation.Metrics)
		if automation.Status == domain.AutomationStatusPaused {
			s.queue.MarkPaused(automation.ID)
		}
		s.automations.Store(automation.ID, automation)
	}

	restored, err := s.queue.Restore()
	if err != nil {
		return len(stored), err
	}

	logrus.WithFields(logrus.Fields{
		"automations": len(stored),
		"actions":     restored,
	}).Info("Estado das automações restaurado")

	return len(stored), nil
}

// TopUpActive planeja o próximo horizonte de cada automação ativa a partir da última ação já
// enfileirada, sem duplicar o que já está na fila.
func (s *Service) TopUpActive(ctx context.Context) (int, error) {
	ids := make([]string, 0)
	s.automations.Range(func(id string, automation *domain.Automation) bool {
		if automation.Status == domain.AutomationStatusActive {
			ids = append(ids, id)
		}
		return true
	})

	total := 0
	var errs []error
	for _, id := range ids {
		queued, err := s.topUp(ctx, id)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"automation_id": id,
				"error":         err.Error(),
			}).Error("Erro ao reabastecer fila da automação")
			errs = append(errs, err)
			continue
		}
		total += queued
	}

	s.PersistMetrics(ctx)
	return total, errors.Join(errs...)
}

func (s *Service) topUp(ctx context.Context, id string) (int, error) {
	unlock := s.lock(id)
	defer unlock()

	current, ok := s.snapshot(id)
	if !ok || current.Status != domain.AutomationStatusActive {
		return 0, nil
	}

	now := s.clock.Now()
	actions, err := s.planner.Plan(ctx, current, s.topUpStart(id, now), now.Add(s.horizon))
	if err != nil {
		return 0, err
	}
	if err := s.queue.Push(actions...); err != nil {
		return 0, err
	}

	return len(actions), nil
}

// PersistMetrics grava as métricas acumuladas de todas as automações no repositório
func (s *Service) PersistMetrics(_ context.Context) {
	s.automations.Range(func(id string, _ *domain.Automation) bool {
		unlock := s.lock(id)
		defer unlock()

		current, ok := s.snapshot(id)
		if !ok {
			return true
		}
		if err := s.repo.Save(current); err != nil {
			logrus.WithFields(logrus.Fields{
				"automation_id": id,
				"error":         err.Error(),
			}).Warn("Erro ao gravar métricas da automação")
		}
		return true
	})
}

// snapshot devolve uma cópia da automação com as métricas mais recentes
func (s *Service) snapshot(id string) (*domain.Automation, bool) {
	cached, ok := s.automations.Load(id)
	if !ok {
		return nil, false
	}

	automation := cached.Clone()
	if metrics, found := s.recorder.Snapshot(id); found {
		automation.Metrics = metrics
	}
	return automation, true
}

func (s *Service) topUpStart(id string, now time.Time) time.Time {
	if last, ok := s.queue.LastDue(id); ok && last.After(now) {
		return last
	}
	return now
}

func (s *Service) lock(id string) func() {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	mu.Lock()
	return mu.Unlock
}

func (s *Service) planningError(err error, id string) error {
	if errors.Is(err, domain.ErrStrategyInvalid) {
		return NewAutomationErrorWithID(domain.ErrStrategyInvalid, apiErrors.ErrStrategyInvalid, id, err.Error())
	}
	return NewAutomationErrorWithID(err, apiErrors.ErrInternalServer, id, "Falha ao planejar ações")
}

func validateAccounts(mother domain.SocialAccount, children []domain.ChildAccount) (domain.SocialAccount, []domain.ChildAccount, error) {
	if !mother.Platform.IsSupported() {
		return mother, nil, NewAutomationError(domain.ErrUnsupportedPlatform, apiErrors.ErrUnsupportedPlatform,
			fmt.Sprintf("plataforma %q não suportada", mother.Platform))
	}
	if mother.ExternalID == "" {
		return mother, nil, NewAutomationError(ErrMotherAccountInvalid, apiErrors.ErrMissingRequiredData, "external_id da conta mãe é obrigatório")
	}
	if mother.ID == "" {
		mother.ID = mother.ExternalID
	}

	seen := map[string]bool{mother.ID: true}
	validated := make([]domain.ChildAccount, 0, len(children))
	for _, child := range children {
		if child.ExternalID == "" {
			return mother, nil, NewAutomationError(ErrChildAccountInvalid, apiErrors.ErrMissingRequiredData, "external_id da conta filha é obrigatório")
		}
		if child.ID == "" {
			child.ID = child.ExternalID
		}
		if child.Platform == "" {
			child.Platform = mother.Platform
		}
		if child.Platform != mother.Platform {
			return mother, nil, NewAutomationError(ErrChildAccountInvalid, apiErrors.ErrInvalidRequest,
				fmt.Sprintf("conta filha %s está em %s e a conta mãe em %s", child.ID, child.Platform, mother.Platform))
		}
		if seen[child.ID] {
			return mother, nil, NewAutomationError(ErrChildAccountInvalid, apiErrors.ErrInvalidRequest,
				fmt.Sprintf("conta %s repetida", child.ID))
		}
		if err := child.Profile.Validate(); err != nil {
			return mother, nil, NewAutomationError(ErrChildAccountInvalid, apiErrors.ErrInvalidFormat, err.Error())
		}
		if child.UserID == "" {
			child.UserID = mother.UserID
		}
		seen[child.ID] = true
		validated = append(validated, child)
	}

	return mother, validated, nil
}

func notFound(id string) error {
	return NewAutomationErrorWithID(ErrAutomationNotFound, apiErrors.ErrAutomationNotFound, id, "Automação não encontrada")
}

// Falhas do repositório fecham a operação em vez de seguir com estado parcial
func storageError(err error, id, details string) error {
	logrus.WithFields(logrus.Fields{
		"automation_id": id,
		"error":         err.Error(),
	}).Error(details)
	return NewAutomationErrorWithID(domain.ErrStorageUnavailable, apiErrors.ErrStorageUnavailable, id, details)
}
