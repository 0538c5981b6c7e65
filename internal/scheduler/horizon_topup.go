package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=horizon_topup.go -destination=mocks/horizon_topup_mock.go -package=mocks

// HorizonPlanner reabastece a fila de todas as automações ativas até o fim do próximo horizonte
type HorizonPlanner interface {
	TopUpActive(ctx context.Context) (int, error)
}

// HorizonTopUpConfig representa a configuração do reabastecimento diário da fila
type HorizonTopUpConfig struct {
	CronSchedule string
	Enabled      bool
	Location     *time.Location
}

// HorizonTopUpService agenda o reabastecimento diário para que automações de vários dias continuem rodando
type HorizonTopUpService struct {
	scheduler            *gocron.Scheduler
	config               HorizonTopUpConfig
	planner              HorizonPlanner
	ctx                  context.Context
	topUpRunning         bool
	topUpMutex           sync.Mutex
	lastTopUpStartedAt   time.Time
	lastTopUpCompletedAt time.Time
	lastTopUpActions     int
}

func NewHorizonTopUpService(planner HorizonPlanner, config HorizonTopUpConfig) *HorizonTopUpService {
	if config.Location == nil {
		config.Location = time.Local
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": config.CronSchedule,
		"enabled":       config.Enabled,
		"timezone":      config.Location.String(),
	}).Info("Configuração do reabastecimento de horizonte carregada")

	return &HorizonTopUpService{
		scheduler: gocron.NewScheduler(config.Location),
		config:    config,
		planner:   planner,
		ctx:       context.Background(),
	}
}

// Start inicia o agendador
func (s *HorizonTopUpService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Reabastecimento de horizonte desabilitado por configuração")
		return nil
	}

	s.ctx = ctx
	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de reabastecimento de horizonte")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.topUp()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar reabastecimento de horizonte: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de reabastecimento de horizonte")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *HorizonTopUpService) topUp() {
	s.topUpMutex.Lock()
	if s.topUpRunning {
		s.topUpMutex.Unlock()
		logrus.Info("Reabastecimento de horizonte já em andamento, ignorando")
		return
	}
	s.topUpRunning = true
	startTime := time.Now()
	s.lastTopUpStartedAt = startTime
	s.topUpMutex.Unlock()

	defer func() {
		s.topUpMutex.Lock()
		s.topUpRunning = false
		s.topUpMutex.Unlock()
	}()

	logrus.Info("Iniciando reabastecimento de horizonte das automações ativas")

	queued, err := s.planner.TopUpActive(s.ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro no reabastecimento de horizonte")
	}

	s.topUpMutex.Lock()
	s.lastTopUpCompletedAt = time.Now()
	s.lastTopUpActions = queued
	s.topUpMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"actions":  queued,
	}).Info("Reabastecimento de horizonte concluído")
}

// TriggerManualSync inicia manualmente um reabastecimento
func (s *HorizonTopUpService) TriggerManualSync() {
	s.topUpMutex.Lock()
	if s.topUpRunning {
		s.topUpMutex.Unlock()
		logrus.Info("Reabastecimento de horizonte já em andamento, ignorando solicitação manual")
		return
	}
	s.topUpMutex.Unlock()

	logrus.Info("Iniciando reabastecimento manual de horizonte")
	go s.topUp()
}

// GetStatus retorna o status atual do agendador
func (s *HorizonTopUpService) GetStatus() map[string]any {
	s.topUpMutex.Lock()
	defer s.topUpMutex.Unlock()

	return map[string]any{
		"topup_enabled":           s.config.Enabled,
		"topup_cron":              s.config.CronSchedule,
		"topup_running":           s.topUpRunning,
		"last_topup_started_at":   s.lastTopUpStartedAt,
		"last_topup_completed_at": s.lastTopUpCompletedAt,
		"last_topup_actions":      s.lastTopUpActions,
	}
}
