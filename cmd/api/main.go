package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path"
	"runtime"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/engagement-automation-api/infrastructure/database/postgres"
	"github.com/vfg2006/engagement-automation-api/infrastructure/integrator/analytics/analyticsclient"
	"github.com/vfg2006/engagement-automation-api/infrastructure/integrator/platform/platformclient"
	"github.com/vfg2006/engagement-automation-api/infrastructure/quotastore"
	"github.com/vfg2006/engagement-automation-api/infrastructure/repository"
	"github.com/vfg2006/engagement-automation-api/infrastructure/repository/memory"
	"github.com/vfg2006/engagement-automation-api/internal/api"
	"github.com/vfg2006/engagement-automation-api/internal/api/handler"
	"github.com/vfg2006/engagement-automation-api/internal/config"
	"github.com/vfg2006/engagement-automation-api/internal/metrics"
	"github.com/vfg2006/engagement-automation-api/internal/scheduler"
	"github.com/vfg2006/engagement-automation-api/internal/usecases/authenticating"
	"github.com/vfg2006/engagement-automation-api/internal/usecases/automation"
	"github.com/vfg2006/engagement-automation-api/internal/usecases/engagement"
	usecasemetrics "github.com/vfg2006/engagement-automation-api/internal/usecases/metrics"
	"github.com/vfg2006/engagement-automation-api/internal/usecases/quota"
	"github.com/vfg2006/engagement-automation-api/pkg/utils"
	"golang.org/x/sync/errgroup"
)

type stores struct {
	automations  repository.AutomationRepository
	actions      repository.ActionRepository
	interactions repository.InteractionRepository
	close        func()
}

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	location, err := cfg.Quota.Location()
	if err != nil {
		logrus.Fatal(err)
	}

	st := newStores(ctx, cfg)
	defer st.close()

	quotaStore, closeQuotaStore := newQuotaStore(cfg)
	defer closeQuotaStore()

	quotaService := quota.NewService(quotaStore, cfg.Quota.Limits(), location, nil)

	rnd := utils.NewTimeSeededRandom()
	policy := engagement.NewPolicy(rnd)

	analytics := analyticsclient.NewClient(analyticsclient.Config{
		URL:      cfg.Analytics.URL,
		Timeout:  cfg.Analytics.Timeout,
		RetryMax: cfg.Analytics.RetryMax,
	})

	planner := scheduler.NewActionScheduler(scheduler.PlannerConfig{
		MaxActionsPerDay:      cfg.Scheduling.MaxActionsPerDay,
		MaxInteractionsPerDay: cfg.Scheduling.MaxInteractionsPerDay,
		MinInteractionDelay:   cfg.Scheduling.MinInteractionDelay,
		PostJitter:            cfg.Scheduling.PostJitter,
		EngageJitter:          cfg.Scheduling.EngageJitter,
		AmplifyDelay:          cfg.Scheduling.AmplifyDelay,
		DefaultPostsPerDay:    cfg.Scheduling.DefaultPostsPerDay,
		Location:              location,
	}, analytics, policy, rnd, nil)

	queue := scheduler.NewActionQueue(st.actions)
	recorder := usecasemetrics.NewRecorder(cfg.Dispatcher.MaxErrorLog)

	automationService := automation.NewService(st.automations, queue, planner, recorder, nil, cfg.Scheduling.Horizon)

	collector, err := metrics.NewCollector()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao registrar métricas")
	}

	platformClient := platformclient.NewClient(platformclient.Config{
		GatewayURL:        cfg.Platform.GatewayURL,
		RequestsPerSecond: cfg.Platform.RequestsPerSecond,
		Timeout:           cfg.Platform.Timeout,
	})

	dispatcher := scheduler.NewDispatcher(
		scheduler.DispatcherConfig{
			Tick:                  cfg.Dispatcher.Tick,
			Workers:               cfg.Dispatcher.Workers,
			RetryBaseDelay:        cfg.Dispatcher.RetryBaseDelay,
			RetryMaxDelay:         cfg.Dispatcher.RetryMaxDelay,
			RetryMaxAttempts:      cfg.Dispatcher.RetryMaxAttempts,
			RecheckInterval:       cfg.Dispatcher.RecheckInterval,
			ActionRelevanceWindow: cfg.Dispatcher.ActionRelevanceWindow,
			MaxInteractionsPerDay: cfg.Scheduling.MaxInteractionsPerDay,
			Location:              location,
		},
		queue,
		automationService,
		quotaService,
		policy,
		platformClient,
		recorder,
		st.interactions,
		collector,
		nil,
	)

	horizonTopUpService := scheduler.NewHorizonTopUpService(automationService, scheduler.HorizonTopUpConfig{
		CronSchedule: cfg.HorizonTopUp.CronSchedule,
		Enabled:      cfg.HorizonTopUp.Enabled,
		Location:     location,
	})

	authenticator := authenticating.NewService(cfg.Auth.Secret)

	// Automações ativas e pausadas voltam da persistência antes de o dispatcher começar
	restored, err := automationService.Restore(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao restaurar automações")
	}
	logrus.WithField("automations", restored).Info("Automações restauradas")

	if _, err := automationService.TopUpActive(ctx); err != nil {
		logrus.WithError(err).Warn("Reabastecimento inicial de horizonte concluído com erros")
	}

	server, err := api.New(
		cfg,
		automationService,
		quotaService,
		authenticator,
		collector,
		handler.CronJobServices{
			handler.CronJobTypeHorizonTopUp: horizonTopUpService,
		},
	)
	if err != nil {
		logrus.Fatal(err)
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return dispatcher.Run(groupCtx)
	})

	group.Go(func() error {
		if err := horizonTopUpService.Start(groupCtx); err != nil {
			return err
		}
		<-groupCtx.Done()
		return nil
	})

	group.Go(func() error {
		return server.Run(groupCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logrus.WithError(err).Error("Processo encerrado com erro")
	}

	// Contadores das automações sobrevivem ao reinício
	automationService.PersistMetrics(context.Background())
	logrus.Info("Processo encerrado")
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// newStores escolhe onde automações, ações pendentes e interações são guardadas
func newStores(ctx context.Context, cfg *config.Config) stores {
	if cfg.App.StoreDriver != "postgres" {
		logrus.Info("Usando armazenamento em memória")
		return stores{
			automations:  memory.NewAutomationStore(),
			actions:      memory.NewActionStore(),
			interactions: memory.NewInteractionStore(),
			close:        func() {},
		}
	}

	conn := pgconn(ctx, cfg.Database)
	return stores{
		automations:  repository.NewAutomationRepository(conn),
		actions:      repository.NewActionRepository(conn),
		interactions: repository.NewInteractionRepository(conn),
		close:        func() { conn.Close() },
	}
}

// newQuotaStore escolhe o backend dos contadores de cota
func newQuotaStore(cfg *config.Config) (quotastore.Store, func()) {
	if cfg.Quota.Backend != "redis" {
		logrus.Info("Usando contadores de cota em memória")
		return quotastore.NewMemoryStore(), func() {}
	}

	store, err := quotastore.NewRedisStore(cfg.Redis.URL)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao Redis")
	}

	logrus.Info("Conexão com Redis estabelecida com sucesso")
	return store, func() { store.Close() }
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
