package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/engagement-automation-api/internal/api/handler"
	"github.com/vfg2006/engagement-automation-api/internal/api/handler/router"
	"github.com/vfg2006/engagement-automation-api/internal/config"
	"github.com/vfg2006/engagement-automation-api/internal/metrics"
	"github.com/vfg2006/engagement-automation-api/internal/usecases/authenticating"
	"github.com/vfg2006/engagement-automation-api/internal/usecases/automation"
	"github.com/vfg2006/engagement-automation-api/internal/usecases/quota"
	"github.com/vfg2006/engagement-automation-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	automationManager automation.AutomationManager,
	quotaService quota.QuotaService,
	authenticator authenticating.Authenticator,
	collector *metrics.Collector,
	cronServices handler.CronJobServices,
) (*Server, error) {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Metrics(collector.Handler())...),
		router.WithInstrumentation(collector.InstrumentRoute),
		router.WithRoutes(handler.Automations(automationManager)...),
		router.WithRoutes(handler.Quota(quotaService)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.AuthMiddleware(authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// Handler expõe a cadeia completa, usado nos testes de ponta a ponta
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run atende requisições até o contexto ser cancelado e então desliga com prazo
func (s Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

// Shutdown espera as requisições em andamento até o prazo do contexto
func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
