package handler

import (
	"net/http"

	"github.com/vfg2006/engagement-automation-api/internal/api/handler/router"
	"github.com/vfg2006/engagement-automation-api/internal/usecases/automation"
	"github.com/vfg2006/engagement-automation-api/internal/usecases/quota"
	"github.com/vfg2006/engagement-automation-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Metrics(handler http.Handler) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: handler,
		},
	}
}

func Automations(service automation.AutomationManager) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/automations",
			Method:      http.MethodPost,
			Handler:     StartAutomation(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Operators()},
		},
		{
			Path:        "/v1/automations",
			Method:      http.MethodGet,
			Handler:     ListAutomations(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/automations/:id",
			Method:      http.MethodGet,
			Handler:     GetAutomation(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/automations/:id/pause",
			Method:      http.MethodPost,
			Handler:     PauseAutomation(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Operators()},
		},
		{
			Path:        "/v1/automations/:id/resume",
			Method:      http.MethodPost,
			Handler:     ResumeAutomation(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Operators()},
		},
		{
			Path:        "/v1/automations/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteAutomation(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Operators()},
		},
	}
}

func Quota(service quota.QuotaService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/quota/:platform",
			Method:      http.MethodGet,
			Handler:     GetQuotaStatus(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/quota/:platform/reserve",
			Method:      http.MethodPost,
			Handler:     ReserveQuota(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Operators()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
