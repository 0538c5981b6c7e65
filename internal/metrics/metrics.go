package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "engagement"

// Desfechos possíveis de uma ação no dispatcher
const (
	OutcomeSuccess   = "success"
	OutcomePermanent = "permanent_failure"
	OutcomeTransient = "transient_failure"
	OutcomeDeferred  = "quota_deferred"
	OutcomeDiscarded = "quota_discarded"
	OutcomeSkipped   = "policy_skipped"
	OutcomeCapped    = "daily_cap"
	OutcomeDropped   = "dropped"
)

// Collector expõe as métricas do processo no formato Prometheus
type Collector struct {
	registry        *prometheus.Registry
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	actionsTotal    *prometheus.CounterVec
	quotaRemaining  *prometheus.GaugeVec
	queueDepth      prometheus.Gauge
}

func NewCollector() (*Collector, error) {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latência das requisições HTTP recebidas.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total de requisições HTTP recebidas.",
	}, []string{"method", "route", "status"})

	actionsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dispatcher",
		Name:      "actions_total",
		Help:      "Ações processadas pelo dispatcher por desfecho.",
	}, []string{"platform", "type", "outcome"})

	quotaRemaining := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "quota",
		Name:      "remaining_units",
		Help:      "Unidades de cota restantes no dia corrente por plataforma.",
	}, []string{"platform"})

	queueDepth := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "dispatcher",
		Name:      "queue_depth",
		Help:      "Ações aguardando execução na fila global.",
	})

	for _, c := range []prometheus.Collector{requestDuration, requestTotal, actionsTotal, quotaRemaining, queueDepth} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return &Collector{
		registry:        registry,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		actionsTotal:    actionsTotal,
		quotaRemaining:  quotaRemaining,
		queueDepth:      queueDepth,
	}, nil
}

// Handler expõe o registro para o scraper do Prometheus
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// InstrumentRoute mede as requisições de uma rota usando o padrão registrado como rótulo,
// assim IDs no caminho não multiplicam as séries.
func (c *Collector) InstrumentRoute(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.status)

		c.requestTotal.WithLabelValues(r.Method, route, status).Inc()
		c.requestDuration.WithLabelValues(r.Method, route, status).Observe(duration)
	})
}

func (c *Collector) ObserveAction(platform, actionType, outcome string) {
	c.actionsTotal.WithLabelValues(platform, actionType, outcome).Inc()
}

func (c *Collector) SetQuotaRemaining(platform string, remaining int) {
	c.quotaRemaining.WithLabelValues(platform).Set(float64(remaining))
}

func (c *Collector) SetQueueDepth(depth int) {
	c.queueDepth.Set(float64(depth))
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
