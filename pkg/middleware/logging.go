package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/vfg2006/engagement-automation-api/pkg/apiErrors"
	"github.com/vfg2006/engagement-automation-api/pkg/log"
)

const correlationHeader = "X-Correlation-ID"

const slowRequestThreshold = 500 * time.Millisecond

// Sondas de saúde e coletas de métricas não entram no log de requisições
var quietPaths = map[string]bool{
	"/healthcheck": true,
	"/metrics":     true,
}

// LoggingMiddleware propaga o ID de correlação e registra o resultado de cada chamada à API.
// Um X-Correlation-ID enviado pelo cliente é reaproveitado.
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, correlationID := log.WithCorrelationID(r.Context())
			if incoming := r.Header.Get(correlationHeader); incoming != "" {
				ctx, correlationID = log.ContextWithCorrelationID(r.Context(), incoming)
			}
			r = r.WithContext(ctx)
			w.Header().Set(correlationHeader, correlationID)

			if quietPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			started := time.Now()

			next.ServeHTTP(sw, r)

			elapsed := time.Since(started)
			fields := log.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": sw.status,
				"duration_ms": elapsed.Milliseconds(),
				"remote_addr": r.RemoteAddr,
				"user_agent":  r.UserAgent(),
			}
			if r.URL.RawQuery != "" {
				fields["query"] = r.URL.RawQuery
			}

			entry := log.ForContext(ctx).WithFields(fields)
			switch {
			case sw.status >= http.StatusInternalServerError:
				entry.Error("Requisição falhou")
			case sw.status >= http.StatusBadRequest:
				entry.Warn("Requisição rejeitada")
			default:
				entry.Info("Requisição concluída")
			}

			if elapsed > slowRequestThreshold {
				entry.Warnf("Requisição lenta (%s)", elapsed.Round(time.Millisecond))
			}
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

// LogPanicMiddleware transforma um panic em 500 e registra a pilha de chamadas
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				log.ForContext(r.Context()).WithFields(log.Fields{
					"error":       rec,
					"method":      r.Method,
					"path":        r.URL.Path,
					"stack_trace": string(debug.Stack()),
				}).Error("Panic ao atender requisição")

				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
