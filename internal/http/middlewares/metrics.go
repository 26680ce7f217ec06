package middlewares

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/jwksverify/internal/metrics"
)

// WithMetrics instrumenta requests con contadores, latencia e inflight.
// El label path usa el patrón de ruta de chi para no explotar cardinalidad.
func WithMetrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			method := strings.ToUpper(r.Method)
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			metrics.HTTPInflight.WithLabelValues(method).Inc()
			defer func() {
				metrics.HTTPInflight.WithLabelValues(method).Dec()

				path := routePattern(r)
				metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
				metrics.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
			}()

			next.ServeHTTP(rec, r)
		})
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
