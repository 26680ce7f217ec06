// Package metrics define las métricas Prometheus del servicio. Vive aparte
// para que middlewares y controllers las usen sin ciclos de import.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resultados de verificación (label "result").
const (
	ResultOK                 = "ok"
	ResultBadRequest         = "bad_request"
	ResultMalformedHeader    = "malformed_header"
	ResultKeyMismatch        = "key_mismatch"
	ResultInvalidKeyMaterial = "invalid_key_material"
	ResultInvalidToken       = "invalid_token"
	ResultInternal           = "internal"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Número total de requests procesadas",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latencia de los requests HTTP",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	HTTPInflight = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "http_inflight_requests",
		Help: "Requests en vuelo por método",
	}, []string{"method"})

	VerifyResultsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jwks_verify_results_total",
		Help: "Resultados de /verify por tipo",
	}, []string{"result"})

	KeyInfo = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "jwks_key_info",
		Help: "Clave cargada al arranque (valor siempre 1)",
	}, []string{"kid", "source"})
)

var (
	registerOnce sync.Once
	registerErr  error
)

// Register registra todas las métricas en reg (o el default si es nil).
// Es idempotente; colectores ya registrados se ignoran.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	registerOnce.Do(func() {
		for _, c := range []prometheus.Collector{
			HTTPRequestsTotal, HTTPRequestDuration, HTTPInflight, VerifyResultsTotal, KeyInfo,
		} {
			if err := reg.Register(c); err != nil {
				if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
					registerErr = err
					return
				}
			}
		}
	})
	return registerErr
}

// Handler expone /metrics con el gatherer global.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordVerify suma un resultado de verificación.
func RecordVerify(result string) {
	VerifyResultsTotal.WithLabelValues(result).Inc()
}

// SetKey publica el kid cargado y de dónde vino el documento.
func SetKey(kid, source string) {
	KeyInfo.Reset()
	KeyInfo.WithLabelValues(kid, source).Set(1)
}
