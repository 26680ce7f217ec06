// Package router arma el chi.Router del servicio.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	healthctrl "github.com/dropDatabas3/jwksverify/internal/http/controllers/health"
	verifyctrl "github.com/dropDatabas3/jwksverify/internal/http/controllers/verify"
	httperrors "github.com/dropDatabas3/jwksverify/internal/http/errors"
	mw "github.com/dropDatabas3/jwksverify/internal/http/middlewares"
	"github.com/dropDatabas3/jwksverify/internal/metrics"
)

// Deps contiene todo lo que el router necesita.
type Deps struct {
	Verify *verifyctrl.VerifyController
	Health *healthctrl.HealthController

	CORSAllowedOrigins []string
	MetricsEnabled     bool
}

// New devuelve el handler raíz.
//
// Cadena global: request id → métricas → security headers → CORS.
// Logging y recover se agregan por grupo de rutas.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		mw.WithRequestID(),
		mw.WithMetrics(),
		mw.WithSecurityHeaders(),
		mw.WithCORS(deps.CORSAllowedOrigins),
	)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	RegisterVerifyRoutes(r, VerifyRouterDeps{Controller: deps.Verify})
	RegisterHealthRoutes(r, HealthRouterDeps{Controller: deps.Health, MetricsEnabled: deps.MetricsEnabled})

	return r
}

// VerifyRouterDeps contiene las dependencias de /verify.
type VerifyRouterDeps struct {
	Controller *verifyctrl.VerifyController
}

// RegisterVerifyRoutes registra GET /verify con logging por request.
func RegisterVerifyRoutes(r chi.Router, deps VerifyRouterDeps) {
	if deps.Controller == nil {
		return
	}
	r.Group(func(r chi.Router) {
		r.Use(mw.WithLogging(), mw.WithRecover())
		r.Get("/verify", deps.Controller.Verify)
	})
}

// HealthRouterDeps contiene las dependencias de /readyz y /metrics.
type HealthRouterDeps struct {
	Controller     *healthctrl.HealthController
	MetricsEnabled bool
}

// RegisterHealthRoutes registra rutas de infraestructura.
// Sin logging: las consultan probes y scrapers cada pocos segundos.
func RegisterHealthRoutes(r chi.Router, deps HealthRouterDeps) {
	r.Group(func(r chi.Router) {
		r.Use(mw.WithRecover())
		if deps.Controller != nil {
			r.Get("/readyz", deps.Controller.Readyz)
		}
		if deps.MetricsEnabled {
			r.Method(http.MethodGet, "/metrics", metrics.Handler())
		}
	})
}
