// Package app arma el servicio a partir de la config: store, documento JWKS,
// KeyRecord, verificador y router. Todo lo que falla acá es fatal al arranque.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dropDatabas3/jwksverify/internal/config"
	httpx "github.com/dropDatabas3/jwksverify/internal/http"
	healthctrl "github.com/dropDatabas3/jwksverify/internal/http/controllers/health"
	verifyctrl "github.com/dropDatabas3/jwksverify/internal/http/controllers/verify"
	"github.com/dropDatabas3/jwksverify/internal/http/router"
	"github.com/dropDatabas3/jwksverify/internal/jwks"
	jwtx "github.com/dropDatabas3/jwksverify/internal/jwt"
	"github.com/dropDatabas3/jwksverify/internal/metrics"
	"github.com/dropDatabas3/jwksverify/internal/observability/logger"
)

// StartupError marca en qué paso del arranque se cortó.
type StartupError struct {
	Step string
	Err  error
}

func (e *StartupError) Error() string { return e.Step + ": " + e.Err.Error() }
func (e *StartupError) Unwrap() error { return e.Err }

// Container son las piezas ya armadas. Record y Verifier no cambian después de New.
type Container struct {
	Config   *config.Config
	Store    jwks.DocumentStore
	Source   *jwks.Source
	Record   jwks.KeyRecord
	Verifier *jwtx.Verifier
	Handler  http.Handler

	closers []func() error
}

// OpenStore crea el DocumentStore configurado. El cleanup nunca es nil.
func OpenStore(cfg *config.Config) (jwks.DocumentStore, func() error, error) {
	switch cfg.JWKS.Store {
	case config.StoreRedis:
		s := jwks.NewRedisStore(jwks.DialRedis(cfg.Redis.Addr, cfg.Redis.DB), cfg.Redis.Prefix)
		return s, s.Close, nil
	case config.StoreFile, "":
		return jwks.NewFileStore(cfg.JWKS.CacheDir), func() error { return nil }, nil
	}
	return nil, func() error { return nil }, fmt.Errorf("unknown store %q", cfg.JWKS.Store)
}

// NewSource arma el KeySource de la config sobre store.
func NewSource(cfg *config.Config, store jwks.DocumentStore) *jwks.Source {
	return jwks.NewSource(store, jwks.NewHTTPFetcher(cfg.JWKS.ProviderURL, cfg.FetchTimeout()))
}

// New corre el arranque completo: ensure → load → verificador → router.
func New(ctx context.Context, cfg *config.Config, version string) (*Container, error) {
	log := logger.Named("app").With(logger.ClientID(cfg.JWKS.ClientID))

	store, closeStore, err := OpenStore(cfg)
	if err != nil {
		return nil, &StartupError{Step: "open store", Err: err}
	}
	c := &Container{Config: cfg, Store: store, closers: []func() error{closeStore}}

	name := jwks.DocumentName(cfg.JWKS.ClientID)
	c.Source = NewSource(cfg, store)

	fetchCtx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout())
	defer cancel()
	if err := c.Source.Ensure(fetchCtx, name, cfg.JWKS.ClientID); err != nil {
		_ = c.Close()
		return nil, &StartupError{Step: "ensure jwks document", Err: err}
	}

	rec, err := jwks.Load(ctx, store, name)
	if err != nil {
		_ = c.Close()
		return nil, &StartupError{Step: "load jwks document", Err: err}
	}
	c.Record = rec
	c.Verifier = jwtx.NewVerifier(rec)

	if cfg.Metrics.Enabled {
		if err := metrics.Register(nil); err != nil {
			_ = c.Close()
			return nil, &StartupError{Step: "register metrics", Err: err}
		}
	}
	metrics.SetKey(rec.KeyID, cfg.JWKS.Store)

	c.Handler = router.New(router.Deps{
		Verify:             verifyctrl.NewVerifyController(c.Verifier),
		Health:             healthctrl.NewHealthController(c.Verifier, version),
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		MetricsEnabled:     cfg.Metrics.Enabled,
	})

	log.Info("key record loaded", logger.KeyID(rec.KeyID), logger.File(store.Location(name)))
	return c, nil
}

// Serve bloquea sirviendo HTTP hasta que ctx se cancela.
func (c *Container) Serve(ctx context.Context) error {
	srv := httpx.NewServer(httpx.ServerConfig{
		Addr:            c.Config.Server.Addr,
		ReadTimeout:     c.Config.ReadTimeout(),
		WriteTimeout:    c.Config.WriteTimeout(),
		ShutdownTimeout: c.Config.ShutdownTimeout(),
	}, c.Handler)
	return srv.Run(ctx)
}

// Close libera lo que abrió New (cliente redis).
func (c *Container) Close() error {
	var first error
	for _, fn := range c.closers {
		if err := fn(); err != nil && first == nil {
			first = err
		}
	}
	c.closers = nil
	return first
}
