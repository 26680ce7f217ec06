package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/jwksverify/internal/observability/logger"
)

// ServerConfig son los tiempos y la dirección del listener.
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Server envuelve http.Server con apagado ordenado.
type Server struct {
	cfg ServerConfig
	srv *http.Server
}

func NewServer(cfg ServerConfig, handler http.Handler) *Server {
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	return &Server{
		cfg: cfg,
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      cfg.WriteTimeout,
		},
	}
}

// Run escucha en cfg.Addr hasta que ctx se cancela y después hace Shutdown.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve es Run sobre un listener ya abierto (tests usan 127.0.0.1:0).
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	log := logger.Named("http")
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("listening", logger.Any("addr", ln.Addr().String()))
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down", logger.Any("timeout", s.cfg.ShutdownTimeout.String()))
		return s.srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
