// Package server exposes executive summary generation over HTTP.
//
// Routes:
//
//	GET  /healthz
//	POST /api/v1/reports/executive   request JSON in, application/pdf out
//	POST /api/v1/reports/filename    metadata in, {"filename": ...} out
//	GET  /api/v1/exports?case=&limit=
//
// Errors are JSON objects {"code": ..., "message": ...}. An X-Tenant-ID
// header gives the caller its own namespace in the shared cache.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/execreport/pkg/cache"
	"github.com/matzehuels/execreport/pkg/config"
	pkgio "github.com/matzehuels/execreport/pkg/io"
	"github.com/matzehuels/execreport/pkg/pipeline"
)

// DefaultShutdownTimeout bounds graceful shutdown.
const DefaultShutdownTimeout = 10 * time.Second

// Config configures the listener.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
}

// ConfigFrom converts the [server] section of the config file.
func ConfigFrom(c config.ServerConfig) Config {
	return Config{
		Addr:         c.Addr,
		ReadTimeout:  c.ReadTimeout.Duration,
		WriteTimeout: c.WriteTimeout.Duration,
		MaxBodyBytes: c.MaxBodyBytes,
	}
}

// Server is the HTTP API. It is safe for concurrent use; every request
// renders on its own surface.
type Server struct {
	runner *pipeline.Runner
	opts   pipeline.Options
	cfg    Config
	logger *log.Logger
	router chi.Router
}

// New creates a server generating with runner. opts are the defaults for
// every request; query parameters may override locale, currency and
// version.
func New(runner *pipeline.Runner, opts pipeline.Options, cfg Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = config.Default().Server.MaxBodyBytes
	}
	opts.Logger = logger
	s := &Server{
		runner: runner,
		opts:   opts,
		cfg:    cfg,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(limitBody(s.cfg.MaxBodyBytes))

	r.Get("/healthz", s.health)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/reports/executive", s.executive)
		r.Post("/reports/filename", s.filename)
		r.Get("/exports", s.exports)
	})
	return r
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler { return s.router }

// chartOptions shares the runner's cache for fetched chart images.
func (s *Server) chartOptions(keyer cache.Keyer) pkgio.LoadOptions {
	return pkgio.LoadOptions{
		Cache:  s.runner.Cache,
		Keyer:  keyer,
		Logger: s.logger,
	}
}

// Run serves on cfg.Addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("graceful shutdown failed", "err", err)
			return srv.Close()
		}
		return nil
	}
}
