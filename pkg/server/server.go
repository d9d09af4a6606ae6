// Package server exposes the colouring search over HTTP.
//
// # Endpoints
//
//	GET  /healthz              liveness and build version
//	GET  /v1/optimal           the known-optimal table
//	GET  /v1/optimal/{name}    one entry of the table
//	POST /v1/color             colour a DIMACS graph sent as the request body
//	POST /v1/render            colour and draw a DIMACS graph (dot or svg)
//
// /v1/color and /v1/render accept the query parameters name, trials and
// seed. The name keys the optimal-table lookup and the per-graph seed, so
// posting myciel3.col.txt under its file name reports whether it was solved.
//
// Errors are JSON objects {"error": "...", "code": "PARSE_ERROR"} with a
// status derived from the error code.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/chromabench/pkg/dimacs"
	"github.com/matzehuels/chromabench/pkg/optimal"
	"github.com/matzehuels/chromabench/pkg/pipeline"
)

// Defaults for request limits.
const (
	DefaultMaxBodyBytes = 32 << 20
	DefaultMaxTrials    = 100_000
	DefaultMaxVertices  = 5000
	DefaultTimeout      = 5 * time.Minute
)

// Config configures a Server.
type Config struct {
	// Runner performs the searches. Nil means an uncached runner.
	Runner *pipeline.Runner

	// Defaults are the search options applied before query parameters.
	Defaults pipeline.Options

	// Optimal is the known-optimal table. Nil means the built-in table.
	Optimal optimal.Table

	// MaxTrials caps the trials query parameter.
	MaxTrials int

	// MaxVertices caps the vertex count a request graph may declare. It is
	// clamped to dimacs.MaxVertices.
	MaxVertices int

	// MaxBodyBytes caps the DIMACS request body.
	MaxBodyBytes int64

	// Timeout bounds a single request.
	Timeout time.Duration

	Logger *log.Logger
}

// Server is the HTTP colouring service.
type Server struct {
	cfg    Config
	router chi.Router
}

// New creates a server with cfg, applying defaults to unset fields.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Optimal == nil {
		cfg.Optimal = optimal.Default()
	}
	if cfg.MaxTrials <= 0 {
		cfg.MaxTrials = DefaultMaxTrials
	}
	if cfg.MaxVertices <= 0 || cfg.MaxVertices > dimacs.MaxVertices {
		cfg.MaxVertices = min(DefaultMaxVertices, dimacs.MaxVertices)
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	s := &Server{cfg: cfg}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/optimal", s.handleOptimalList)
		r.Get("/optimal/{name}", s.handleOptimalGet)
		r.With(middleware.Timeout(s.cfg.Timeout)).Post("/color", s.handleColor)
		r.With(middleware.Timeout(s.cfg.Timeout)).Post("/render", s.handleRender)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.cfg.Logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
