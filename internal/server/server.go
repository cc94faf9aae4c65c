// Package server implements the drawspec HTTP API.
//
// The API wraps a [pipeline.Runner] so that compile and render requests
// share the CLI's caching and defaults, and a [store.Store] for compiled
// scenes fetched later by id.
//
// Request bodies are diagram documents. JSON is the default; send
// Content-Type application/toml (or ?doc_format=toml) for TOML. Compile
// options come from query parameters: margin, auto_fit, anchor, y_axis,
// scale, title.
//
// Errors are JSON objects {"code": ..., "message": ...} with the status
// derived from the error code.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/drawspec/pkg/observability"
	"github.com/matzehuels/drawspec/pkg/pipeline"
	"github.com/matzehuels/drawspec/pkg/store"
)

const (
	// maxBodyBytes bounds request documents.
	maxBodyBytes = 10 << 20

	shutdownTimeout = 10 * time.Second
)

// Server serves the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	store    store.Store
	logger   *log.Logger
	defaults pipeline.Options
	router   chi.Router
}

// New creates a server. defaults seeds the options of every request.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger, defaults pipeline.Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if st == nil {
		st = store.NewMemoryStore()
	}
	s := &Server{
		runner:   runner,
		store:    st,
		logger:   logger,
		defaults: defaults,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.RequestSize(maxBodyBytes))
		r.Post("/compile", s.handleCompile)
		r.Post("/render/{format}", s.handleRender)
		r.Post("/scenes", s.handleCreateScene)
		r.Get("/scenes/{id}", s.handleGetScene)
	})

	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// instrument reports requests to the server hooks and the debug log.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.Server()

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnRequest(r.Context(), r.Method, route)
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
