// Package api implements the posetrank HTTP API.
//
// The API exposes analyses as resources: POST /api/v1/analyses runs the
// pipeline and stores the result, GET /api/v1/analyses/{id} retrieves it.
// Intractable inputs are not an error at this level; the stored analysis
// carries the rank intervals and is marked intractable.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/posetrank/posetrank/pkg/buildinfo"
	"github.com/posetrank/posetrank/pkg/errors"
	"github.com/posetrank/posetrank/pkg/order/rank"
	"github.com/posetrank/posetrank/pkg/pipeline"
)

// Server routes analysis requests to a pipeline runner and a store.
type Server struct {
	runner *pipeline.Runner
	store  Store
	logger *log.Logger
	router chi.Router
}

// NewServer wires up the router. If store is nil, a MemoryStore is used.
func NewServer(runner *pipeline.Runner, store Store, logger *log.Logger) *Server {
	if store == nil {
		store = NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		store:  store,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyses", s.handleCreateAnalysis)
		r.Get("/analyses/{id}", s.handleGetAnalysis)
	})

	s.router = r
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body"))
		return
	}
	if err := opts.ValidateForLoad(); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid options"))
		return
	}

	ctx := r.Context()
	p, err := s.runner.Load(ctx, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	analysis := &Analysis{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Options:   opts,
		Labels:    p.Labels(),
		Intervals: rank.Intervals(p),
	}
	if data, err := s.runner.RelationHash(p); err == nil {
		analysis.RelationHash = data
	}

	stats, err := s.runner.Stats(ctx, p, opts)
	switch {
	case err == nil:
		analysis.Stats = stats
	case errors.Is(err, errors.ErrCodeIntractable):
		analysis.Intractable = true
		analysis.Detail = errors.UserMessage(err)
	default:
		s.writeError(w, err)
		return
	}

	if err := s.store.Put(ctx, analysis); err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, analysis)
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// logRequests logs each request with method, path, status, and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status >= 500 {
		s.logger.Error("request failed", "code", code, "err", err)
	}
	writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(code),
	})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidRelation,
		errors.ErrCodeInvalidMatrix,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidElement:
		return http.StatusBadRequest
	case errors.ErrCodeDegenerateInput, errors.ErrCodeIntractable:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound,
		errors.ErrCodeAnalysisNotFound,
		errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
