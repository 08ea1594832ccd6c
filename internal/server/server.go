// Package server exposes business units over a small JSON REST API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/colonyops/unitdesk/internal/core/businessunit"
	"github.com/colonyops/unitdesk/internal/core/logging"
)

// BasePath is the collection route for business units.
const BasePath = "/business-units"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Check reports whether a dependency is ready to serve traffic.
type Check func(context.Context) error

// Server serves the business unit API.
type Server struct {
	svc             *businessunit.Service
	logger          zerolog.Logger
	checks          []Check
	shutdownTimeout time.Duration
	router          chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithChecks adds readiness checks run by GET /readyz.
func WithChecks(checks ...Check) Option {
	return func(s *Server) { s.checks = append(s.checks, checks...) }
}

// WithShutdownTimeout bounds graceful shutdown in Run.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) { s.shutdownTimeout = d }
}

// New creates a server backed by svc.
func New(svc *businessunit.Service, logger zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		svc:             svc,
		logger:          logger,
		shutdownTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route(BasePath, func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Get("/{id}", s.handleGet)
		r.Put("/{id}", s.handleUpdate)
	})

	return r
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.logger.Info().Str("addr", addr).Msg("api listening")

	var err error
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if serr := srv.Shutdown(shutdownCtx); serr != nil {
			return serr
		}
		err = <-errCh
	case err = <-errCh:
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	s.logger.Info().Msg("api stopped")
	return nil
}

// requestLogger attaches the request ID to the context and logs each
// request once it completes.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := logging.WithRequestID(r.Context(), middleware.GetReqID(r.Context()))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(ctx))

		s.logger.Info().
			Ctx(ctx).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ALIVE"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	for _, check := range s.checks {
		if err := check(r.Context()); err != nil {
			s.logger.Error().Ctx(r.Context()).Err(err).Msg("readiness check failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("NOT_READY"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("READY"))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	units, err := s.svc.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, units)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in businessunit.Unit
	if !s.decode(w, r, &in) {
		return
	}

	u, err := s.svc.Create(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := logging.WithUnitID(r.Context(), id)

	u, err := s.svc.Get(ctx, id)
	if err != nil {
		s.writeError(w, r.WithContext(ctx), err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := logging.WithUnitID(r.Context(), id)

	var in businessunit.Unit
	if !s.decode(w, r, &in) {
		return
	}

	u, err := s.svc.Update(ctx, id, in)
	if err != nil {
		s.writeError(w, r.WithContext(ctx), err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body: " + err.Error()})
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErrs criterio.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:  "validation failed",
			Fields: businessunit.FieldErrorMap(fieldErrs),
		})
	case errors.Is(err, businessunit.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: businessunit.ErrNotFound.Error()})
	case errors.Is(err, businessunit.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: businessunit.ErrAlreadyExists.Error()})
	default:
		s.logger.Error().Ctx(r.Context()).Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
