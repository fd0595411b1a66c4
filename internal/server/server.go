// Package server exposes the API documentation over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/vitalvas/introspec/apispec"
	"github.com/vitalvas/introspec/internal/config"
)

const shutdownTimeout = 15 * time.Second

// Server holds the HTTP router and the spec service it exposes.
type Server struct {
	cfg     config.Config
	spec    *apispec.Service
	version string
	logger  zerolog.Logger
	router  chi.Router
}

// New constructs a Server with its middleware stack and routes mounted.
func New(cfg config.Config, spec *apispec.Service, version string, logger zerolog.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		spec:    spec,
		version: version,
		logger:  logger.With().Str("component", "server").Logger(),
	}
	s.router = s.buildRouter()
	return s
}

// Router returns the underlying chi.Router so it can be used by http.Server.
func (s *Server) Router() chi.Router {
	return s.router
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(RequestID(false))
	r.Use(RequestLogger(s.logger))
	r.Use(Recovery(s.logger))
	r.Use(SecurityHeaders)

	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Group(func(r chi.Router) {
		r.Use(CacheControl(s.cfg.Endpoints.CacheMaxAge))

		s.spec.Handle(r, s.cfg.BasePath, &apispec.HandleConfig{
			JSONFilename: s.cfg.Endpoints.JSON,
			YAMLFilename: s.cfg.Endpoints.YAML,
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Run serves on the configured listen address until ctx is canceled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("HTTP server listening")
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info().Msg("shutting down")
	case err := <-errCh:
		if err != nil {
			s.logger.Error().Err(err).Msg("HTTP server error")
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}

	s.logger.Info().Msg("server stopped gracefully")
	return nil
}
