// Package server serves commit cards over HTTP.
//
// Routes:
//
//	GET /, /api, /api/*   card for ?u=owner&repo=name (plus display options)
//	GET /healthz          liveness probe
//	GET /themes           JSON list of theme names and font keys
//
// Every card request goes through [pipeline.Runner.Execute], so a response
// is always an SVG. A missing owner or repository yields 400; any other
// failure is rendered as an error card with status 200 so that image embeds
// still show the message.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/commitcard/pkg/errors"
	"github.com/matzehuels/commitcard/pkg/fonts"
	"github.com/matzehuels/commitcard/pkg/pipeline"
	"github.com/matzehuels/commitcard/pkg/themes"
)

// ContentTypeSVG is the content type of every card response.
const ContentTypeSVG = "image/svg+xml; charset=utf-8"

const shutdownTimeout = 30 * time.Second

// Server owns the router and the card pipeline.
type Server struct {
	router *chi.Mux
	runner *pipeline.Runner
	config Config
	logger *log.Logger
}

// New creates a Server that renders cards with runner.
func New(cfg Config, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		router: chi.NewRouter(),
		runner: runner,
		config: cfg,
		logger: logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(requestLogger(s.logger))

	s.router.Get("/", s.handleCard)
	s.router.Get("/api", s.handleCard)
	s.router.Get("/api/*", s.handleCard)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/themes", s.handleThemes)
}

// ServeHTTP makes Server usable as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	res := s.runner.Execute(r.Context(), r.URL.Query())

	h := w.Header()
	h.Set("Content-Type", ContentTypeSVG)
	h.Set("Access-Control-Allow-Origin", "*")

	status := http.StatusOK
	switch {
	case res.Err == nil:
		h.Set("Cache-Control", fmt.Sprintf("public, s-maxage=%d, stale-while-revalidate", s.config.SMaxAge))
	case errors.Is(res.Err, errors.ErrCodeMissingParameter):
		h.Set("Cache-Control", "no-cache")
		status = http.StatusBadRequest
	default:
		h.Set("Cache-Control", "no-cache")
	}

	w.WriteHeader(status)
	if _, err := w.Write(res.SVG); err != nil {
		s.logger.Debug("write card", "err", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// catalog is the /themes response body.
type catalog struct {
	Themes []string `json:"themes"`
	Fonts  []string `json:"fonts"`
}

func (s *Server) handleThemes(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if err := json.NewEncoder(w).Encode(catalog{Themes: themes.Names(), Fonts: fonts.Keys()}); err != nil {
		s.logger.Debug("write themes", "err", err)
	}
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: s.config.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.config.Addr, "api", s.config.API)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}
	return nil
}
