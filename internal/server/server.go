package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/me/langparse/internal/config"
	"github.com/me/langparse/internal/store"
	"github.com/me/langparse/pkg/model"
)

// Parser resolves a descriptor in a remote repository.
// *langparse.Service is the production implementation.
type Parser interface {
	Parse(ctx context.Context, lang model.Language, req *model.LanguageParsingRequest) (*model.LanguageParsingResponse, error)
}

// Server is the langparse REST API server.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.ServerConfig
	startTime time.Time
	parser    Parser
	store     store.Store // optional; history endpoints return empty lists when nil
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithStore exposes resolution history from st.
func WithStore(st store.Store) Option {
	return func(s *Server) {
		s.store = st
	}
}

// New creates a new Server with all routes registered.
func New(cfg config.ServerConfig, p Parser, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		parser:    p,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/", s.handleDiscovery)
		r.Get("/health", s.handleHealth)

		r.Route("/languages", func(r chi.Router) {
			r.Post("/nextflow/parse", s.handleParse(model.LanguageNextflow))
			r.Post("/wdl/parse", s.handleParse(model.LanguageWDL))
		})

		r.Route("/resolutions", func(r chi.Router) {
			r.Get("/", s.handleListResolutions)
			r.Get("/{id}", s.handleGetResolution)
		})
	})
}
