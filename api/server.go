package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"nis2-copilot/api/handlers"
	"nis2-copilot/config"
	"nis2-copilot/core/drafts"
	"nis2-copilot/core/intake"
	"nis2-copilot/core/utils"
)

type ServerDeps struct {
	IntakeSvc *intake.Service
	AI        drafts.Completer
}

type Server struct {
	cfg     *config.AppConfig
	deps    ServerDeps
	logger  *utils.Logger
	handler http.Handler
}

func NewServer(cfg *config.AppConfig, deps ServerDeps, logger *utils.Logger) *Server {
	s := &Server{cfg: cfg, deps: deps, logger: logger}
	s.handler = s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) routes() http.Handler {
	intakeHandler := handlers.NewIntakeHandler(s.deps.IntakeSvc, s.logger)
	healthHandler := handlers.NewHealthHandler(s.deps.AI, s.logger)

	r := chi.NewRouter()
	r.Use(s.recoverMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.loggingMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Check)
		r.Get("/ai-selftest", healthHandler.AISelfTest)
		r.With(s.limitBody).Post("/incident-intake", intakeHandler.Submit)
	})
	return r
}
