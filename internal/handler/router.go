package handler

import (
	"net/http"
	"time"

	"team-vote/internal/middleware"
	"team-vote/internal/service"
	"team-vote/pkg/logger"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// RouterConfig carries everything NewRouter needs
type RouterConfig struct {
	Services       *service.Services
	Database       Pinger
	AllowedOrigins []string
	Logger         *logger.Logger

	// RequestTimeout bounds JSON routes. The live results stream is exempt.
	RequestTimeout time.Duration
}

// NewRouter configures and returns the HTTP router
func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}

	r := chi.NewRouter()

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.AllowedOrigins

	r.Use(middleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.CORS(corsConfig, log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Compress(5))

	healthHandler := NewHealthHandler(cfg.Database, cfg.Services.Cache, log)
	teamHandler := NewTeamHandler(cfg.Services.Teams, log)
	candidateHandler := NewCandidateHandler(cfg.Services.Candidates, log)
	votingHandler := NewVotingHandler(cfg.Services.Voting, log)
	liveResultsHandler := NewLiveResultsHandler(cfg.Services.Tallies, log)

	r.Get("/health", healthHandler.Check)

	r.Route("/api", func(r chi.Router) {
		// Long-lived; outside the request timeout.
		r.Get("/live-results", liveResultsHandler.Stream)

		r.Group(func(r chi.Router) {
			r.Use(chiMiddleware.Timeout(cfg.RequestTimeout))

			r.Get("/teams", teamHandler.List)
			r.Post("/teams", teamHandler.Create)

			r.Get("/candidates", candidateHandler.List)
			r.Post("/candidates", candidateHandler.Create)

			r.Get("/votes", votingHandler.ListVotes)
			r.Post("/votes", votingHandler.CastVote)

			r.Get("/admin/stats", votingHandler.AdminStats)
		})
	})

	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	log.Debug("Router configured successfully")
	return r
}
