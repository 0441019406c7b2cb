package api

import (
	"log/slog"
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/mcoot/wordchain/internal/api/apierr"
	"github.com/mcoot/wordchain/internal/api/handler"
	"github.com/mcoot/wordchain/internal/api/sse"
	"github.com/mcoot/wordchain/internal/middleware"
	"github.com/mcoot/wordchain/internal/services/round"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	RoundController *round.Controller
	HubManager      *sse.HubManager
	HealthHandler   *handler.HealthHandler

	// AllowedOrigins for CORS; empty allows all
	AllowedOrigins []string
	// EnableSentry attaches a Sentry hub to every request
	EnableSentry bool
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	roundHandler := handler.NewRoundHandler(cfg.RoundController, cfg.HubManager, cfg.Logger)
	healthHandler := cfg.HealthHandler
	if healthHandler == nil {
		healthHandler = handler.NewHealthHandler("", "", nil, cfg.Logger)
	}

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	rounds := api.PathPrefix("/rounds").Subrouter()
	rounds.HandleFunc("", roundHandler.Create).Methods(http.MethodPost)
	rounds.HandleFunc("/{id}", roundHandler.Get).Methods(http.MethodGet)
	rounds.HandleFunc("/{id}", roundHandler.Delete).Methods(http.MethodDelete)
	rounds.HandleFunc("/{id}/words", roundHandler.Submit).Methods(http.MethodPost)
	rounds.HandleFunc("/{id}/give-up", roundHandler.GiveUp).Methods(http.MethodPost)
	rounds.HandleFunc("/{id}/restart", roundHandler.Restart).Methods(http.MethodPost)
	rounds.HandleFunc("/{id}/events", roundHandler.Events).Methods(http.MethodGet)

	api.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	var h http.Handler = c.Handler(r)
	if cfg.EnableSentry {
		sentryHandler := sentryhttp.New(sentryhttp.Options{
			Repanic:         false,
			WaitForDelivery: false,
			Timeout:         2 * time.Second,
		})
		h = sentryHandler.Handle(h)
	}
	return h
}
