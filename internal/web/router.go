package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordchain/internal/api/sse"
	"github.com/mcoot/wordchain/internal/middleware"
	"github.com/mcoot/wordchain/internal/services/round"
	"github.com/mcoot/wordchain/internal/web/handler"
	webmiddleware "github.com/mcoot/wordchain/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger          *slog.Logger
	RoundController *round.Controller
	HubManager      *sse.HubManager
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger, handler.PanicPage))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(webmiddleware.Flash())

	// Create SSE hub manager if not provided
	hubManager := cfg.HubManager
	if hubManager == nil {
		hubManager = sse.NewHubManager(cfg.Logger)
	}

	homeHandler := handler.NewHomeHandler(cfg.RoundController)
	roundHandler := handler.NewRoundHandler(cfg.RoundController, hubManager, cfg.Logger)

	r.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	r.HandleFunc("/play", roundHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/play/{id}", roundHandler.View).Methods(http.MethodGet)
	r.HandleFunc("/play/{id}/word", roundHandler.Word).Methods(http.MethodPost)
	r.HandleFunc("/play/{id}/give-up", roundHandler.GiveUp).Methods(http.MethodPost)
	r.HandleFunc("/play/{id}/restart", roundHandler.Restart).Methods(http.MethodPost)
	r.HandleFunc("/play/{id}/events", roundHandler.Events).Methods(http.MethodGet)

	return r
}
