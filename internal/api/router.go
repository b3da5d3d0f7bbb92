package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/issue-battleships/internal/api/handler"
	"github.com/mcoot/issue-battleships/internal/api/middleware"
	"github.com/mcoot/issue-battleships/internal/api/response"
	"github.com/mcoot/issue-battleships/internal/services/auth"
	"github.com/mcoot/issue-battleships/internal/services/bot"
	"github.com/mcoot/issue-battleships/internal/services/game"
	"github.com/mcoot/issue-battleships/internal/services/leaderboard"
	"github.com/mcoot/issue-battleships/internal/services/render"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	AuthService        auth.ServiceInterface
	GameController     game.ControllerInterface
	LeaderboardService leaderboard.ServiceInterface
	RenderService      *render.Service
	BotService         bot.ServiceInterface
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.LeaderboardService, cfg.RenderService, cfg.Logger)
	botHandler := handler.NewBotHandler(cfg.BotService, cfg.RenderService, cfg.Logger)

	// Create middleware
	tokenMiddleware := middleware.RequireToken(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Read-only routes
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/game", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard", gameHandler.Leaderboard).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard/all-time", gameHandler.AllTime).Methods(http.MethodGet)
	api.HandleFunc("/rounds/{number:[0-9]+}", gameHandler.Round).Methods(http.MethodGet)
	api.HandleFunc("/bot/suggest", botHandler.Suggest).Methods(http.MethodGet)

	// Mutating routes require the bearer token
	protected := api.NewRoute().Subrouter()
	protected.Use(tokenMiddleware)
	protected.HandleFunc("/events", gameHandler.Event).Methods(http.MethodPost)
	protected.HandleFunc("/moves", gameHandler.Move).Methods(http.MethodPost)
	protected.HandleFunc("/reset", gameHandler.Reset).Methods(http.MethodPost)
	protected.HandleFunc("/bot/moves", botHandler.Move).Methods(http.MethodPost)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
