package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/issue-battleships/internal/services/game"
	"github.com/mcoot/issue-battleships/internal/services/leaderboard"
	"github.com/mcoot/issue-battleships/internal/web/handler"
	"github.com/mcoot/issue-battleships/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger             *slog.Logger
	GameController     game.ControllerInterface
	LeaderboardService leaderboard.ServiceInterface
	StaticDir          string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// Apply global middleware to all routes
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Create handlers
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.LeaderboardService, cfg.Logger)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	r.HandleFunc("/", gameHandler.View).Methods(http.MethodGet)
	r.HandleFunc("/rounds/{number:[0-9]+}", gameHandler.Round).Methods(http.MethodGet)
	r.NotFoundHandler = http.HandlerFunc(gameHandler.NotFound)

	return r
}
