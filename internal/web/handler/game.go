package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/mcoot/issue-battleships/internal/model"
	"github.com/mcoot/issue-battleships/internal/services/game"
	"github.com/mcoot/issue-battleships/internal/services/leaderboard"
	"github.com/mcoot/issue-battleships/internal/web/templates/layout"
	"github.com/mcoot/issue-battleships/internal/web/templates/pages"
)

// RefreshSeconds is how often the game page reloads itself
const RefreshSeconds = 60

// GameHandler handles the board pages
type GameHandler struct {
	gameController     game.ControllerInterface
	leaderboardService leaderboard.ServiceInterface
	logger             *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(gameController game.ControllerInterface, leaderboardService leaderboard.ServiceInterface, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameController:     gameController,
		leaderboardService: leaderboardService,
		logger:             logger,
	}
}

// View renders the current game
func (h *GameHandler) View(w http.ResponseWriter, r *http.Request) {
	state, err := h.gameController.State(r.Context())
	if err != nil {
		h.serverError(w, err)
		return
	}

	data := pages.GameData{
		PageData: layout.PageData{Title: "Current Game", Refresh: RefreshSeconds},
		Session:  state.Session,
		AllTime:  h.leaderboardService.AllTimeRankings(state),
		Rounds:   state.SortedRounds(),
	}
	if state.Session != nil {
		data.Leaderboard = h.leaderboardService.Rankings(state.Session)
	}

	h.render(w, r, http.StatusOK, pages.Game(data))
}

// Round renders an archived round
func (h *GameHandler) Round(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(mux.Vars(r)["number"])
	if err != nil || number < 1 {
		h.notFound(w, r, "That round does not exist.")
		return
	}

	round, err := h.gameController.Round(r.Context(), number)
	if errors.Is(err, model.ErrRoundNotFound) {
		h.notFound(w, r, fmt.Sprintf("Round %03d has not been played.", number))
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}

	data := pages.RoundData{
		PageData: layout.PageData{Title: fmt.Sprintf("Round %03d", number)},
		Round:    round,
	}
	h.render(w, r, http.StatusOK, pages.Round(data))
}

// NotFound renders the 404 page for unknown paths
func (h *GameHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.notFound(w, r, "Page not found.")
}

func (h *GameHandler) notFound(w http.ResponseWriter, r *http.Request, message string) {
	h.render(w, r, http.StatusNotFound, pages.NotFound(layout.PageData{Title: "Not Found"}, message))
}

func (h *GameHandler) render(w http.ResponseWriter, r *http.Request, status int, page templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render page", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
	}
}

func (h *GameHandler) serverError(w http.ResponseWriter, err error) {
	h.logger.Error("failed to load game state", slog.String("error", err.Error()))
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
