package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/issue-battleships/internal/api/apierr"
	"github.com/mcoot/issue-battleships/internal/api/request"
	"github.com/mcoot/issue-battleships/internal/api/response"
	"github.com/mcoot/issue-battleships/internal/model"
	"github.com/mcoot/issue-battleships/internal/services/game"
	"github.com/mcoot/issue-battleships/internal/services/leaderboard"
	"github.com/mcoot/issue-battleships/internal/services/render"
)

// GameHandler handles game endpoints
type GameHandler struct {
	gameController     game.ControllerInterface
	leaderboardService leaderboard.ServiceInterface
	renderService      *render.Service
	logger             *slog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(
	gameController game.ControllerInterface,
	leaderboardService leaderboard.ServiceInterface,
	renderService *render.Service,
	logger *slog.Logger,
) *GameHandler {
	return &GameHandler{
		gameController:     gameController,
		leaderboardService: leaderboardService,
		renderService:      renderService,
		logger:             logger,
	}
}

// Event handles POST /api/v1/events
func (h *GameHandler) Event(w http.ResponseWriter, r *http.Request) {
	var req request.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	player := model.PlayerHandle(strings.TrimSpace(req.Player))
	if player == "" {
		WriteError(w, NewInvalidRequestError("player is required"))
		return
	}

	res, err := h.gameController.HandleEvent(r.Context(), model.Event{
		Player: player,
		Title:  req.Title,
		Body:   req.Body,
	})
	if err != nil {
		h.writeGameError(w, player, err)
		return
	}

	resp := response.EventResponse{Command: res.Command, Move: res.Move, Reset: res.Reset}
	if res.Move != nil {
		resp.Reply = h.renderService.MoveReply(res.Move)
	} else if res.Reset != nil {
		resp.Reply = h.renderService.ResetReply(res.Reset)
	}
	response.JSON(w, http.StatusOK, resp)
}

// Move handles POST /api/v1/moves
func (h *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req request.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	player := model.PlayerHandle(strings.TrimSpace(req.Player))
	if player == "" {
		WriteError(w, NewInvalidRequestError("player is required"))
		return
	}

	coord, err := model.ParseCoordinate(req.Coordinate)
	if err != nil {
		h.writeGameError(w, player, err)
		return
	}

	res, err := h.gameController.ProcessMove(r.Context(), player, coord)
	if err != nil {
		h.writeGameError(w, player, err)
		return
	}

	response.Move(w, res, h.renderService.MoveReply(res))
}

// Reset handles POST /api/v1/reset
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req request.ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	actor := model.PlayerHandle(strings.TrimSpace(req.Actor))
	if actor == "" {
		WriteError(w, NewInvalidRequestError("actor is required"))
		return
	}

	res, err := h.gameController.Reset(r.Context(), actor)
	if err != nil {
		h.writeGameError(w, actor, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ResetResponse{
		Result: res,
		Reply:  h.renderService.ResetReply(res),
	})
}

// Get handles GET /api/v1/game
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	state, err := h.gameController.State(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	var resp response.GameResponse
	if state.Session != nil {
		g := response.GameFromModel(state.Session)
		resp.Game = &g
		resp.Markdown = h.renderService.Board(state.Session)
	}
	response.JSON(w, http.StatusOK, resp)
}

// Leaderboard handles GET /api/v1/leaderboard
func (h *GameHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	state, err := h.gameController.State(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	entries := []leaderboard.Entry{}
	if state.Session != nil {
		entries = h.leaderboardService.Rankings(state.Session)
	}
	response.JSON(w, http.StatusOK, response.LeaderboardResponse{Entries: entries})
}

// AllTime handles GET /api/v1/leaderboard/all-time
func (h *GameHandler) AllTime(w http.ResponseWriter, r *http.Request) {
	state, err := h.gameController.State(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AllTimeResponse{
		Entries: h.leaderboardService.AllTimeRankings(state),
		Rounds:  state.SortedRounds(),
	})
}

// Round handles GET /api/v1/rounds/{number}
func (h *GameHandler) Round(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(mux.Vars(r)["number"])
	if err != nil || number < 1 {
		WriteError(w, NewInvalidRequestError("round number must be a positive integer"))
		return
	}

	round, err := h.gameController.Round(r.Context(), number)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RoundResponse{Round: round})
}

// writeGameError writes a game error using the same reply text a player
// would see on their issue
func (h *GameHandler) writeGameError(w http.ResponseWriter, player model.PlayerHandle, err error) {
	if model.IsPlayerError(err) {
		WriteError(w, apierr.WithMessage(err, h.renderService.ErrorReply(player, err)))
		return
	}
	h.logger.Error("game request failed",
		slog.String("player", string(player)),
		slog.String("error", err.Error()),
	)
	WriteError(w, err)
}
