package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcoot/issue-battleships/internal/api/apierr"
	"github.com/mcoot/issue-battleships/internal/api/request"
	"github.com/mcoot/issue-battleships/internal/api/response"
	"github.com/mcoot/issue-battleships/internal/model"
	"github.com/mcoot/issue-battleships/internal/services/bot"
	"github.com/mcoot/issue-battleships/internal/services/render"
)

// BotHandler handles autopilot endpoints
type BotHandler struct {
	botService    bot.ServiceInterface
	renderService *render.Service
	logger        *slog.Logger
}

// NewBotHandler creates a new bot handler
func NewBotHandler(botService bot.ServiceInterface, renderService *render.Service, logger *slog.Logger) *BotHandler {
	return &BotHandler{
		botService:    botService,
		renderService: renderService,
		logger:        logger,
	}
}

// Suggest handles GET /api/v1/bot/suggest?strategy=hunt
func (h *BotHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	strategy := strategyOrDefault(r.URL.Query().Get("strategy"))

	coord, err := h.botService.Suggest(r.Context(), strategy)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SuggestionResponse{Strategy: strategy, Coordinate: coord})
}

// Move handles POST /api/v1/bot/moves
func (h *BotHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req request.BotMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	player := model.PlayerHandle(strings.TrimSpace(req.Player))
	if player == "" {
		WriteError(w, NewInvalidRequestError("player is required"))
		return
	}

	res, err := h.botService.Play(r.Context(), player, strategyOrDefault(req.Strategy))
	if err != nil {
		if model.IsPlayerError(err) {
			WriteError(w, apierr.WithMessage(err, h.renderService.ErrorReply(player, err)))
			return
		}
		h.logger.Error("bot move failed",
			slog.String("player", string(player)),
			slog.String("error", err.Error()),
		)
		WriteError(w, err)
		return
	}

	response.Move(w, res, h.renderService.MoveReply(res))
}

func strategyOrDefault(name string) string {
	if name = strings.TrimSpace(name); name == "" {
		return bot.StrategyHunt
	}
	return name
}
