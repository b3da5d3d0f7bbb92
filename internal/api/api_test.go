package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/issue-battleships/internal/api"
	"github.com/mcoot/issue-battleships/internal/api/apierr"
	"github.com/mcoot/issue-battleships/internal/api/response"
	"github.com/mcoot/issue-battleships/internal/factory"
	"github.com/mcoot/issue-battleships/internal/services/auth"
	"github.com/mcoot/issue-battleships/internal/testutil"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T, opts ...func(*factory.Config)) *testServer {
	t.Helper()

	app := factory.NewTestApp(opts...)

	router := api.NewRouter(api.RouterConfig{
		Logger:             testutil.NopLogger(),
		AuthService:        app.AuthService,
		GameController:     app.GameController,
		LeaderboardService: app.LeaderboardService,
		RenderService:      app.RenderService,
		BotService:         app.BotService,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apierr.APIError {
	t.Helper()
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestGetGameBeforeFirstMove(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/game", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.GameResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Nil(t, resp.Game)
}

func TestMoveAndGame(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/moves", map[string]string{"player": "alice", "coordinate": "b4"}, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))

	var moveResp response.MoveResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &moveResp))
	require.NotNil(t, moveResp.Result)
	assert.Equal(t, "B4", moveResp.Result.Coordinate.String())
	assert.NotEmpty(t, moveResp.Reply)

	rr = ts.request(http.MethodGet, "/api/v1/game", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var gameResp response.GameResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &gameResp))
	require.NotNil(t, gameResp.Game)
	assert.Equal(t, 1, gameResp.Game.Round)
	assert.Equal(t, 1, gameResp.Game.TotalMoves)
	assert.Len(t, gameResp.Game.Board, 10)
	require.Len(t, gameResp.Game.RecentMoves, 1)
	assert.Equal(t, "alice", gameResp.Game.RecentMoves[0].Player)
	assert.NotEmpty(t, gameResp.Markdown)

	// Ship positions stay hidden while the game is active
	for _, ship := range gameResp.Game.Fleet {
		assert.Empty(t, ship.Cells)
	}
}

func TestMoveCooldown(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/moves", map[string]string{"player": "alice", "coordinate": "A1"}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/moves", map[string]string{"player": "alice", "coordinate": "A2"}, "")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	apiErr := decodeError(t, rr)
	assert.Equal(t, apierr.CodeCooldownActive, apiErr.Code)
	assert.Contains(t, apiErr.Message, "2h 0m")
}

func TestMoveAlreadyPlayed(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/moves", map[string]string{"player": "alice", "coordinate": "E5"}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/moves", map[string]string{"player": "bob", "coordinate": "E5"}, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	apiErr := decodeError(t, rr)
	assert.Equal(t, apierr.CodeAlreadyPlayed, apiErr.Code)
	assert.Contains(t, apiErr.Message, "`E5` was already played")
}

func TestMoveInvalidCoordinate(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/moves", map[string]string{"player": "alice", "coordinate": "Z9"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeOutOfBounds, decodeError(t, rr).Code)

	rr = ts.request(http.MethodPost, "/api/v1/moves", map[string]string{"player": "alice", "coordinate": "??"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidFormat, decodeError(t, rr).Code)
}

func TestMoveMissingPlayer(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/moves", map[string]string{"coordinate": "A1"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, decodeError(t, rr).Code)
}

func TestEventMove(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"player": "alice", "title": "Battleship move", "body": "/move C3"}
	rr := ts.request(http.MethodPost, "/api/v1/events", body, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.EventResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "move", string(resp.Command))
	require.NotNil(t, resp.Move)
	assert.Equal(t, "C3", resp.Move.Coordinate.String())
	assert.NotEmpty(t, resp.Reply)
}

func TestEventInvalidFormat(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"player": "alice", "title": "Move B4 B5"}
	rr := ts.request(http.MethodPost, "/api/v1/events", body, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	apiErr := decodeError(t, rr)
	assert.Equal(t, apierr.CodeInvalidFormat, apiErr.Code)
	assert.Contains(t, apiErr.Message, "Invalid move format")
}

func TestReset(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/moves", map[string]string{"player": "alice", "coordinate": "A1"}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	// Non-admins are refused
	rr = ts.request(http.MethodPost, "/api/v1/reset", map[string]string{"actor": "alice"}, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, apierr.CodeNotAdmin, decodeError(t, rr).Code)

	rr = ts.request(http.MethodPost, "/api/v1/reset", map[string]string{"actor": string(factory.TestAdmin)}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.ResetResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.Result)
	assert.Equal(t, 2, resp.Result.Round)
	assert.Contains(t, resp.Reply, "Round 002 begins")

	// The archived round is now readable
	rr = ts.request(http.MethodGet, "/api/v1/rounds/1", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var roundResp response.RoundResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &roundResp))
	require.NotNil(t, roundResp.Round)
	assert.Equal(t, 1, roundResp.Round.Number)
	assert.Equal(t, 1, roundResp.Round.Moves)
}

func TestRoundNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/rounds/7", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeRoundNotFound, decodeError(t, rr).Code)
}

func TestLeaderboards(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/moves", map[string]string{"player": "alice", "coordinate": "A1"}, "")
	require.Equal(t, http.StatusOK, rr.Code)
	rr = ts.request(http.MethodPost, "/api/v1/moves", map[string]string{"player": "bob", "coordinate": "J10"}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/leaderboard", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var lb response.LeaderboardResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &lb))
	assert.Len(t, lb.Entries, 2)

	rr = ts.request(http.MethodGet, "/api/v1/leaderboard/all-time", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var at response.AllTimeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &at))
	assert.Len(t, at.Entries, 2)
}

func TestTokenRequired(t *testing.T) {
	hash, err := auth.HashToken("s3cret")
	require.NoError(t, err)
	ts := newTestServer(t, func(cfg *factory.Config) { cfg.APITokenHash = hash })

	body := map[string]string{"player": "alice", "coordinate": "A1"}

	rr := ts.request(http.MethodPost, "/api/v1/moves", body, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/moves", body, "wrong")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/moves", body, "s3cret")
	assert.Equal(t, http.StatusOK, rr.Code)

	// Reads stay public
	rr = ts.request(http.MethodGet, "/api/v1/game", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestBotSuggest(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/bot/suggest", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.SuggestionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "hunt", resp.Strategy)
	assert.Equal(t, "A1", resp.Coordinate.String())

	rr = ts.request(http.MethodGet, "/api/v1/bot/suggest?strategy=psychic", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeUnknownStrategy, decodeError(t, rr).Code)
}

func TestBotMove(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/bot/moves", map[string]string{"player": "autopilot", "strategy": "random"}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.MoveResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.Result)
	assert.Equal(t, "autopilot", string(resp.Result.Player))
	assert.Contains(t, resp.Reply, "@autopilot")

	rr = ts.request(http.MethodPost, "/api/v1/bot/moves", map[string]string{"player": "autopilot"}, "")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, apierr.CodeCooldownActive, decodeError(t, rr).Code)

	rr = ts.request(http.MethodPost, "/api/v1/bot/moves", map[string]string{}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
