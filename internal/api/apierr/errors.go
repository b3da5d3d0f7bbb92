package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/issue-battleships/internal/model"
	"github.com/mcoot/issue-battleships/internal/services/auth"
	"github.com/mcoot/issue-battleships/internal/services/bot"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeInvalidFormat   = "INVALID_FORMAT"
	CodeOutOfBounds     = "OUT_OF_BOUNDS"
	CodeAlreadyPlayed   = "ALREADY_PLAYED"
	CodeCooldownActive  = "COOLDOWN_ACTIVE"
	CodeGameOver        = "GAME_OVER"
	CodeNotAdmin        = "NOT_ADMIN"
	CodeRoundNotFound   = "ROUND_NOT_FOUND"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeStateLocked     = "STATE_LOCKED"
	CodeCorruptState    = "CORRUPT_STATE"
	CodeLayoutFailed    = "LAYOUT_FAILED"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeNoActiveSession = "NO_SESSION"
	CodeUnknownStrategy = "UNKNOWN_STRATEGY"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// messageError carries a player-facing reply alongside the underlying error
type messageError struct {
	err     error
	message string
}

func (e *messageError) Error() string { return e.err.Error() }
func (e *messageError) Unwrap() error { return e.err }

// WithMessage attaches reply text to an error. The status code is still
// chosen from the wrapped error.
func WithMessage(err error, message string) error {
	if err == nil {
		return nil
	}
	return &messageError{err: err, message: message}
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	he = mapError(err)
	var me *messageError
	if errors.As(err, &me) && me.message != "" {
		he.apiError.Message = me.message
	}
	return he
}

func mapError(err error) *httpError {
	switch {
	// Player-facing move errors
	case errors.Is(err, model.ErrInvalidFormat):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidFormat, "Invalid move format"}}
	case errors.Is(err, model.ErrOutOfBounds):
		return &httpError{http.StatusBadRequest, APIError{CodeOutOfBounds, "Coordinate is off the board"}}
	case errors.Is(err, model.ErrAlreadyPlayed):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyPlayed, "Cell was already played"}}
	case errors.Is(err, model.ErrCooldownActive):
		return &httpError{http.StatusTooManyRequests, APIError{CodeCooldownActive, "Cooldown active"}}
	case errors.Is(err, model.ErrGameOver):
		return &httpError{http.StatusConflict, APIError{CodeGameOver, "Game is already won"}}
	case errors.Is(err, model.ErrNotAdmin):
		return &httpError{http.StatusForbidden, APIError{CodeNotAdmin, "Only administrators can reset the game"}}
	case errors.Is(err, model.ErrRoundNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoundNotFound, "Round not found"}}
	case errors.Is(err, model.ErrNoSession):
		return &httpError{http.StatusNotFound, APIError{CodeNoActiveSession, "No game in progress"}}

	case errors.Is(err, bot.ErrUnknownStrategy):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownStrategy, "Unknown bot strategy"}}

	// Infrastructure errors
	case errors.Is(err, model.ErrConcurrencyConflict):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeStateLocked, "Game state is busy, try again"}}
	case errors.Is(err, model.ErrCorruptState):
		return &httpError{http.StatusInternalServerError, APIError{CodeCorruptState, "Game state is corrupt"}}
	case errors.Is(err, model.ErrLayout):
		return &httpError{http.StatusInternalServerError, APIError{CodeLayoutFailed, "Could not place the fleet"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid API token"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
