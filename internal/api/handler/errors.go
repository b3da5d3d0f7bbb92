package handler

import (
	"net/http"

	"github.com/mcoot/issue-battleships/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest  = apierr.CodeInvalidRequest
	CodeInvalidFormat   = apierr.CodeInvalidFormat
	CodeOutOfBounds     = apierr.CodeOutOfBounds
	CodeAlreadyPlayed   = apierr.CodeAlreadyPlayed
	CodeCooldownActive  = apierr.CodeCooldownActive
	CodeGameOver        = apierr.CodeGameOver
	CodeNotAdmin        = apierr.CodeNotAdmin
	CodeRoundNotFound   = apierr.CodeRoundNotFound
	CodeUnauthorized    = apierr.CodeUnauthorized
	CodeInternalError   = apierr.CodeInternalError
	CodeUnknownStrategy = apierr.CodeUnknownStrategy
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}
