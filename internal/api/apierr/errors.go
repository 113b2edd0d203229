package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mfreeman/sketchdash/internal/model"
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
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeCapacityExceeded    = "CAPACITY_EXCEEDED"
	CodeSessionNotFound     = "SESSION_NOT_FOUND"
	CodeAlreadyStarted      = "ALREADY_STARTED"
	CodeSessionFull         = "SESSION_FULL"
	CodeNameExhausted       = "NAME_EXHAUSTED"
	CodeNotHost             = "NOT_HOST"
	CodeInsufficientPlayers = "INSUFFICIENT_PLAYERS"
	CodeInternalError       = "INTERNAL_ERROR"
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

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrCapacityExceeded):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeCapacityExceeded, "Maximum number of games reached"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Game not found or expired"}}
	case errors.Is(err, model.ErrAlreadyStarted):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyStarted, "Game already started"}}
	case errors.Is(err, model.ErrSessionFull):
		return &httpError{http.StatusConflict, APIError{CodeSessionFull, "Game is full"}}
	case errors.Is(err, model.ErrNameExhausted):
		return &httpError{http.StatusConflict, APIError{CodeNameExhausted, "Could not assign a unique name"}}
	case errors.Is(err, model.ErrNotHost):
		return &httpError{http.StatusForbidden, APIError{CodeNotHost, "Only the host can start the game"}}
	case errors.Is(err, model.ErrInsufficientPlayers):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientPlayers, "Need at least 2 players"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
