package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aramroll/aramroll/internal/model"
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
	CodeInvalidRequest         = "INVALID_REQUEST"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeRoomNotFound           = "ROOM_NOT_FOUND"
	CodeBadPassword            = "BAD_PASSWORD"
	CodeNotAuthorized          = "NOT_AUTHORIZED"
	CodePlayerNotFound         = "PLAYER_NOT_FOUND"
	CodeTeamFull               = "TEAM_FULL"
	CodeInsufficientCandidates = "INSUFFICIENT_CANDIDATES"
	CodePoolNotFound           = "POOL_NOT_FOUND"
	CodeCatalogUnavailable     = "CATALOG_UNAVAILABLE"
	CodeChampionNotFound       = "CHAMPION_NOT_FOUND"
	CodeInvalidVoteChannel     = "INVALID_VOTE_CHANNEL"
	CodeInvalidTeam            = "INVALID_TEAM"
	CodeInternalError          = "INTERNAL_ERROR"
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
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoomNotFound, "Room not found"}}
	case errors.Is(err, model.ErrBadPassword):
		return &httpError{http.StatusForbidden, APIError{CodeBadPassword, "Incorrect room password"}}
	case errors.Is(err, model.ErrNotAuthorized):
		return &httpError{http.StatusForbidden, APIError{CodeNotAuthorized, "Only the host can perform this action"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found in this room"}}
	case errors.Is(err, model.ErrTeamFull):
		return &httpError{http.StatusConflict, APIError{CodeTeamFull, "Team is full"}}
	case errors.Is(err, model.ErrInsufficientCandidates):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientCandidates, "Not enough champions left to roll a full pool"}}
	case errors.Is(err, model.ErrPoolNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePoolNotFound, "No pool has been rolled yet"}}
	case errors.Is(err, model.ErrCatalogUnavailable):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeCatalogUnavailable, "Champion catalog is not available"}}
	case errors.Is(err, model.ErrInvalidVoteChannel):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidVoteChannel, "Unknown vote channel"}}
	case errors.Is(err, model.ErrInvalidTeam):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTeam, "Team must be team1 or team2"}}

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
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Participant identity required"}}
}

// NewChampionNotFoundError creates a champion lookup error
func NewChampionNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{CodeChampionNotFound, "Champion not found"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
