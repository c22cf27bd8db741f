package handler

import (
	"net/http"

	"github.com/aramroll/aramroll/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest         = apierr.CodeInvalidRequest
	CodeUnauthorized           = apierr.CodeUnauthorized
	CodeRoomNotFound           = apierr.CodeRoomNotFound
	CodeBadPassword            = apierr.CodeBadPassword
	CodeNotAuthorized          = apierr.CodeNotAuthorized
	CodePlayerNotFound         = apierr.CodePlayerNotFound
	CodeTeamFull               = apierr.CodeTeamFull
	CodeInsufficientCandidates = apierr.CodeInsufficientCandidates
	CodePoolNotFound           = apierr.CodePoolNotFound
	CodeCatalogUnavailable     = apierr.CodeCatalogUnavailable
	CodeChampionNotFound       = apierr.CodeChampionNotFound
	CodeInvalidVoteChannel     = apierr.CodeInvalidVoteChannel
	CodeInvalidTeam            = apierr.CodeInvalidTeam
	CodeInternalError          = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewChampionNotFoundError creates a champion lookup error
func NewChampionNotFoundError() error {
	return apierr.NewChampionNotFoundError()
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
