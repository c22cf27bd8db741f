package model

import "errors"

// Common errors used across the application
var (
	// Room errors
	ErrRoomNotFound = errors.New("room not found")
	ErrBadPassword  = errors.New("wrong room password")

	// Authorization errors
	ErrNotAuthorized = errors.New("not authorized to perform this action")

	// Roster errors
	ErrPlayerNotFound = errors.New("player not found in room")
	ErrTeamFull       = errors.New("team already has the maximum number of players")

	// Roll errors
	ErrInsufficientCandidates = errors.New("not enough eligible champions to fill the pool")
	ErrPoolNotFound           = errors.New("room has no champion pool")

	// Catalog errors
	ErrCatalogUnavailable = errors.New("champion catalog not loaded")

	// Vote errors
	ErrInvalidVoteChannel = errors.New("unknown vote channel")
	ErrInvalidTeam        = errors.New("unknown team")
)
