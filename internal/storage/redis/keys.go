package redis

import (
	"fmt"

	"github.com/aramroll/aramroll/internal/model"
)

// Key prefix for all room data
const keyPrefix = "aramroll"

// Key generation functions for each entity type

// metaKey returns the Redis key for a room's metadata
func metaKey(roomID model.RoomID) string {
	return fmt.Sprintf("%s:room:%s:meta", keyPrefix, roomID)
}

// playerKey returns the Redis key for one roster entry
func playerKey(roomID model.RoomID, id model.PlayerID) string {
	return fmt.Sprintf("%s:room:%s:player:%s", keyPrefix, roomID, id)
}

// rosterIndexKey returns the Redis key for the SET of roster member ids
func rosterIndexKey(roomID model.RoomID) string {
	return fmt.Sprintf("%s:room:%s:idx:players", keyPrefix, roomID)
}

// poolKey returns the Redis key for a room's champion pool
func poolKey(roomID model.RoomID) string {
	return fmt.Sprintf("%s:room:%s:pool", keyPrefix, roomID)
}

// votesKey returns the Redis key for the SET of votes on one channel
func votesKey(roomID model.RoomID, channel model.VoteChannel) string {
	return fmt.Sprintf("%s:room:%s:votes:%s", keyPrefix, roomID, channel)
}
