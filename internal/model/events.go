package model

import "time"

// EventType identifies the type of room change event
type EventType string

const (
	EventRosterUpdate EventType = "roster-update"
	EventPoolUpdate   EventType = "pool-update"
	EventVoteUpdate   EventType = "vote-update"
	EventRoomClosed   EventType = "room-closed"
)

// Event is the base structure for room change notifications.
// Consumers are expected to refetch the full snapshot and recompute derived
// state rather than patch incrementally.
type Event struct {
	Type      EventType
	Timestamp time.Time
	RoomID    RoomID
	PlayerID  PlayerID // the participant who triggered the change, if any
}
