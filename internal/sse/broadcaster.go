package sse

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/aramroll/aramroll/internal/model"
)

// Broadcaster fans room state changes out to SSE clients as JSON events.
// Clients treat every event as an invitation to re-render from the attached
// payload; there is no incremental diffing.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// envelope is the wire shape of a broadcast event
type envelope struct {
	Type      model.EventType `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	RoomID    model.RoomID    `json:"room_id"`
	Payload   any             `json:"payload,omitempty"`
}

func (b *Broadcaster) broadcast(roomID model.RoomID, eventType model.EventType, payload any) {
	hub := b.hubManager.GetHub(roomID)
	if hub == nil {
		return
	}

	data, err := json.Marshal(envelope{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		RoomID:    roomID,
		Payload:   payload,
	})
	if err != nil {
		b.logger.Error("sse failed to encode event",
			slog.String("room", string(roomID)),
			slog.String("event", string(eventType)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(string(eventType), string(data))
}

// BroadcastRosterUpdate announces a roster change (join, leave, kick, team
// move, ban). The payload is the caller's view of the new roster.
func (b *Broadcaster) BroadcastRosterUpdate(roomID model.RoomID, payload any) {
	b.broadcast(roomID, model.EventRosterUpdate, payload)
}

// BroadcastPoolUpdate announces freshly rolled pools
func (b *Broadcaster) BroadcastPoolUpdate(roomID model.RoomID, payload any) {
	b.broadcast(roomID, model.EventPoolUpdate, payload)
}

// BroadcastVoteUpdate announces a change in reroll vote standings
func (b *Broadcaster) BroadcastVoteUpdate(roomID model.RoomID, payload any) {
	b.broadcast(roomID, model.EventVoteUpdate, payload)
}

// BroadcastRoomClosed tells clients the room is gone, then tears down the hub
func (b *Broadcaster) BroadcastRoomClosed(roomID model.RoomID) {
	b.broadcast(roomID, model.EventRoomClosed, nil)
	b.hubManager.RemoveHub(roomID)
}
