package sse

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/aramroll/aramroll/internal/model"
	"github.com/aramroll/aramroll/internal/testutil"
)

type HubSuite struct {
	suite.Suite
	hub *Hub
}

func TestHubSuite(t *testing.T) {
	suite.Run(t, new(HubSuite))
}

func (s *HubSuite) SetupTest() {
	s.hub = NewHub("abc123", testutil.NopLogger())
	go s.hub.Run()
}

func (s *HubSuite) TearDownTest() {
	s.hub.Close()
}

func (s *HubSuite) waitForClientCount(expected int) {
	s.Require().Eventually(func() bool {
		return s.hub.ClientCount() == expected
	}, time.Second, 5*time.Millisecond)
}

func (s *HubSuite) TestRegisterAndUnregister() {
	client := NewClient(s.hub, "p1")

	s.hub.Register(client)
	s.waitForClientCount(1)

	s.hub.Unregister(client)
	s.waitForClientCount(0)

	// The hub closes the send channel on unregister
	_, open := <-client.send
	s.False(open)
}

func (s *HubSuite) TestBroadcastReachesAllClients() {
	c1 := NewClient(s.hub, "p1")
	c2 := NewClient(s.hub, "p2")
	s.hub.Register(c1)
	s.hub.Register(c2)
	s.waitForClientCount(2)

	s.hub.BroadcastEvent("roster-update", `{"players":[]}`)

	for _, c := range []*Client{c1, c2} {
		select {
		case msg := <-c.send:
			s.Equal("event: roster-update\ndata: {\"players\":[]}\n\n", string(msg))
		case <-time.After(time.Second):
			s.Fail("client did not receive broadcast")
		}
	}
}

func (s *HubSuite) TestCloseDisconnectsClients() {
	client := NewClient(s.hub, "p1")
	s.hub.Register(client)
	s.waitForClientCount(1)

	s.hub.Close()

	select {
	case _, open := <-client.send:
		s.False(open)
	case <-time.After(time.Second):
		s.Fail("send channel was not closed")
	}

	// TearDownTest would double-close; replace the hub
	s.hub = NewHub("abc123", testutil.NopLogger())
	go s.hub.Run()
}

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name     string
		event    string
		data     string
		expected string
	}{
		{
			name:     "single line",
			event:    "pool-update",
			data:     `{"team1":[]}`,
			expected: "event: pool-update\ndata: {\"team1\":[]}\n\n",
		},
		{
			name:     "multi line",
			event:    "vote-update",
			data:     "line1\nline2",
			expected: "event: vote-update\ndata: line1\ndata: line2\n\n",
		},
		{
			name:     "empty data",
			event:    "room-closed",
			data:     "",
			expected: "event: room-closed\ndata: \n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatSSEMessage(tt.event, tt.data)
			if string(got) != tt.expected {
				t.Errorf("formatSSEMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

type HubManagerSuite struct {
	suite.Suite
	manager *HubManager
}

func TestHubManagerSuite(t *testing.T) {
	suite.Run(t, new(HubManagerSuite))
}

func (s *HubManagerSuite) SetupTest() {
	s.manager = NewHubManager(testutil.NopLogger())
}

func (s *HubManagerSuite) TestGetOrCreateHubReturnsSameHub() {
	h1 := s.manager.GetOrCreateHub("abc123")
	h2 := s.manager.GetOrCreateHub("abc123")
	s.Same(h1, h2)

	s.Nil(s.manager.GetHub("other"))
	s.Same(h1, s.manager.GetHub("abc123"))
}

func (s *HubManagerSuite) TestActiveRooms() {
	s.Empty(s.manager.ActiveRooms())

	s.manager.GetOrCreateHub("abc123")
	s.manager.GetOrCreateHub("xyz789")

	rooms := s.manager.ActiveRooms()
	s.ElementsMatch([]model.RoomID{"abc123", "xyz789"}, rooms)
}

func (s *HubManagerSuite) TestRemoveHub() {
	s.manager.GetOrCreateHub("abc123")

	s.manager.RemoveHub("abc123")

	s.Nil(s.manager.GetHub("abc123"))
	// Removing an unknown room is a no-op
	s.manager.RemoveHub("abc123")
}

func (s *HubManagerSuite) TestCleanupEmptyHubs() {
	busy := s.manager.GetOrCreateHub("busy")
	s.manager.GetOrCreateHub("idle")

	client := NewClient(busy, "p1")
	busy.Register(client)
	s.Require().Eventually(func() bool {
		return busy.ClientCount() == 1
	}, time.Second, 5*time.Millisecond)

	s.manager.CleanupEmptyHubs()

	s.NotNil(s.manager.GetHub("busy"))
	s.Nil(s.manager.GetHub("idle"))
}

type BroadcasterSuite struct {
	suite.Suite
	manager     *HubManager
	broadcaster *Broadcaster
}

func TestBroadcasterSuite(t *testing.T) {
	suite.Run(t, new(BroadcasterSuite))
}

func (s *BroadcasterSuite) SetupTest() {
	s.manager = NewHubManager(testutil.NopLogger())
	s.broadcaster = NewBroadcaster(s.manager, testutil.NopLogger())
}

func (s *BroadcasterSuite) TestBroadcastSkipsRoomsWithoutHub() {
	// No hub for the room; nothing to deliver, nothing to create
	s.broadcaster.BroadcastRosterUpdate("abc123", []string{})
	s.Nil(s.manager.GetHub("abc123"))
}

func (s *BroadcasterSuite) TestBroadcastEnvelope() {
	hub := s.manager.GetOrCreateHub("abc123")
	client := NewClient(hub, "p1")
	hub.Register(client)
	s.Require().Eventually(func() bool {
		return hub.ClientCount() == 1
	}, time.Second, 5*time.Millisecond)

	s.broadcaster.BroadcastVoteUpdate("abc123", map[string]int{"votes": 2})

	select {
	case msg := <-client.send:
		text := string(msg)
		s.Contains(text, "event: vote-update\n")

		// Extract the data payload and decode the envelope
		var data string
		for _, line := range splitLines(text) {
			if len(line) > 6 && line[:6] == "data: " {
				data = line[6:]
			}
		}
		var env struct {
			Type    model.EventType `json:"type"`
			RoomID  model.RoomID    `json:"room_id"`
			Payload map[string]int  `json:"payload"`
		}
		s.Require().NoError(json.Unmarshal([]byte(data), &env))
		s.Equal(model.EventVoteUpdate, env.Type)
		s.Equal(model.RoomID("abc123"), env.RoomID)
		s.Equal(2, env.Payload["votes"])
	case <-time.After(time.Second):
		s.Fail("client did not receive broadcast")
	}
}

func (s *BroadcasterSuite) TestRoomClosedTearsDownHub() {
	s.manager.GetOrCreateHub("abc123")

	s.broadcaster.BroadcastRoomClosed("abc123")

	s.Nil(s.manager.GetHub("abc123"))
}
