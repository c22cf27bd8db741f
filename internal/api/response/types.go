package response

import (
	"sort"
	"time"

	"github.com/aramroll/aramroll/internal/model"
	"github.com/aramroll/aramroll/internal/services/room"
)

// Player represents a roster entry in API responses
type Player struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Team       string    `json:"team"`
	Ban        string    `json:"ban,omitempty"`
	IsHost     bool      `json:"is_host"`
	JoinedAt   time.Time `json:"joined_at"`
	LastActive time.Time `json:"last_active"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(id model.PlayerID, p *model.Player, hostID model.PlayerID) Player {
	return Player{
		ID:         string(id),
		Name:       p.Name,
		Team:       string(p.Team),
		Ban:        string(p.Ban),
		IsHost:     id == hostID,
		JoinedAt:   p.JoinedAt,
		LastActive: p.LastActive,
	}
}

// RosterFromModel converts the roster map to a stable join-ordered list
func RosterFromModel(players map[model.PlayerID]*model.Player, hostID model.PlayerID) []Player {
	roster := make([]Player, 0, len(players))
	for id, p := range players {
		roster = append(roster, PlayerFromModel(id, p, hostID))
	}
	sort.Slice(roster, func(i, j int) bool {
		if !roster[i].JoinedAt.Equal(roster[j].JoinedAt) {
			return roster[i].JoinedAt.Before(roster[j].JoinedAt)
		}
		return roster[i].ID < roster[j].ID
	})
	return roster
}

// Pool represents the rolled champion pools
type Pool struct {
	Team1          []string  `json:"team1"`
	Team2          []string  `json:"team2"`
	DatasetVersion string    `json:"dataset_version"`
	RolledAt       time.Time `json:"rolled_at"`
}

// PoolFromModel converts model.Pool
func PoolFromModel(p *model.Pool) Pool {
	team1 := make([]string, len(p.Team1))
	for i, id := range p.Team1 {
		team1[i] = string(id)
	}
	team2 := make([]string, len(p.Team2))
	for i, id := range p.Team2 {
		team2[i] = string(id)
	}
	return Pool{
		Team1:          team1,
		Team2:          team2,
		DatasetVersion: p.DatasetVersion,
		RolledAt:       p.RolledAt,
	}
}

// VoteTally represents the standing of one reroll channel
type VoteTally struct {
	Channel  string   `json:"channel"`
	Votes    int      `json:"votes"`
	Eligible int      `json:"eligible"`
	Needed   int      `json:"needed"`
	Ready    bool     `json:"ready"`
	Voters   []string `json:"voters,omitempty"`
}

// VoteTallyFromModel converts a room.ChannelTally
func VoteTallyFromModel(t room.ChannelTally) VoteTally {
	voters := make([]string, len(t.Voters))
	for i, id := range t.Voters {
		voters[i] = string(id)
	}
	return VoteTally{
		Channel:  string(t.Channel),
		Votes:    t.Votes,
		Eligible: t.Eligible,
		Needed:   t.Needed,
		Ready:    t.Ready,
		Voters:   voters,
	}
}

// VoteStatus represents the tallies for all reroll channels
type VoteStatus struct {
	Global VoteTally `json:"global"`
	Team1  VoteTally `json:"team1"`
	Team2  VoteTally `json:"team2"`
}

// VoteStatusFromModel converts a room.VoteStatus
func VoteStatusFromModel(s *room.VoteStatus) VoteStatus {
	return VoteStatus{
		Global: VoteTallyFromModel(s.Global),
		Team1:  VoteTallyFromModel(s.Team1),
		Team2:  VoteTallyFromModel(s.Team2),
	}
}

// RoomInfo is the join-screen preview of a room
type RoomInfo struct {
	RoomID         string `json:"room_id"`
	GameName       string `json:"game_name"`
	HostName       string `json:"host_name"`
	HasPassword    bool   `json:"has_password"`
	PlayerCount    int    `json:"player_count"`
	DatasetVersion string `json:"dataset_version,omitempty"`
}

// RoomInfoFromModel converts model.RoomInfo
func RoomInfoFromModel(info *model.RoomInfo) RoomInfo {
	return RoomInfo{
		RoomID:         string(info.RoomID),
		GameName:       info.GameName,
		HostName:       info.HostName,
		HasPassword:    info.HasPassword,
		PlayerCount:    info.PlayerCount,
		DatasetVersion: info.DatasetVersion,
	}
}

// Room is the full client-facing room snapshot
type Room struct {
	RoomID         string     `json:"room_id"`
	GameName       string     `json:"game_name"`
	HostID         string     `json:"host_id"`
	HostName       string     `json:"host_name"`
	HasPassword    bool       `json:"has_password"`
	CreatedAt      time.Time  `json:"created_at"`
	DatasetVersion string     `json:"dataset_version,omitempty"`
	Players        []Player   `json:"players"`
	Pool           *Pool      `json:"pool,omitempty"`
	Votes          VoteStatus `json:"votes"`
}

// RoomFromSnapshot converts a room.Snapshot. The password hash never leaves
// the server; only its presence is exposed.
func RoomFromSnapshot(snap *room.Snapshot) Room {
	resp := Room{
		RoomID:         string(snap.Meta.RoomID),
		GameName:       snap.Meta.GameName,
		HostID:         string(snap.Meta.HostID),
		HostName:       snap.Meta.HostName,
		HasPassword:    snap.Meta.HasPassword(),
		CreatedAt:      snap.Meta.CreatedAt,
		DatasetVersion: snap.Meta.DatasetVersion,
		Players:        RosterFromModel(snap.Players, snap.Meta.HostID),
		Votes:          VoteStatusFromModel(snap.Votes),
	}
	if snap.Pool != nil {
		pool := PoolFromModel(snap.Pool)
		resp.Pool = &pool
	}
	return resp
}

// Champion represents a catalog entry in API responses
type Champion struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IconURL string `json:"icon_url"`
}

// CatalogStatus reports the loaded dataset
type CatalogStatus struct {
	Loaded    bool   `json:"loaded"`
	Version   string `json:"version,omitempty"`
	Champions int    `json:"champions"`
}
