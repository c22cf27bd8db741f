package model

import "time"

// RoomID is the short shareable code identifying a room
type RoomID string

// Team identifies one of the two sides of a room
type Team string

const (
	Team1 Team = "team1"
	Team2 Team = "team2"
)

// Valid reports whether t is one of the two known teams
func (t Team) Valid() bool {
	return t == Team1 || t == Team2
}

// Other returns the opposing team
func (t Team) Other() Team {
	if t == Team1 {
		return Team2
	}
	return Team1
}

const (
	// PoolSize is the number of champions rolled per team
	PoolSize = 15
	// TeamCap is the soft cap enforced on host-initiated team moves.
	// Joins are not capped; they only balance toward the smaller team.
	TeamCap = 5
)

// RoomMeta is the immutable room metadata written at creation.
// HostID never changes for the lifetime of the room.
type RoomMeta struct {
	RoomID         RoomID
	HostID         PlayerID
	HostName       string
	GameName       string
	PasswordHash   string // empty when the room has no password
	CreatedAt      time.Time
	DatasetVersion string
}

// HasPassword reports whether joining requires a password
func (m *RoomMeta) HasPassword() bool {
	return m.PasswordHash != ""
}

// Pool holds the rolled champion pools for both teams
type Pool struct {
	Team1          []ChampionID
	Team2          []ChampionID
	DatasetVersion string
	RolledAt       time.Time
}

// ForTeam returns the pool slice for the given team
func (p *Pool) ForTeam(t Team) []ChampionID {
	if t == Team1 {
		return p.Team1
	}
	return p.Team2
}

// RoomInfo is the join-screen preview of a room
type RoomInfo struct {
	RoomID         RoomID
	GameName       string
	HostName       string
	HasPassword    bool
	PlayerCount    int
	DatasetVersion string
}

// CountTeam returns the number of players on the given team
func CountTeam(players map[PlayerID]*Player, t Team) int {
	n := 0
	for _, p := range players {
		if p.Team == t {
			n++
		}
	}
	return n
}
