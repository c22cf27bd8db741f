package model

import "time"

// PlayerID uniquely identifies a participant across the system.
// Generated per browser/install; collisions across devices are accepted.
type PlayerID string

// Player is one participant's entry in a room roster.
// Written with set semantics on join: a rejoin overwrites any stale entry.
type Player struct {
	Name       string
	Team       Team
	Ban        ChampionID // empty means no ban
	JoinedAt   time.Time
	LastActive time.Time
}

// BannedChampions collects the set of champion ids banned by the roster
func BannedChampions(players map[PlayerID]*Player) map[ChampionID]bool {
	banned := make(map[ChampionID]bool)
	for _, p := range players {
		if p.Ban != "" {
			banned[p.Ban] = true
		}
	}
	return banned
}
