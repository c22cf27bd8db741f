package model

// VoteChannel identifies one reroll vote namespace within a room
type VoteChannel string

const (
	GlobalReroll VoteChannel = "globalReroll"
	Team1Reroll  VoteChannel = "team1Reroll"
	Team2Reroll  VoteChannel = "team2Reroll"
)

// VoteChannels lists all channels in a fixed order
var VoteChannels = []VoteChannel{GlobalReroll, Team1Reroll, Team2Reroll}

// Valid reports whether c is a known vote channel
func (c VoteChannel) Valid() bool {
	return c == GlobalReroll || c == Team1Reroll || c == Team2Reroll
}

// TeamRerollChannel returns the reroll channel scoped to the given team
func TeamRerollChannel(t Team) VoteChannel {
	if t == Team1 {
		return Team1Reroll
	}
	return Team2Reroll
}

// Votes holds the raw vote markers per channel, keyed by participant.
// Entries for participants no longer in the roster are stale and must be
// ignored by quorum computation.
type Votes struct {
	Global map[PlayerID]bool
	Team1  map[PlayerID]bool
	Team2  map[PlayerID]bool
}

// NewVotes returns an empty vote record
func NewVotes() *Votes {
	return &Votes{
		Global: make(map[PlayerID]bool),
		Team1:  make(map[PlayerID]bool),
		Team2:  make(map[PlayerID]bool),
	}
}

// ForChannel returns the marker set for the given channel
func (v *Votes) ForChannel(c VoteChannel) map[PlayerID]bool {
	switch c {
	case GlobalReroll:
		return v.Global
	case Team1Reroll:
		return v.Team1
	case Team2Reroll:
		return v.Team2
	}
	return nil
}

// MajorityNeeded returns the strict-majority threshold for n voters
func MajorityNeeded(n int) int {
	return n/2 + 1
}
