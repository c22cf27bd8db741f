package room

import (
	"sort"

	"github.com/aramroll/aramroll/internal/model"
)

// ChannelTally is the advisory vote standing for one reroll channel.
// Reaching quorum only marks the channel ready; rolls always require an
// explicit host action.
type ChannelTally struct {
	Channel  model.VoteChannel
	Votes    int
	Eligible int
	Needed   int
	Ready    bool
	Voters   []model.PlayerID
}

// VoteStatus holds the tallies for all three reroll channels
type VoteStatus struct {
	Global ChannelTally
	Team1  ChannelTally
	Team2  ChannelTally
}

// ForChannel returns the tally for the given channel
func (s *VoteStatus) ForChannel(c model.VoteChannel) ChannelTally {
	switch c {
	case model.Team1Reroll:
		return s.Team1
	case model.Team2Reroll:
		return s.Team2
	default:
		return s.Global
	}
}

// tallyVotes computes vote standings against the current roster. Markers
// from participants who have since left (or moved off the channel's team)
// are treated as absent.
func tallyVotes(players map[model.PlayerID]*model.Player, votes *model.Votes) *VoteStatus {
	return &VoteStatus{
		Global: tallyChannel(model.GlobalReroll, votes.Global, players, nil),
		Team1:  tallyChannel(model.Team1Reroll, votes.Team1, players, teamFilter(model.Team1)),
		Team2:  tallyChannel(model.Team2Reroll, votes.Team2, players, teamFilter(model.Team2)),
	}
}

func teamFilter(t model.Team) func(*model.Player) bool {
	return func(p *model.Player) bool {
		return p.Team == t
	}
}

func tallyChannel(
	channel model.VoteChannel,
	markers map[model.PlayerID]bool,
	players map[model.PlayerID]*model.Player,
	inScope func(*model.Player) bool,
) ChannelTally {
	eligible := 0
	for _, p := range players {
		if inScope == nil || inScope(p) {
			eligible++
		}
	}

	var voters []model.PlayerID
	for id := range markers {
		p, present := players[id]
		if !present {
			continue
		}
		if inScope != nil && !inScope(p) {
			continue
		}
		voters = append(voters, id)
	}
	sort.Slice(voters, func(i, j int) bool { return voters[i] < voters[j] })

	needed := model.MajorityNeeded(eligible)
	return ChannelTally{
		Channel:  channel,
		Votes:    len(voters),
		Eligible: eligible,
		Needed:   needed,
		Ready:    eligible > 0 && len(voters) >= needed,
		Voters:   voters,
	}
}
