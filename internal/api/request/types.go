package request

// CreateRoomRequest is the request body for creating a room
type CreateRoomRequest struct {
	HostName string `json:"host_name"`
	GameName string `json:"game_name,omitempty"`
	Password string `json:"password,omitempty"`
}

// JoinRoomRequest is the request body for joining a room
type JoinRoomRequest struct {
	Name     string `json:"name"`
	Password string `json:"password,omitempty"`
}

// ChangeTeamRequest is the request body for moving a player between teams
type ChangeTeamRequest struct {
	Team string `json:"team"`
}

// SetBanRequest is the request body for setting or clearing a ban.
// An empty champion id clears the ban.
type SetBanRequest struct {
	ChampionID string `json:"champion_id"`
}

// VoteRequest is the request body for toggling a reroll vote
type VoteRequest struct {
	Channel string `json:"channel"`
	Active  bool   `json:"active"`
}

// RollTeamRequest is the request body for rerolling a single team
type RollTeamRequest struct {
	Team string `json:"team"`
}
