package storage

import (
	"context"
	"time"

	"github.com/aramroll/aramroll/internal/model"
)

// RoomStore is the typed repository over the shared room state tree.
//
// Every method is a small independently-applied read or write; there are no
// transactions spanning aggregates and no optimistic-concurrency tokens.
// Writes racing against the same entry resolve last-committed-wins.
type RoomStore interface {
	// Meta operations
	SaveMeta(ctx context.Context, meta *model.RoomMeta) error
	GetMeta(ctx context.Context, roomID model.RoomID) (*model.RoomMeta, error)
	RoomExists(ctx context.Context, roomID model.RoomID) (bool, error)
	DeleteRoom(ctx context.Context, roomID model.RoomID) error

	// Roster operations. SavePlayer has set semantics: it fully overwrites
	// any existing entry at the same id. RemovePlayer of an absent id is a
	// no-op, not an error.
	SavePlayer(ctx context.Context, roomID model.RoomID, id model.PlayerID, player *model.Player) error
	GetPlayer(ctx context.Context, roomID model.RoomID, id model.PlayerID) (*model.Player, error)
	GetPlayers(ctx context.Context, roomID model.RoomID) (map[model.PlayerID]*model.Player, error)
	RemovePlayer(ctx context.Context, roomID model.RoomID, id model.PlayerID) error
	SetPlayerTeam(ctx context.Context, roomID model.RoomID, id model.PlayerID, team model.Team) error
	SetPlayerBan(ctx context.Context, roomID model.RoomID, id model.PlayerID, ban model.ChampionID) error
	// TouchPlayer refreshes the player's lastActive timestamp and renews any
	// backend-side presence expiry.
	TouchPlayer(ctx context.Context, roomID model.RoomID, id model.PlayerID, at time.Time) error

	// Pool operations. SetTeamPool replaces a single team's pool while
	// leaving the other team's pool in place.
	SavePool(ctx context.Context, roomID model.RoomID, pool *model.Pool) error
	GetPool(ctx context.Context, roomID model.RoomID) (*model.Pool, error)
	SetTeamPool(ctx context.Context, roomID model.RoomID, team model.Team, ids []model.ChampionID, version string, rolledAt time.Time) error

	// Vote operations. Markers are keyed by participant under a channel;
	// removing an absent marker is a no-op.
	SetVote(ctx context.Context, roomID model.RoomID, channel model.VoteChannel, id model.PlayerID) error
	RemoveVote(ctx context.Context, roomID model.RoomID, channel model.VoteChannel, id model.PlayerID) error
	GetVotes(ctx context.Context, roomID model.RoomID) (*model.Votes, error)
	ClearVotes(ctx context.Context, roomID model.RoomID, channel model.VoteChannel) error
	ClearAllVotes(ctx context.Context, roomID model.RoomID) error
}
