package room

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/aramroll/aramroll/internal/dependencies/clock"
	"github.com/aramroll/aramroll/internal/dependencies/random"
	"github.com/aramroll/aramroll/internal/model"
	"github.com/aramroll/aramroll/internal/services/catalog"
	"github.com/aramroll/aramroll/internal/storage"
)

const (
	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 6
	// RoomCodeAlphabet is the characters used in room codes
	RoomCodeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	// DefaultGameName is used when a room is created without a name
	DefaultGameName = "ARAM Random Game"
)

// Controller is the session coordinator: it owns room lifecycle, team
// balancing, bans, pool rolling, and reroll-vote bookkeeping against the
// shared room store. All derived state is recomputed from fresh snapshots;
// nothing is cached between calls.
type Controller struct {
	store   storage.RoomStore
	catalog *catalog.Service
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewController creates a new room Controller
func NewController(
	store storage.RoomStore,
	catalogService *catalog.Service,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		store:   store,
		catalog: catalogService,
		clock:   clk,
		random:  rnd,
		logger:  logger.With(slog.String("component", "room")),
	}
}

// CreateRoomParams holds the inputs for room creation
type CreateRoomParams struct {
	HostID   model.PlayerID
	HostName string
	GameName string
	Password string // empty means no password
}

// CreateRoom creates a room and seats the host on team1.
//
// The meta, empty-pool, and host-player writes are issued sequentially with
// no rollback; a crash mid-sequence can leave a room with metadata but no
// players, which is an accepted degraded state.
func (c *Controller) CreateRoom(ctx context.Context, params CreateRoomParams) (*model.RoomMeta, error) {
	if !c.catalog.IsLoaded() {
		return nil, model.ErrCatalogUnavailable
	}

	now := c.clock.Now()

	// Generate an unused room code
	var roomID model.RoomID
	for {
		roomID = model.RoomID(c.random.String(RoomCodeLength, RoomCodeAlphabet))
		exists, err := c.store.RoomExists(ctx, roomID)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	gameName := params.GameName
	if gameName == "" {
		gameName = DefaultGameName
	}

	var passwordHash string
	if params.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		passwordHash = string(hash)
	}

	meta := &model.RoomMeta{
		RoomID:         roomID,
		HostID:         params.HostID,
		HostName:       params.HostName,
		GameName:       gameName,
		PasswordHash:   passwordHash,
		CreatedAt:      now,
		DatasetVersion: c.catalog.Version(),
	}

	if err := c.store.SaveMeta(ctx, meta); err != nil {
		return nil, err
	}

	pool := &model.Pool{
		Team1:          []model.ChampionID{},
		Team2:          []model.ChampionID{},
		DatasetVersion: c.catalog.Version(),
		RolledAt:       now,
	}
	if err := c.store.SavePool(ctx, roomID, pool); err != nil {
		return nil, err
	}

	host := &model.Player{
		Name:       params.HostName,
		Team:       model.Team1,
		JoinedAt:   now,
		LastActive: now,
	}
	if err := c.store.SavePlayer(ctx, roomID, params.HostID, host); err != nil {
		return nil, err
	}

	c.logger.Info("room created",
		slog.String("room", string(roomID)),
		slog.String("host", string(params.HostID)))
	return meta, nil
}

// RoomInfo returns the join-screen preview of a room
func (c *Controller) RoomInfo(ctx context.Context, roomID model.RoomID) (*model.RoomInfo, error) {
	meta, err := c.store.GetMeta(ctx, roomID)
	if err != nil {
		return nil, err
	}
	players, err := c.store.GetPlayers(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return &model.RoomInfo{
		RoomID:         roomID,
		GameName:       meta.GameName,
		HostName:       meta.HostName,
		HasPassword:    meta.HasPassword(),
		PlayerCount:    len(players),
		DatasetVersion: meta.DatasetVersion,
	}, nil
}

// JoinRoom adds a participant to a room, assigning the smaller team.
//
// The team choice is evaluated against a just-fetched roster snapshot; two
// joins racing at the same instant may both land on the lighter team. This
// is a known accepted gap, matching the store's last-write-wins model.
func (c *Controller) JoinRoom(ctx context.Context, roomID model.RoomID, id model.PlayerID, name, password string) (*model.Player, error) {
	meta, err := c.store.GetMeta(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if meta.HasPassword() {
		if err := bcrypt.CompareHashAndPassword([]byte(meta.PasswordHash), []byte(password)); err != nil {
			return nil, model.ErrBadPassword
		}
	}

	players, err := c.store.GetPlayers(ctx, roomID)
	if err != nil {
		return nil, err
	}

	// Ties favor team1; joins are never capped, only balanced
	team := model.Team2
	if model.CountTeam(players, model.Team1) <= model.CountTeam(players, model.Team2) {
		team = model.Team1
	}

	now := c.clock.Now()
	player := &model.Player{
		Name:       name,
		Team:       team,
		JoinedAt:   now,
		LastActive: now,
	}
	// Set semantics: a rejoin under the same id starts fresh
	if err := c.store.SavePlayer(ctx, roomID, id, player); err != nil {
		return nil, err
	}

	c.logger.Info("player joined",
		slog.String("room", string(roomID)),
		slog.String("player", string(id)),
		slog.String("team", string(team)))
	return player, nil
}

// LeaveRoom removes the participant's own roster entry. Standing votes are
// left in place; they become stale and are ignored by quorum computation.
func (c *Controller) LeaveRoom(ctx context.Context, roomID model.RoomID, id model.PlayerID) error {
	return c.store.RemovePlayer(ctx, roomID, id)
}

// KickPlayer removes another participant's roster entry. Host only.
// Kicking an id that is not in the room is a no-op.
func (c *Controller) KickPlayer(ctx context.Context, roomID model.RoomID, actingAs, target model.PlayerID) error {
	if _, err := c.requireHost(ctx, roomID, actingAs); err != nil {
		return err
	}
	return c.store.RemovePlayer(ctx, roomID, target)
}

// ChangeTeam moves a participant to the given team. Host only; the
// destination team is capped at TeamCap players. A move to the player's
// current team is a no-op. A successful move clears the player's standing
// global reroll vote, since the vote was cast in the old team context.
func (c *Controller) ChangeTeam(ctx context.Context, roomID model.RoomID, actingAs, target model.PlayerID, newTeam model.Team) error {
	if !newTeam.Valid() {
		return model.ErrInvalidTeam
	}
	if _, err := c.requireHost(ctx, roomID, actingAs); err != nil {
		return err
	}

	players, err := c.store.GetPlayers(ctx, roomID)
	if err != nil {
		return err
	}
	player, ok := players[target]
	if !ok {
		return model.ErrPlayerNotFound
	}
	if player.Team == newTeam {
		return nil
	}
	if model.CountTeam(players, newTeam) >= model.TeamCap {
		return model.ErrTeamFull
	}

	if err := c.store.SetPlayerTeam(ctx, roomID, target, newTeam); err != nil {
		return err
	}

	if err := c.store.RemoveVote(ctx, roomID, model.GlobalReroll, target); err != nil {
		c.logger.Warn("vote clear after team change failed",
			slog.String("room", string(roomID)),
			slog.String("player", string(target)),
			slog.String("error", err.Error()))
	}

	c.logger.Info("player moved",
		slog.String("room", string(roomID)),
		slog.String("player", string(target)),
		slog.String("team", string(newTeam)))
	return nil
}

// SetBan records a champion ban for the target participant; an empty id
// clears the ban. The champion id is not validated against the catalog — an
// unknown id simply renders as no champion found. Participants may set their
// own ban; the host may set anyone's.
func (c *Controller) SetBan(ctx context.Context, roomID model.RoomID, actingAs, target model.PlayerID, ban model.ChampionID) error {
	if err := c.authorize(ctx, roomID, actingAs, target); err != nil {
		return err
	}
	return c.store.SetPlayerBan(ctx, roomID, target, ban)
}

// ToggleVote sets or removes the target's marker on a reroll channel.
// Participants may toggle their own vote; the host may toggle anyone's.
func (c *Controller) ToggleVote(ctx context.Context, roomID model.RoomID, actingAs, target model.PlayerID, channel model.VoteChannel, active bool) error {
	if !channel.Valid() {
		return model.ErrInvalidVoteChannel
	}
	if err := c.authorize(ctx, roomID, actingAs, target); err != nil {
		return err
	}
	if active {
		return c.store.SetVote(ctx, roomID, channel, target)
	}
	return c.store.RemoveVote(ctx, roomID, channel, target)
}

// VoteStatus computes the advisory tallies for all reroll channels against
// the current roster. Markers from departed participants are ignored.
func (c *Controller) VoteStatus(ctx context.Context, roomID model.RoomID) (*VoteStatus, error) {
	if exists, err := c.store.RoomExists(ctx, roomID); err != nil {
		return nil, err
	} else if !exists {
		return nil, model.ErrRoomNotFound
	}

	players, err := c.store.GetPlayers(ctx, roomID)
	if err != nil {
		return nil, err
	}
	votes, err := c.store.GetVotes(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return tallyVotes(players, votes), nil
}

// RollBoth rolls fresh pools for both teams. Host only. The exclusion set
// is every currently-banned champion; team2 additionally excludes team1's
// fresh sample so the pools never overlap. If either sample comes up short
// of PoolSize the store is left untouched.
func (c *Controller) RollBoth(ctx context.Context, roomID model.RoomID, actingAs model.PlayerID) (*model.Pool, error) {
	if _, err := c.requireHost(ctx, roomID, actingAs); err != nil {
		return nil, err
	}
	if !c.catalog.IsLoaded() {
		return nil, model.ErrCatalogUnavailable
	}

	players, err := c.store.GetPlayers(ctx, roomID)
	if err != nil {
		return nil, err
	}
	banned := model.BannedChampions(players)

	team1 := c.catalog.SampleExcluding(banned, model.PoolSize)
	if len(team1) < model.PoolSize {
		return nil, model.ErrInsufficientCandidates
	}

	excluded := make(map[model.ChampionID]bool, len(banned)+len(team1))
	for id := range banned {
		excluded[id] = true
	}
	for _, id := range team1 {
		excluded[id] = true
	}

	team2 := c.catalog.SampleExcluding(excluded, model.PoolSize)
	if len(team2) < model.PoolSize {
		return nil, model.ErrInsufficientCandidates
	}

	pool := &model.Pool{
		Team1:          team1,
		Team2:          team2,
		DatasetVersion: c.catalog.Version(),
		RolledAt:       c.clock.Now(),
	}
	if err := c.store.SavePool(ctx, roomID, pool); err != nil {
		return nil, err
	}

	// Best effort: the pool write stands even if the vote reset fails
	if err := c.store.ClearVotes(ctx, roomID, model.GlobalReroll); err != nil {
		c.logger.Warn("vote clear after roll failed",
			slog.String("room", string(roomID)),
			slog.String("error", err.Error()))
	}

	c.logger.Info("rolled both pools", slog.String("room", string(roomID)))
	return pool, nil
}

// RollTeam rolls a fresh pool for one team. Host only. The exclusion set is
// every currently-banned champion plus the other team's existing pool, so
// the two pools stay disjoint across partial rerolls. A short sample aborts
// with the store untouched. On success the global reroll markers of the
// rolled team's current members are cleared.
func (c *Controller) RollTeam(ctx context.Context, roomID model.RoomID, actingAs model.PlayerID, team model.Team) (*model.Pool, error) {
	if !team.Valid() {
		return nil, model.ErrInvalidTeam
	}
	if _, err := c.requireHost(ctx, roomID, actingAs); err != nil {
		return nil, err
	}
	if !c.catalog.IsLoaded() {
		return nil, model.ErrCatalogUnavailable
	}

	players, err := c.store.GetPlayers(ctx, roomID)
	if err != nil {
		return nil, err
	}

	pool, err := c.store.GetPool(ctx, roomID)
	if err != nil {
		if !errors.Is(err, model.ErrPoolNotFound) {
			return nil, err
		}
		pool = &model.Pool{}
	}

	excluded := model.BannedChampions(players)
	for _, id := range pool.ForTeam(team.Other()) {
		excluded[id] = true
	}

	sample := c.catalog.SampleExcluding(excluded, model.PoolSize)
	if len(sample) < model.PoolSize {
		return nil, model.ErrInsufficientCandidates
	}

	rolledAt := c.clock.Now()
	if err := c.store.SetTeamPool(ctx, roomID, team, sample, c.catalog.Version(), rolledAt); err != nil {
		return nil, err
	}

	// Vote scope is participant-keyed under the global namespace, so the
	// team-scoped reset filters by current roster membership.
	c.clearTeamGlobalVotes(ctx, roomID, team, players)

	if team == model.Team1 {
		pool.Team1 = sample
	} else {
		pool.Team2 = sample
	}
	pool.DatasetVersion = c.catalog.Version()
	pool.RolledAt = rolledAt

	c.logger.Info("rolled team pool",
		slog.String("room", string(roomID)),
		slog.String("team", string(team)))
	return pool, nil
}

// ResetVotes clears every reroll channel. Host only.
func (c *Controller) ResetVotes(ctx context.Context, roomID model.RoomID, actingAs model.PlayerID) error {
	if _, err := c.requireHost(ctx, roomID, actingAs); err != nil {
		return err
	}
	return c.store.ClearAllVotes(ctx, roomID)
}

// ClearTeamVotes clears the global reroll markers of one team's current
// members without touching the pool. Host only.
func (c *Controller) ClearTeamVotes(ctx context.Context, roomID model.RoomID, actingAs model.PlayerID, team model.Team) error {
	if !team.Valid() {
		return model.ErrInvalidTeam
	}
	if _, err := c.requireHost(ctx, roomID, actingAs); err != nil {
		return err
	}
	players, err := c.store.GetPlayers(ctx, roomID)
	if err != nil {
		return err
	}
	c.clearTeamGlobalVotes(ctx, roomID, team, players)
	return nil
}

func (c *Controller) clearTeamGlobalVotes(ctx context.Context, roomID model.RoomID, team model.Team, players map[model.PlayerID]*model.Player) {
	for id, p := range players {
		if p.Team != team {
			continue
		}
		if err := c.store.RemoveVote(ctx, roomID, model.GlobalReroll, id); err != nil {
			c.logger.Warn("team vote clear failed",
				slog.String("room", string(roomID)),
				slog.String("player", string(id)),
				slog.String("error", err.Error()))
		}
	}
}

// CloseRoom deletes the room and all of its state. Host only.
func (c *Controller) CloseRoom(ctx context.Context, roomID model.RoomID, actingAs model.PlayerID) error {
	if _, err := c.requireHost(ctx, roomID, actingAs); err != nil {
		return err
	}
	if err := c.store.DeleteRoom(ctx, roomID); err != nil {
		return err
	}
	c.logger.Info("room closed", slog.String("room", string(roomID)))
	return nil
}

// Heartbeat refreshes the participant's presence window
func (c *Controller) Heartbeat(ctx context.Context, roomID model.RoomID, id model.PlayerID) error {
	return c.store.TouchPlayer(ctx, roomID, id, c.clock.Now())
}

// SweepInactive removes roster entries whose lastActive is older than
// maxIdle. This is the application-level half of presence cleanup; store
// backends with native expiry (Redis) mostly beat it to the punch.
func (c *Controller) SweepInactive(ctx context.Context, roomID model.RoomID, maxIdle time.Duration) (int, error) {
	players, err := c.store.GetPlayers(ctx, roomID)
	if err != nil {
		return 0, err
	}

	cutoff := c.clock.Now().Add(-maxIdle)
	removed := 0
	for id, p := range players {
		if p.LastActive.Before(cutoff) {
			if err := c.store.RemovePlayer(ctx, roomID, id); err != nil {
				return removed, err
			}
			removed++
		}
	}
	if removed > 0 {
		c.logger.Info("swept inactive players",
			slog.String("room", string(roomID)),
			slog.Int("removed", removed))
	}
	return removed, nil
}

// Snapshot is the full client-facing view of a room, recomputed from the
// latest store state on every call.
type Snapshot struct {
	Meta    *model.RoomMeta
	Players map[model.PlayerID]*model.Player
	Pool    *model.Pool
	Votes   *VoteStatus
}

// Snapshot fetches the room's complete current state
func (c *Controller) Snapshot(ctx context.Context, roomID model.RoomID) (*Snapshot, error) {
	meta, err := c.store.GetMeta(ctx, roomID)
	if err != nil {
		return nil, err
	}
	players, err := c.store.GetPlayers(ctx, roomID)
	if err != nil {
		return nil, err
	}
	pool, err := c.store.GetPool(ctx, roomID)
	if err != nil && !errors.Is(err, model.ErrPoolNotFound) {
		return nil, err
	}
	votes, err := c.store.GetVotes(ctx, roomID)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Meta:    meta,
		Players: players,
		Pool:    pool,
		Votes:   tallyVotes(players, votes),
	}, nil
}

// requireHost fetches the room meta and verifies the acting participant is
// the host.
func (c *Controller) requireHost(ctx context.Context, roomID model.RoomID, actingAs model.PlayerID) (*model.RoomMeta, error) {
	meta, err := c.store.GetMeta(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if meta.HostID != actingAs {
		return nil, model.ErrNotAuthorized
	}
	return meta, nil
}

// authorize permits an operation on target when the actor is the target
// themselves or the room host.
func (c *Controller) authorize(ctx context.Context, roomID model.RoomID, actingAs, target model.PlayerID) error {
	if actingAs == target {
		// Still require the room to exist
		if exists, err := c.store.RoomExists(ctx, roomID); err != nil {
			return err
		} else if !exists {
			return model.ErrRoomNotFound
		}
		return nil
	}
	_, err := c.requireHost(ctx, roomID, actingAs)
	return err
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateRoom(ctx context.Context, params CreateRoomParams) (*model.RoomMeta, error)
	RoomInfo(ctx context.Context, roomID model.RoomID) (*model.RoomInfo, error)
	JoinRoom(ctx context.Context, roomID model.RoomID, id model.PlayerID, name, password string) (*model.Player, error)
	LeaveRoom(ctx context.Context, roomID model.RoomID, id model.PlayerID) error
	KickPlayer(ctx context.Context, roomID model.RoomID, actingAs, target model.PlayerID) error
	ChangeTeam(ctx context.Context, roomID model.RoomID, actingAs, target model.PlayerID, newTeam model.Team) error
	SetBan(ctx context.Context, roomID model.RoomID, actingAs, target model.PlayerID, ban model.ChampionID) error
	ToggleVote(ctx context.Context, roomID model.RoomID, actingAs, target model.PlayerID, channel model.VoteChannel, active bool) error
	VoteStatus(ctx context.Context, roomID model.RoomID) (*VoteStatus, error)
	RollBoth(ctx context.Context, roomID model.RoomID, actingAs model.PlayerID) (*model.Pool, error)
	RollTeam(ctx context.Context, roomID model.RoomID, actingAs model.PlayerID, team model.Team) (*model.Pool, error)
	ResetVotes(ctx context.Context, roomID model.RoomID, actingAs model.PlayerID) error
	ClearTeamVotes(ctx context.Context, roomID model.RoomID, actingAs model.PlayerID, team model.Team) error
	CloseRoom(ctx context.Context, roomID model.RoomID, actingAs model.PlayerID) error
	Heartbeat(ctx context.Context, roomID model.RoomID, id model.PlayerID) error
	SweepInactive(ctx context.Context, roomID model.RoomID, maxIdle time.Duration) (int, error)
	Snapshot(ctx context.Context, roomID model.RoomID) (*Snapshot, error)
}

var _ ControllerInterface = (*Controller)(nil)
