package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aramroll/aramroll/internal/model"
	"github.com/aramroll/aramroll/internal/storage"
)

// Storage is a Redis-backed implementation of the room store
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.RoomStore = (*Storage)(nil)

// storedPlayer is the JSON shape of a roster entry
type storedPlayer struct {
	Name       string           `json:"name"`
	Team       model.Team       `json:"team"`
	Ban        model.ChampionID `json:"ban,omitempty"`
	JoinedAt   time.Time        `json:"joined_at"`
	LastActive time.Time        `json:"last_active"`
}

func toStoredPlayer(p *model.Player) storedPlayer {
	return storedPlayer{
		Name:       p.Name,
		Team:       p.Team,
		Ban:        p.Ban,
		JoinedAt:   p.JoinedAt,
		LastActive: p.LastActive,
	}
}

func (sp storedPlayer) toModel() *model.Player {
	return &model.Player{
		Name:       sp.Name,
		Team:       sp.Team,
		Ban:        sp.Ban,
		JoinedAt:   sp.JoinedAt,
		LastActive: sp.LastActive,
	}
}

// Meta operations

func (s *Storage) SaveMeta(ctx context.Context, meta *model.RoomMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, metaKey(meta.RoomID), data, s.cfg.RoomTTL).Err()
}

func (s *Storage) GetMeta(ctx context.Context, roomID model.RoomID) (*model.RoomMeta, error) {
	data, err := s.client.Get(ctx, metaKey(roomID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRoomNotFound
		}
		return nil, err
	}

	var meta model.RoomMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Storage) RoomExists(ctx context.Context, roomID model.RoomID) (bool, error) {
	exists, err := s.client.Exists(ctx, metaKey(roomID)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *Storage) DeleteRoom(ctx context.Context, roomID model.RoomID) error {
	indexKey := rosterIndexKey(roomID)

	ids, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	for _, id := range ids {
		pipe.Del(ctx, playerKey(roomID, model.PlayerID(id)))
	}
	pipe.Del(ctx, indexKey)
	pipe.Del(ctx, metaKey(roomID))
	pipe.Del(ctx, poolKey(roomID))
	for _, channel := range model.VoteChannels {
		pipe.Del(ctx, votesKey(roomID, channel))
	}
	_, err = pipe.Exec(ctx)
	return err
}

// Roster operations

func (s *Storage) SavePlayer(ctx context.Context, roomID model.RoomID, id model.PlayerID, player *model.Player) error {
	data, err := json.Marshal(toStoredPlayer(player))
	if err != nil {
		return err
	}

	pKey := playerKey(roomID, id)
	indexKey := rosterIndexKey(roomID)

	// The player key carries the presence TTL; the index entry is cleaned
	// lazily when a read finds the key gone.
	pipe := s.client.Pipeline()
	pipe.Set(ctx, pKey, data, s.cfg.PlayerTTL)
	pipe.SAdd(ctx, indexKey, string(id))
	pipe.Expire(ctx, indexKey, s.cfg.RoomTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, roomID model.RoomID, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(roomID, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var sp storedPlayer
	if err := json.Unmarshal(data, &sp); err != nil {
		return nil, err
	}
	return sp.toModel(), nil
}

func (s *Storage) GetPlayers(ctx context.Context, roomID model.RoomID) (map[model.PlayerID]*model.Player, error) {
	indexKey := rosterIndexKey(roomID)

	ids, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	players := make(map[model.PlayerID]*model.Player, len(ids))
	if len(ids) == 0 {
		return players, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = playerKey(roomID, model.PlayerID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	var expired []interface{}
	for i, val := range values {
		if val == nil {
			// Presence expiry removed the entry; drop the stale index member
			expired = append(expired, ids[i])
			continue
		}
		var sp storedPlayer
		if err := json.Unmarshal([]byte(val.(string)), &sp); err != nil {
			continue
		}
		players[model.PlayerID(ids[i])] = sp.toModel()
	}

	if len(expired) > 0 {
		_ = s.client.SRem(ctx, indexKey, expired...).Err()
	}

	return players, nil
}

func (s *Storage) RemovePlayer(ctx context.Context, roomID model.RoomID, id model.PlayerID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, playerKey(roomID, id))
	pipe.SRem(ctx, rosterIndexKey(roomID), string(id))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) SetPlayerTeam(ctx context.Context, roomID model.RoomID, id model.PlayerID, team model.Team) error {
	return s.updatePlayer(ctx, roomID, id, func(sp *storedPlayer) {
		sp.Team = team
	})
}

func (s *Storage) SetPlayerBan(ctx context.Context, roomID model.RoomID, id model.PlayerID, ban model.ChampionID) error {
	return s.updatePlayer(ctx, roomID, id, func(sp *storedPlayer) {
		sp.Ban = ban
	})
}

func (s *Storage) TouchPlayer(ctx context.Context, roomID model.RoomID, id model.PlayerID, at time.Time) error {
	pKey := playerKey(roomID, id)

	data, err := s.client.Get(ctx, pKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.ErrPlayerNotFound
		}
		return err
	}

	var sp storedPlayer
	if err := json.Unmarshal(data, &sp); err != nil {
		return err
	}
	sp.LastActive = at

	updated, err := json.Marshal(sp)
	if err != nil {
		return err
	}

	// Renew the presence window on heartbeat
	return s.client.Set(ctx, pKey, updated, s.cfg.PlayerTTL).Err()
}

// updatePlayer applies a read-modify-write of a single roster field while
// keeping the remaining presence TTL. Concurrent updates to the same entry
// resolve last-write-wins.
func (s *Storage) updatePlayer(ctx context.Context, roomID model.RoomID, id model.PlayerID, mutate func(*storedPlayer)) error {
	pKey := playerKey(roomID, id)

	data, err := s.client.Get(ctx, pKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.ErrPlayerNotFound
		}
		return err
	}

	var sp storedPlayer
	if err := json.Unmarshal(data, &sp); err != nil {
		return err
	}
	mutate(&sp)

	updated, err := json.Marshal(sp)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, pKey, updated, redis.KeepTTL).Err()
}

// Pool operations

func (s *Storage) SavePool(ctx context.Context, roomID model.RoomID, pool *model.Pool) error {
	data, err := json.Marshal(pool)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, poolKey(roomID), data, s.cfg.RoomTTL).Err()
}

func (s *Storage) GetPool(ctx context.Context, roomID model.RoomID) (*model.Pool, error) {
	data, err := s.client.Get(ctx, poolKey(roomID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPoolNotFound
		}
		return nil, err
	}

	var pool model.Pool
	if err := json.Unmarshal(data, &pool); err != nil {
		return nil, err
	}
	return &pool, nil
}

func (s *Storage) SetTeamPool(ctx context.Context, roomID model.RoomID, team model.Team, ids []model.ChampionID, version string, rolledAt time.Time) error {
	pool, err := s.GetPool(ctx, roomID)
	if err != nil {
		if !errors.Is(err, model.ErrPoolNotFound) {
			return err
		}
		pool = &model.Pool{}
	}

	if team == model.Team1 {
		pool.Team1 = ids
	} else {
		pool.Team2 = ids
	}
	pool.DatasetVersion = version
	pool.RolledAt = rolledAt

	return s.SavePool(ctx, roomID, pool)
}

// Vote operations

func (s *Storage) SetVote(ctx context.Context, roomID model.RoomID, channel model.VoteChannel, id model.PlayerID) error {
	key := votesKey(roomID, channel)

	pipe := s.client.Pipeline()
	pipe.SAdd(ctx, key, string(id))
	pipe.Expire(ctx, key, s.cfg.RoomTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) RemoveVote(ctx context.Context, roomID model.RoomID, channel model.VoteChannel, id model.PlayerID) error {
	return s.client.SRem(ctx, votesKey(roomID, channel), string(id)).Err()
}

func (s *Storage) GetVotes(ctx context.Context, roomID model.RoomID) (*model.Votes, error) {
	votes := model.NewVotes()
	for _, channel := range model.VoteChannels {
		members, err := s.client.SMembers(ctx, votesKey(roomID, channel)).Result()
		if err != nil {
			return nil, err
		}
		set := votes.ForChannel(channel)
		for _, member := range members {
			set[model.PlayerID(member)] = true
		}
	}
	return votes, nil
}

func (s *Storage) ClearVotes(ctx context.Context, roomID model.RoomID, channel model.VoteChannel) error {
	return s.client.Del(ctx, votesKey(roomID, channel)).Err()
}

func (s *Storage) ClearAllVotes(ctx context.Context, roomID model.RoomID) error {
	pipe := s.client.Pipeline()
	for _, channel := range model.VoteChannels {
		pipe.Del(ctx, votesKey(roomID, channel))
	}
	_, err := pipe.Exec(ctx)
	return err
}
