package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aramroll/aramroll/internal/model"
	"github.com/aramroll/aramroll/internal/storage"
)

// Storage is an in-memory implementation of the room store
type Storage struct {
	mu sync.RWMutex

	metas   map[model.RoomID]*model.RoomMeta
	players map[playerKey]*model.Player
	pools   map[model.RoomID]*model.Pool
	votes   map[voteKey]bool
}

type playerKey struct {
	roomID model.RoomID
	id     model.PlayerID
}

type voteKey struct {
	roomID  model.RoomID
	channel model.VoteChannel
	id      model.PlayerID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		metas:   make(map[model.RoomID]*model.RoomMeta),
		players: make(map[playerKey]*model.Player),
		pools:   make(map[model.RoomID]*model.Pool),
		votes:   make(map[voteKey]bool),
	}
}

// Ensure Storage implements the interface
var _ storage.RoomStore = (*Storage)(nil)

// Meta operations

func (s *Storage) SaveMeta(ctx context.Context, meta *model.RoomMeta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := *meta
	s.metas[meta.RoomID] = &m
	return nil
}

func (s *Storage) GetMeta(ctx context.Context, roomID model.RoomID) (*model.RoomMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	meta, ok := s.metas[roomID]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	m := *meta
	return &m, nil
}

func (s *Storage) RoomExists(ctx context.Context, roomID model.RoomID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.metas[roomID]
	return ok, nil
}

func (s *Storage) DeleteRoom(ctx context.Context, roomID model.RoomID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.metas, roomID)
	delete(s.pools, roomID)
	for key := range s.players {
		if key.roomID == roomID {
			delete(s.players, key)
		}
	}
	for key := range s.votes {
		if key.roomID == roomID {
			delete(s.votes, key)
		}
	}
	return nil
}

// Roster operations

func (s *Storage) SavePlayer(ctx context.Context, roomID model.RoomID, id model.PlayerID, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := *player
	s.players[playerKey{roomID: roomID, id: id}] = &p
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, roomID model.RoomID, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[playerKey{roomID: roomID, id: id}]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := *player
	return &p, nil
}

func (s *Storage) GetPlayers(ctx context.Context, roomID model.RoomID) (map[model.PlayerID]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make(map[model.PlayerID]*model.Player)
	for key, player := range s.players {
		if key.roomID == roomID {
			p := *player
			players[key.id] = &p
		}
	}
	return players, nil
}

func (s *Storage) RemovePlayer(ctx context.Context, roomID model.RoomID, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, playerKey{roomID: roomID, id: id})
	return nil
}

func (s *Storage) SetPlayerTeam(ctx context.Context, roomID model.RoomID, id model.PlayerID, team model.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[playerKey{roomID: roomID, id: id}]
	if !ok {
		return model.ErrPlayerNotFound
	}
	player.Team = team
	return nil
}

func (s *Storage) SetPlayerBan(ctx context.Context, roomID model.RoomID, id model.PlayerID, ban model.ChampionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[playerKey{roomID: roomID, id: id}]
	if !ok {
		return model.ErrPlayerNotFound
	}
	player.Ban = ban
	return nil
}

func (s *Storage) TouchPlayer(ctx context.Context, roomID model.RoomID, id model.PlayerID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[playerKey{roomID: roomID, id: id}]
	if !ok {
		return model.ErrPlayerNotFound
	}
	player.LastActive = at
	return nil
}

// Pool operations

func (s *Storage) SavePool(ctx context.Context, roomID model.RoomID, pool *model.Pool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := copyPool(pool)
	s.pools[roomID] = p
	return nil
}

func (s *Storage) GetPool(ctx context.Context, roomID model.RoomID) (*model.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pool, ok := s.pools[roomID]
	if !ok {
		return nil, model.ErrPoolNotFound
	}
	return copyPool(pool), nil
}

func (s *Storage) SetTeamPool(ctx context.Context, roomID model.RoomID, team model.Team, ids []model.ChampionID, version string, rolledAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pool, ok := s.pools[roomID]
	if !ok {
		pool = &model.Pool{}
		s.pools[roomID] = pool
	}
	list := make([]model.ChampionID, len(ids))
	copy(list, ids)
	if team == model.Team1 {
		pool.Team1 = list
	} else {
		pool.Team2 = list
	}
	pool.DatasetVersion = version
	pool.RolledAt = rolledAt
	return nil
}

// Vote operations

func (s *Storage) SetVote(ctx context.Context, roomID model.RoomID, channel model.VoteChannel, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.votes[voteKey{roomID: roomID, channel: channel, id: id}] = true
	return nil
}

func (s *Storage) RemoveVote(ctx context.Context, roomID model.RoomID, channel model.VoteChannel, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.votes, voteKey{roomID: roomID, channel: channel, id: id})
	return nil
}

func (s *Storage) GetVotes(ctx context.Context, roomID model.RoomID) (*model.Votes, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	votes := model.NewVotes()
	for key := range s.votes {
		if key.roomID != roomID {
			continue
		}
		if set := votes.ForChannel(key.channel); set != nil {
			set[key.id] = true
		}
	}
	return votes, nil
}

func (s *Storage) ClearVotes(ctx context.Context, roomID model.RoomID, channel model.VoteChannel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.votes {
		if key.roomID == roomID && key.channel == channel {
			delete(s.votes, key)
		}
	}
	return nil
}

func (s *Storage) ClearAllVotes(ctx context.Context, roomID model.RoomID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.votes {
		if key.roomID == roomID {
			delete(s.votes, key)
		}
	}
	return nil
}

func copyPool(pool *model.Pool) *model.Pool {
	p := &model.Pool{
		DatasetVersion: pool.DatasetVersion,
		RolledAt:       pool.RolledAt,
	}
	p.Team1 = make([]model.ChampionID, len(pool.Team1))
	copy(p.Team1, pool.Team1)
	p.Team2 = make([]model.ChampionID, len(pool.Team2))
	copy(p.Team2, pool.Team2)
	return p
}
