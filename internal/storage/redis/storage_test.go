package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/aramroll/aramroll/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	client  *redis.Client
	storage *Storage
	ctx     context.Context
	now     time.Time
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	mini, err := miniredis.Run()
	s.Require().NoError(err)
	s.mini = mini

	s.client = redis.NewClient(&redis.Options{Addr: mini.Addr()})

	cfg := DefaultConfig()
	cfg.RoomTTL = time.Hour
	cfg.PlayerTTL = 5 * time.Minute
	s.storage = NewWithClient(s.client, cfg)

	s.ctx = context.Background()
	s.now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func (s *StorageSuite) TearDownTest() {
	_ = s.client.Close()
	s.mini.Close()
}

func (s *StorageSuite) saveMeta(roomID model.RoomID) *model.RoomMeta {
	meta := &model.RoomMeta{
		RoomID:         roomID,
		HostID:         "host-1",
		HostName:       "Host",
		GameName:       "Friday ARAM",
		CreatedAt:      s.now,
		DatasetVersion: "15.1.1",
	}
	s.Require().NoError(s.storage.SaveMeta(s.ctx, meta))
	return meta
}

func (s *StorageSuite) savePlayer(roomID model.RoomID, id model.PlayerID, team model.Team) {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, roomID, id, &model.Player{
		Name:       string(id),
		Team:       team,
		JoinedAt:   s.now,
		LastActive: s.now,
	}))
}

// Meta

func (s *StorageSuite) TestSaveAndGetMeta() {
	saved := s.saveMeta("abc123")

	meta, err := s.storage.GetMeta(s.ctx, "abc123")
	s.Require().NoError(err)
	s.Equal(saved.RoomID, meta.RoomID)
	s.Equal(saved.HostID, meta.HostID)
	s.Equal(saved.GameName, meta.GameName)
	s.True(saved.CreatedAt.Equal(meta.CreatedAt))
}

func (s *StorageSuite) TestGetMetaNotFound() {
	_, err := s.storage.GetMeta(s.ctx, "nope")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestMetaCarriesRoomTTL() {
	s.saveMeta("abc123")

	ttl := s.mini.TTL(metaKey("abc123"))
	s.Equal(time.Hour, ttl)
}

func (s *StorageSuite) TestRoomExists() {
	exists, err := s.storage.RoomExists(s.ctx, "abc123")
	s.Require().NoError(err)
	s.False(exists)

	s.saveMeta("abc123")

	exists, err = s.storage.RoomExists(s.ctx, "abc123")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestDeleteRoomRemovesAllKeys() {
	s.saveMeta("abc123")
	s.savePlayer("abc123", "p1", model.Team1)
	s.Require().NoError(s.storage.SavePool(s.ctx, "abc123", &model.Pool{Team1: []model.ChampionID{"Aatrox"}}))
	s.Require().NoError(s.storage.SetVote(s.ctx, "abc123", model.GlobalReroll, "p1"))

	s.Require().NoError(s.storage.DeleteRoom(s.ctx, "abc123"))

	s.False(s.mini.Exists(metaKey("abc123")))
	s.False(s.mini.Exists(playerKey("abc123", "p1")))
	s.False(s.mini.Exists(rosterIndexKey("abc123")))
	s.False(s.mini.Exists(poolKey("abc123")))
	s.False(s.mini.Exists(votesKey("abc123", model.GlobalReroll)))
}

// Roster

func (s *StorageSuite) TestSaveAndGetPlayer() {
	s.savePlayer("abc123", "p1", model.Team1)

	player, err := s.storage.GetPlayer(s.ctx, "abc123", "p1")
	s.Require().NoError(err)
	s.Equal("p1", player.Name)
	s.Equal(model.Team1, player.Team)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "abc123", "ghost")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGetPlayers() {
	s.savePlayer("abc123", "p1", model.Team1)
	s.savePlayer("abc123", "p2", model.Team2)

	players, err := s.storage.GetPlayers(s.ctx, "abc123")
	s.Require().NoError(err)
	s.Len(players, 2)
	s.Equal(model.Team1, players["p1"].Team)
	s.Equal(model.Team2, players["p2"].Team)
}

func (s *StorageSuite) TestPlayerExpiresAfterPresenceTTL() {
	s.savePlayer("abc123", "p1", model.Team1)

	s.mini.FastForward(6 * time.Minute)

	_, err := s.storage.GetPlayer(s.ctx, "abc123", "p1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGetPlayersDropsExpiredFromIndex() {
	s.savePlayer("abc123", "p1", model.Team1)
	s.savePlayer("abc123", "p2", model.Team2)

	s.mini.FastForward(6 * time.Minute)
	s.savePlayer("abc123", "p2", model.Team2)

	players, err := s.storage.GetPlayers(s.ctx, "abc123")
	s.Require().NoError(err)
	s.Len(players, 1)
	s.Contains(players, model.PlayerID("p2"))

	// The stale index member was cleaned up on read
	members, err := s.client.SMembers(s.ctx, rosterIndexKey("abc123")).Result()
	s.Require().NoError(err)
	s.Equal([]string{"p2"}, members)
}

func (s *StorageSuite) TestTouchPlayerRenewsPresence() {
	s.savePlayer("abc123", "p1", model.Team1)

	s.mini.FastForward(4 * time.Minute)
	later := s.now.Add(4 * time.Minute)
	s.Require().NoError(s.storage.TouchPlayer(s.ctx, "abc123", "p1", later))

	// Without the renewal the entry would be gone by now
	s.mini.FastForward(4 * time.Minute)

	player, err := s.storage.GetPlayer(s.ctx, "abc123", "p1")
	s.Require().NoError(err)
	s.True(later.Equal(player.LastActive))
}

func (s *StorageSuite) TestSetPlayerTeamKeepsRemainingTTL() {
	s.savePlayer("abc123", "p1", model.Team1)
	s.mini.FastForward(2 * time.Minute)

	s.Require().NoError(s.storage.SetPlayerTeam(s.ctx, "abc123", "p1", model.Team2))

	player, err := s.storage.GetPlayer(s.ctx, "abc123", "p1")
	s.Require().NoError(err)
	s.Equal(model.Team2, player.Team)

	// The field update must not reset the presence window
	ttl := s.mini.TTL(playerKey("abc123", "p1"))
	s.Equal(3*time.Minute, ttl)
}

func (s *StorageSuite) TestSetPlayerBan() {
	s.savePlayer("abc123", "p1", model.Team1)

	s.Require().NoError(s.storage.SetPlayerBan(s.ctx, "abc123", "p1", "Teemo"))
	player, _ := s.storage.GetPlayer(s.ctx, "abc123", "p1")
	s.Equal(model.ChampionID("Teemo"), player.Ban)

	s.Require().NoError(s.storage.SetPlayerBan(s.ctx, "abc123", "p1", ""))
	player, _ = s.storage.GetPlayer(s.ctx, "abc123", "p1")
	s.Empty(player.Ban)
}

func (s *StorageSuite) TestRemovePlayer() {
	s.savePlayer("abc123", "p1", model.Team1)

	s.Require().NoError(s.storage.RemovePlayer(s.ctx, "abc123", "p1"))

	_, err := s.storage.GetPlayer(s.ctx, "abc123", "p1")
	s.ErrorIs(err, model.ErrPlayerNotFound)

	players, err := s.storage.GetPlayers(s.ctx, "abc123")
	s.Require().NoError(err)
	s.Empty(players)

	// Absent removal is a no-op
	s.NoError(s.storage.RemovePlayer(s.ctx, "abc123", "ghost"))
}

// Pools

func (s *StorageSuite) TestSaveAndGetPool() {
	pool := &model.Pool{
		Team1:          []model.ChampionID{"Aatrox", "Ahri"},
		Team2:          []model.ChampionID{"Garen"},
		DatasetVersion: "15.1.1",
		RolledAt:       s.now,
	}
	s.Require().NoError(s.storage.SavePool(s.ctx, "abc123", pool))

	got, err := s.storage.GetPool(s.ctx, "abc123")
	s.Require().NoError(err)
	s.Equal(pool.Team1, got.Team1)
	s.Equal(pool.Team2, got.Team2)
	s.Equal(pool.DatasetVersion, got.DatasetVersion)
}

func (s *StorageSuite) TestGetPoolNotFound() {
	_, err := s.storage.GetPool(s.ctx, "abc123")
	s.ErrorIs(err, model.ErrPoolNotFound)
}

func (s *StorageSuite) TestSetTeamPoolReplacesOneSide() {
	s.Require().NoError(s.storage.SavePool(s.ctx, "abc123", &model.Pool{
		Team1:          []model.ChampionID{"Aatrox"},
		Team2:          []model.ChampionID{"Garen"},
		DatasetVersion: "15.0.1",
		RolledAt:       s.now,
	}))

	later := s.now.Add(time.Minute)
	s.Require().NoError(s.storage.SetTeamPool(s.ctx, "abc123", model.Team2, []model.ChampionID{"Ahri"}, "15.1.1", later))

	pool, err := s.storage.GetPool(s.ctx, "abc123")
	s.Require().NoError(err)
	s.Equal([]model.ChampionID{"Aatrox"}, pool.Team1)
	s.Equal([]model.ChampionID{"Ahri"}, pool.Team2)
	s.Equal("15.1.1", pool.DatasetVersion)
}

func (s *StorageSuite) TestSetTeamPoolCreatesPoolIfMissing() {
	s.Require().NoError(s.storage.SetTeamPool(s.ctx, "abc123", model.Team1, []model.ChampionID{"Ahri"}, "15.1.1", s.now))

	pool, err := s.storage.GetPool(s.ctx, "abc123")
	s.Require().NoError(err)
	s.Equal([]model.ChampionID{"Ahri"}, pool.Team1)
	s.Empty(pool.Team2)
}

// Votes

func (s *StorageSuite) TestSetAndGetVotes() {
	s.Require().NoError(s.storage.SetVote(s.ctx, "abc123", model.GlobalReroll, "p1"))
	s.Require().NoError(s.storage.SetVote(s.ctx, "abc123", model.GlobalReroll, "p2"))
	s.Require().NoError(s.storage.SetVote(s.ctx, "abc123", model.Team1Reroll, "p1"))

	votes, err := s.storage.GetVotes(s.ctx, "abc123")
	s.Require().NoError(err)
	s.Len(votes.Global, 2)
	s.Len(votes.Team1, 1)
	s.Empty(votes.Team2)
}

func (s *StorageSuite) TestRemoveVote() {
	s.Require().NoError(s.storage.SetVote(s.ctx, "abc123", model.GlobalReroll, "p1"))

	s.Require().NoError(s.storage.RemoveVote(s.ctx, "abc123", model.GlobalReroll, "p1"))
	s.Require().NoError(s.storage.RemoveVote(s.ctx, "abc123", model.GlobalReroll, "p1"))

	votes, _ := s.storage.GetVotes(s.ctx, "abc123")
	s.Empty(votes.Global)
}

func (s *StorageSuite) TestClearVotesSingleChannel() {
	s.Require().NoError(s.storage.SetVote(s.ctx, "abc123", model.GlobalReroll, "p1"))
	s.Require().NoError(s.storage.SetVote(s.ctx, "abc123", model.Team2Reroll, "p1"))

	s.Require().NoError(s.storage.ClearVotes(s.ctx, "abc123", model.GlobalReroll))

	votes, _ := s.storage.GetVotes(s.ctx, "abc123")
	s.Empty(votes.Global)
	s.Len(votes.Team2, 1)
}

func (s *StorageSuite) TestClearAllVotes() {
	s.Require().NoError(s.storage.SetVote(s.ctx, "abc123", model.GlobalReroll, "p1"))
	s.Require().NoError(s.storage.SetVote(s.ctx, "abc123", model.Team1Reroll, "p2"))
	s.Require().NoError(s.storage.SetVote(s.ctx, "abc123", model.Team2Reroll, "p2"))

	s.Require().NoError(s.storage.ClearAllVotes(s.ctx, "abc123"))

	votes, _ := s.storage.GetVotes(s.ctx, "abc123")
	s.Empty(votes.Global)
	s.Empty(votes.Team1)
	s.Empty(votes.Team2)
}
