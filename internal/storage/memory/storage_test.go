package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/aramroll/aramroll/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
	now     time.Time
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
	s.now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
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
	s.Equal(saved, meta)
}

func (s *StorageSuite) TestGetMetaNotFound() {
	_, err := s.storage.GetMeta(s.ctx, "nope")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestGetMetaReturnsCopy() {
	s.saveMeta("abc123")

	meta, err := s.storage.GetMeta(s.ctx, "abc123")
	s.Require().NoError(err)
	meta.GameName = "mutated"

	again, err := s.storage.GetMeta(s.ctx, "abc123")
	s.Require().NoError(err)
	s.Equal("Friday ARAM", again.GameName)
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

func (s *StorageSuite) TestDeleteRoomRemovesEverything() {
	s.saveMeta("abc123")
	s.savePlayer("abc123", "p1", model.Team1)
	s.Require().NoError(s.storage.SavePool(s.ctx, "abc123", &model.Pool{Team1: []model.ChampionID{"Aatrox"}}))
	s.Require().NoError(s.storage.SetVote(s.ctx, "abc123", model.GlobalReroll, "p1"))

	s.Require().NoError(s.storage.DeleteRoom(s.ctx, "abc123"))

	exists, _ := s.storage.RoomExists(s.ctx, "abc123")
	s.False(exists)
	players, _ := s.storage.GetPlayers(s.ctx, "abc123")
	s.Empty(players)
	_, err := s.storage.GetPool(s.ctx, "abc123")
	s.ErrorIs(err, model.ErrPoolNotFound)
	votes, _ := s.storage.GetVotes(s.ctx, "abc123")
	s.Empty(votes.Global)
}

func (s *StorageSuite) TestDeleteRoomScopedToOneRoom() {
	s.saveMeta("abc123")
	s.saveMeta("xyz789")
	s.savePlayer("xyz789", "p1", model.Team1)

	s.Require().NoError(s.storage.DeleteRoom(s.ctx, "abc123"))

	exists, _ := s.storage.RoomExists(s.ctx, "xyz789")
	s.True(exists)
	players, _ := s.storage.GetPlayers(s.ctx, "xyz789")
	s.Len(players, 1)
}

// Roster

func (s *StorageSuite) TestSavePlayerOverwrites() {
	s.savePlayer("abc123", "p1", model.Team1)
	s.Require().NoError(s.storage.SavePlayer(s.ctx, "abc123", "p1", &model.Player{
		Name: "renamed",
		Team: model.Team2,
	}))

	player, err := s.storage.GetPlayer(s.ctx, "abc123", "p1")
	s.Require().NoError(err)
	s.Equal("renamed", player.Name)
	s.Equal(model.Team2, player.Team)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "abc123", "ghost")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGetPlayersScopedToRoom() {
	s.savePlayer("abc123", "p1", model.Team1)
	s.savePlayer("abc123", "p2", model.Team2)
	s.savePlayer("xyz789", "p3", model.Team1)

	players, err := s.storage.GetPlayers(s.ctx, "abc123")
	s.Require().NoError(err)
	s.Len(players, 2)
	s.Contains(players, model.PlayerID("p1"))
	s.Contains(players, model.PlayerID("p2"))
}

func (s *StorageSuite) TestRemovePlayerAbsentIsNoop() {
	s.NoError(s.storage.RemovePlayer(s.ctx, "abc123", "ghost"))
}

func (s *StorageSuite) TestSetPlayerTeam() {
	s.savePlayer("abc123", "p1", model.Team1)

	s.Require().NoError(s.storage.SetPlayerTeam(s.ctx, "abc123", "p1", model.Team2))

	player, _ := s.storage.GetPlayer(s.ctx, "abc123", "p1")
	s.Equal(model.Team2, player.Team)

	s.ErrorIs(s.storage.SetPlayerTeam(s.ctx, "abc123", "ghost", model.Team1), model.ErrPlayerNotFound)
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

func (s *StorageSuite) TestTouchPlayer() {
	s.savePlayer("abc123", "p1", model.Team1)

	later := s.now.Add(3 * time.Minute)
	s.Require().NoError(s.storage.TouchPlayer(s.ctx, "abc123", "p1", later))

	player, _ := s.storage.GetPlayer(s.ctx, "abc123", "p1")
	s.Equal(later, player.LastActive)

	s.ErrorIs(s.storage.TouchPlayer(s.ctx, "abc123", "ghost", later), model.ErrPlayerNotFound)
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
	s.Equal(pool, got)
}

func (s *StorageSuite) TestGetPoolNotFound() {
	_, err := s.storage.GetPool(s.ctx, "abc123")
	s.ErrorIs(err, model.ErrPoolNotFound)
}

func (s *StorageSuite) TestGetPoolReturnsCopy() {
	s.Require().NoError(s.storage.SavePool(s.ctx, "abc123", &model.Pool{
		Team1: []model.ChampionID{"Aatrox"},
	}))

	pool, _ := s.storage.GetPool(s.ctx, "abc123")
	pool.Team1[0] = "Mutated"

	again, _ := s.storage.GetPool(s.ctx, "abc123")
	s.Equal(model.ChampionID("Aatrox"), again.Team1[0])
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
	s.Equal(later, pool.RolledAt)
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

func (s *StorageSuite) TestSetVoteIdempotent() {
	s.Require().NoError(s.storage.SetVote(s.ctx, "abc123", model.GlobalReroll, "p1"))
	s.Require().NoError(s.storage.SetVote(s.ctx, "abc123", model.GlobalReroll, "p1"))

	votes, _ := s.storage.GetVotes(s.ctx, "abc123")
	s.Len(votes.Global, 1)
}

func (s *StorageSuite) TestRemoveVote() {
	s.Require().NoError(s.storage.SetVote(s.ctx, "abc123", model.GlobalReroll, "p1"))

	s.Require().NoError(s.storage.RemoveVote(s.ctx, "abc123", model.GlobalReroll, "p1"))
	// Removing again is a no-op
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
	s.Require().NoError(s.storage.SetVote(s.ctx, "xyz789", model.GlobalReroll, "p3"))

	s.Require().NoError(s.storage.ClearAllVotes(s.ctx, "abc123"))

	votes, _ := s.storage.GetVotes(s.ctx, "abc123")
	s.Empty(votes.Global)
	s.Empty(votes.Team1)

	other, _ := s.storage.GetVotes(s.ctx, "xyz789")
	s.Len(other.Global, 1)
}
