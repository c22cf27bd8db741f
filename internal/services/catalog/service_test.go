package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/aramroll/aramroll/internal/dependencies/mocks"
	"github.com/aramroll/aramroll/internal/model"
	"github.com/aramroll/aramroll/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	server       *httptest.Server
	versionCalls atomic.Int64
	failVersions atomic.Bool
	random       *mocks.MockRandom
	service      *Service
	ctx          context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.versionCalls.Store(0)
	s.failVersions.Store(false)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/versions.json", func(w http.ResponseWriter, r *http.Request) {
		s.versionCalls.Add(1)
		if s.failVersions.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `["15.1.1","15.0.1","14.24.1"]`)
	})
	mux.HandleFunc("/cdn/15.1.1/data/ko_KR/champion.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{
			"Aatrox":{"id":"Aatrox","name":"아트록스","image":{"full":"Aatrox.png"}},
			"Ahri":{"id":"Ahri","name":"아리","image":{"full":"Ahri.png"}},
			"Garen":{"id":"Garen","name":"가렌","image":{"full":"Garen.png"}}
		}}`)
	})
	mux.HandleFunc("/cdn/15.1.1/data/ko_KR/summoner.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"version":"15.1.1","data":{}}`)
	})
	s.server = httptest.NewServer(mux)

	s.random = mocks.NewMockRandom()
	s.service = New(Config{BaseURL: s.server.URL}, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TearDownTest() {
	s.server.Close()
}

func (s *ServiceSuite) TestLoadFetchesLatestVersion() {
	err := s.service.Load(s.ctx)
	s.Require().NoError(err)

	s.True(s.service.IsLoaded())
	s.Equal("15.1.1", s.service.Version())
	s.Equal(3, s.service.Count())
}

func (s *ServiceSuite) TestLoadIsIdempotent() {
	s.Require().NoError(s.service.Load(s.ctx))
	s.Require().NoError(s.service.Load(s.ctx))

	s.Equal(int64(1), s.versionCalls.Load())
}

func (s *ServiceSuite) TestFailedLoadLeavesUnloadedAndRetryable() {
	s.failVersions.Store(true)

	err := s.service.Load(s.ctx)
	s.ErrorIs(err, model.ErrCatalogUnavailable)
	s.False(s.service.IsLoaded())

	s.failVersions.Store(false)
	s.Require().NoError(s.service.Load(s.ctx))
	s.True(s.service.IsLoaded())
}

func (s *ServiceSuite) TestLoadSurvivesMissingSummonerData() {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/versions.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `["15.1.1"]`)
	})
	mux.HandleFunc("/cdn/15.1.1/data/ko_KR/champion.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"Ahri":{"id":"Ahri","name":"아리","image":{"full":"Ahri.png"}}}}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	service := New(Config{BaseURL: server.URL}, s.random, testutil.NopLogger())
	s.Require().NoError(service.Load(s.ctx))
	s.True(service.IsLoaded())
}

func (s *ServiceSuite) TestGet() {
	s.Require().NoError(s.service.Load(s.ctx))

	entry, ok := s.service.Get("Ahri")
	s.True(ok)
	s.Equal("아리", entry.Name)
	s.Equal("Ahri.png", entry.ImageFull)

	_, ok = s.service.Get("NotAChampion")
	s.False(ok)
}

func (s *ServiceSuite) TestSearchMatchesIDAndName() {
	s.Require().NoError(s.service.Load(s.ctx))

	// By id, case-insensitive
	results := s.service.Search("aat")
	s.Require().Len(results, 1)
	s.Equal(model.ChampionID("Aatrox"), results[0].ID)

	// By localized name
	results = s.service.Search("가렌")
	s.Require().Len(results, 1)
	s.Equal(model.ChampionID("Garen"), results[0].ID)

	s.Empty(s.service.Search("zzzzz"))
}

func (s *ServiceSuite) TestSearchEmptyQueryReturnsAllSorted() {
	s.Require().NoError(s.service.Load(s.ctx))

	results := s.service.Search("")
	s.Require().Len(results, 3)
	for i := 1; i < len(results); i++ {
		s.LessOrEqual(results[i-1].Name, results[i].Name)
	}
}

func (s *ServiceSuite) TestSampleExcludingRespectsExclusions() {
	s.service.LoadStatic("15.1.1", makeEntries(20))

	excluded := map[model.ChampionID]bool{
		"Champ000": true,
		"Champ005": true,
	}
	sample := s.service.SampleExcluding(excluded, 18)
	s.Require().Len(sample, 18)

	seen := make(map[model.ChampionID]bool)
	for _, id := range sample {
		s.False(excluded[id], "excluded champion %s was sampled", id)
		s.False(seen[id], "champion %s sampled twice", id)
		seen[id] = true
	}
}

func (s *ServiceSuite) TestSampleExcludingShortfall() {
	s.service.LoadStatic("15.1.1", makeEntries(10))

	sample := s.service.SampleExcluding(nil, 15)
	s.Len(sample, 10)
}

func (s *ServiceSuite) TestIconURLs() {
	s.Require().NoError(s.service.Load(s.ctx))

	entry, _ := s.service.Get("Aatrox")
	s.Equal(s.server.URL+"/cdn/15.1.1/img/champion/Aatrox.png", s.service.ChampionIconURL(entry))
	s.Equal(s.server.URL+"/cdn/15.1.1/img/profileicon/42.png", s.service.ProfileIconURL("42"))
	s.Equal(s.server.URL+"/cdn/15.1.1/img/profileicon/29.png", s.service.DefaultProfileIconURL())
}

func (s *ServiceSuite) TestLoadStatic() {
	s.service.LoadStatic("15.2.1", makeEntries(5))

	s.True(s.service.IsLoaded())
	s.Equal("15.2.1", s.service.Version())
	s.Equal(5, s.service.Count())
}

func makeEntries(n int) []model.ChampionEntry {
	entries := make([]model.ChampionEntry, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("Champ%03d", i)
		entries[i] = model.ChampionEntry{ID: model.ChampionID(id), Name: id, ImageFull: id + ".png"}
	}
	return entries
}
