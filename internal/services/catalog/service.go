package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aramroll/aramroll/internal/dependencies/random"
	"github.com/aramroll/aramroll/internal/model"
)

const (
	// DefaultBaseURL is the public Data Dragon CDN
	DefaultBaseURL = "https://ddragon.leagueoflegends.com"
	// DefaultLocale selects the localized champion names
	DefaultLocale = "ko_KR"
	// defaultProfileIconID is the stock summoner icon shown for players
	// without a configured icon
	defaultProfileIconID = "29"
)

// Config holds settings for the catalog service
type Config struct {
	BaseURL string
	Locale  string
	Timeout time.Duration
}

// DefaultConfig returns default catalog configuration
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Locale:  DefaultLocale,
		Timeout: 15 * time.Second,
	}
}

// Service loads and indexes the champion dataset. Load is idempotent; all
// lookups fail with ErrCatalogUnavailable until a load has succeeded.
type Service struct {
	cfg    Config
	client *http.Client
	random random.Random
	logger *slog.Logger

	mu      sync.RWMutex
	loaded  bool
	version string
	byID    map[model.ChampionID]model.ChampionEntry
	sorted  []model.ChampionEntry // name-sorted master list
}

// New creates a new catalog service
func New(cfg Config, rnd random.Random, logger *slog.Logger) *Service {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Locale == "" {
		cfg.Locale = DefaultLocale
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Service{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		random: rnd,
		logger: logger.With(slog.String("component", "catalog")),
		byID:   make(map[model.ChampionID]model.ChampionEntry),
	}
}

// championFile matches the Data Dragon champion.json layout
type championFile struct {
	Data map[string]struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Image struct {
			Full string `json:"full"`
		} `json:"image"`
	} `json:"data"`
}

// Load fetches the latest dataset version and the full champion list.
// A second call while already loaded is a no-op; a failed load leaves the
// catalog unloaded so a later call can retry.
func (s *Service) Load(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}

	var versions []string
	if err := s.fetchJSON(ctx, s.cfg.BaseURL+"/api/versions.json", &versions); err != nil {
		return fmt.Errorf("%w: %v", model.ErrCatalogUnavailable, err)
	}
	if len(versions) == 0 {
		return fmt.Errorf("%w: empty version list", model.ErrCatalogUnavailable)
	}
	latest := versions[0]

	var champs championFile
	url := fmt.Sprintf("%s/cdn/%s/data/%s/champion.json", s.cfg.BaseURL, latest, s.cfg.Locale)
	if err := s.fetchJSON(ctx, url, &champs); err != nil {
		return fmt.Errorf("%w: %v", model.ErrCatalogUnavailable, err)
	}

	entries := make([]model.ChampionEntry, 0, len(champs.Data))
	byID := make(map[model.ChampionID]model.ChampionEntry, len(champs.Data))
	for _, c := range champs.Data {
		entry := model.ChampionEntry{
			ID:        model.ChampionID(c.ID),
			Name:      c.Name,
			ImageFull: c.Image.Full,
		}
		byID[entry.ID] = entry
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	// The summoner icon metadata is fetched for parity with the dataset but
	// only the version is consumed for icon URL templating. Its failure does
	// not fail the load.
	iconURL := fmt.Sprintf("%s/cdn/%s/data/%s/summoner.json", s.cfg.BaseURL, latest, s.cfg.Locale)
	var icons struct {
		Version string `json:"version"`
	}
	if err := s.fetchJSON(ctx, iconURL, &icons); err != nil {
		s.logger.Warn("summoner icon metadata unavailable", slog.String("error", err.Error()))
	}

	s.version = latest
	s.byID = byID
	s.sorted = entries
	s.loaded = true

	s.logger.Info("champion catalog loaded",
		slog.String("version", latest),
		slog.Int("champions", len(entries)))
	return nil
}

func (s *Service) fetchJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// LoadStatic primes the catalog from an in-memory dataset (useful for testing)
func (s *Service) LoadStatic(version string, entries []model.ChampionEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID := make(map[model.ChampionID]model.ChampionEntry, len(entries))
	sorted := make([]model.ChampionEntry, len(entries))
	copy(sorted, entries)
	for _, e := range entries {
		byID[e.ID] = e
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	s.version = version
	s.byID = byID
	s.sorted = sorted
	s.loaded = true
}

// IsLoaded returns whether the catalog has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Version returns the loaded dataset version, or empty if unloaded
func (s *Service) Version() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Count returns the number of champions in the catalog
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sorted)
}

// Get returns the entry for the given champion id
func (s *Service) Get(id model.ChampionID) (model.ChampionEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.byID[id]
	return entry, ok
}

// Search returns the entries whose id or localized name contains the query,
// case-insensitively. An empty query returns the full name-sorted list.
func (s *Service) Search(query string) []model.ChampionEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	var results []model.ChampionEntry
	for _, e := range s.sorted {
		if strings.Contains(strings.ToLower(string(e.ID)), q) ||
			strings.Contains(strings.ToLower(e.Name), q) {
			results = append(results, e)
		}
	}
	return results
}

// SampleExcluding draws up to count champion ids uniformly without
// replacement from the catalog minus the excluded set. The result may be
// shorter than count; callers must check the length and reject short rolls.
func (s *Service) SampleExcluding(excluded map[model.ChampionID]bool, count int) []model.ChampionID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates := make([]model.ChampionID, 0, len(s.sorted))
	for _, e := range s.sorted {
		if !excluded[e.ID] {
			candidates = append(candidates, e.ID)
		}
	}
	return random.SampleUnique(s.random, candidates, count)
}

// ChampionIconURL returns the CDN URL for a champion's square icon
func (s *Service) ChampionIconURL(entry model.ChampionEntry) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fmt.Sprintf("%s/cdn/%s/img/champion/%s", s.cfg.BaseURL, s.version, entry.ImageFull)
}

// ProfileIconURL returns the CDN URL for a summoner profile icon
func (s *Service) ProfileIconURL(iconID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fmt.Sprintf("%s/cdn/%s/img/profileicon/%s.png", s.cfg.BaseURL, s.version, iconID)
}

// DefaultProfileIconURL returns the URL for the stock profile icon
func (s *Service) DefaultProfileIconURL() string {
	return s.ProfileIconURL(defaultProfileIconID)
}
