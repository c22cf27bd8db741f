package factory

import (
	"fmt"
	"time"

	"github.com/aramroll/aramroll/internal/dependencies/mocks"
	"github.com/aramroll/aramroll/internal/model"
	"github.com/aramroll/aramroll/internal/services/catalog"
	"github.com/aramroll/aramroll/internal/storage/memory"
	"github.com/aramroll/aramroll/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, catalog.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestCatalog primes the catalog with a synthetic dataset large enough
// to roll full pools for both teams with bans in play.
func (t *TestApp) LoadTestCatalog(size int) {
	entries := make([]model.ChampionEntry, size)
	for i := 0; i < size; i++ {
		id := fmt.Sprintf("Champ%03d", i)
		entries[i] = model.ChampionEntry{
			ID:        model.ChampionID(id),
			Name:      id,
			ImageFull: id + ".png",
		}
	}
	t.CatalogService.LoadStatic("15.1.1", entries)
}
