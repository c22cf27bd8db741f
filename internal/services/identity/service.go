package identity

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/aramroll/aramroll/internal/dependencies/clock"
	"github.com/aramroll/aramroll/internal/dependencies/random"
	"github.com/aramroll/aramroll/internal/model"
)

const (
	idPrefix       = "u"
	idSuffixLength = 6
	idAlphabet     = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Service issues a stable per-install participant id, generated once and
// persisted to a local file. There is no cross-device uniqueness guarantee;
// collisions are accepted.
type Service struct {
	path   string
	clock  clock.Clock
	random random.Random

	mu sync.Mutex
	id model.PlayerID
}

// New creates an identity service persisting to the given file path.
// An empty path falls back to a file under the user config directory.
func New(path string, clk clock.Clock, rnd random.Random) *Service {
	if path == "" {
		path = defaultIDFile()
	}
	return &Service{
		path:   path,
		clock:  clk,
		random: rnd,
	}
}

// CurrentID returns the persisted participant id, generating and saving a
// fresh one on first use.
func (s *Service) CurrentID() (model.PlayerID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.id != "" {
		return s.id, nil
	}

	if data, err := os.ReadFile(s.path); err == nil {
		id := strings.TrimSpace(string(data))
		if id != "" {
			s.id = model.PlayerID(id)
			return s.id, nil
		}
	} else if !os.IsNotExist(err) {
		return "", err
	}

	id := s.generate()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return "", err
	}
	if err := os.WriteFile(s.path, []byte(id), 0o600); err != nil {
		return "", err
	}

	s.id = id
	return s.id, nil
}

// generate builds an id from a timestamp-derived prefix and a random suffix,
// e.g. "u_m1x2y3_a4bc9z".
func (s *Service) generate() model.PlayerID {
	ts := strconv.FormatInt(s.clock.Now().UnixMilli(), 36)
	suffix := s.random.String(idSuffixLength, idAlphabet)
	return model.PlayerID(idPrefix + "_" + ts + "_" + suffix)
}

func defaultIDFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".aramroll", "participant-id")
	}
	return filepath.Join(dir, "aramroll", "participant-id")
}
