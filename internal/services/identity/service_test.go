package identity

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/aramroll/aramroll/internal/dependencies/mocks"
	"github.com/aramroll/aramroll/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	path   string
	clock  *mocks.MockClock
	random *mocks.MockRandom
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "participant-id")
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
}

func (s *ServiceSuite) newService() *Service {
	return New(s.path, s.clock, s.random)
}

func (s *ServiceSuite) TestGeneratesAndPersistsID() {
	s.random.QueueString("a4bc9z")
	service := s.newService()

	id, err := service.CurrentID()
	s.Require().NoError(err)

	ts := strconv.FormatInt(s.clock.Now().UnixMilli(), 36)
	s.Equal(model.PlayerID("u_"+ts+"_a4bc9z"), id)

	data, err := os.ReadFile(s.path)
	s.Require().NoError(err)
	s.Equal(string(id), string(data))
}

func (s *ServiceSuite) TestReturnsSameIDOnRepeatCalls() {
	s.random.QueueString("a4bc9z", "different")
	service := s.newService()

	first, err := service.CurrentID()
	s.Require().NoError(err)
	second, err := service.CurrentID()
	s.Require().NoError(err)
	s.Equal(first, second)
}

func (s *ServiceSuite) TestReusesPersistedIDAcrossInstances() {
	s.random.QueueString("a4bc9z")
	first, err := s.newService().CurrentID()
	s.Require().NoError(err)

	// A fresh instance a day later must read the file, not regenerate
	s.clock.Advance(24 * time.Hour)
	s.random.QueueString("zzzzzz")
	second, err := s.newService().CurrentID()
	s.Require().NoError(err)
	s.Equal(first, second)
}

func (s *ServiceSuite) TestIgnoresEmptyFile() {
	s.Require().NoError(os.WriteFile(s.path, []byte("  \n"), 0o600))

	s.random.QueueString("a4bc9z")
	id, err := s.newService().CurrentID()
	s.Require().NoError(err)
	s.NotEmpty(id)
}

func (s *ServiceSuite) TestTrimsWhitespaceFromFile() {
	s.Require().NoError(os.WriteFile(s.path, []byte("u_abc_def123\n"), 0o600))

	id, err := s.newService().CurrentID()
	s.Require().NoError(err)
	s.Equal(model.PlayerID("u_abc_def123"), id)
}

func (s *ServiceSuite) TestCreatesParentDirectory() {
	s.path = filepath.Join(s.T().TempDir(), "nested", "dir", "participant-id")
	s.random.QueueString("a4bc9z")

	_, err := s.newService().CurrentID()
	s.Require().NoError(err)

	_, err = os.Stat(s.path)
	s.NoError(err)
}
