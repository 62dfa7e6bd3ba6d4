package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/issuedtokens"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/revokedtokens"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/users"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

var errDB = errors.New("db down")

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.BcryptCost = bcrypt.MinCost
	return c
}

type stack struct {
	cfg      *config.Config
	rm       repomanager.RepositoryManager
	codec    *auth.Codec
	users    *UserService
	sessions *SessionService
	tasks    *TaskService
	metrics  *metrics.Auth
	registry *prometheus.Registry
}

func newStack(t *testing.T, rm repomanager.RepositoryManager) *stack {
	t.Helper()
	cfg := testConfig()
	codec, err := auth.NewCodec([]byte(cfg.SecretKey), cfg.SigningAlgorithm)
	if err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}
	reg := prometheus.NewRegistry()
	am := metrics.NewAuth(reg)
	ss, err := NewSessionService(rm, codec, cfg, nopLogger{}, am)
	if err != nil {
		t.Fatalf("NewSessionService error: %v", err)
	}
	return &stack{
		cfg:      cfg,
		rm:       rm,
		codec:    codec,
		users:    NewUserService(rm, cfg, nopLogger{}),
		sessions: ss,
		tasks:    NewTaskService(rm, nopLogger{}),
		metrics:  am,
		registry: reg,
	}
}

func newMemoryStack(t *testing.T) *stack {
	return newStack(t, repomanager.NewInMemoryRepositoryManager())
}

// at freezes the session clock.
func (s *stack) at(now time.Time) {
	s.sessions.now = func() time.Time { return now }
}

func (s *stack) register(t *testing.T, name, password, email string) *models.User {
	t.Helper()
	u, err := s.users.Register(context.Background(), Registration{Name: name, Password: password, Email: email})
	if err != nil {
		t.Fatalf("Register(%s) error: %v", name, err)
	}
	return u
}

// faultyManager wraps the in-memory manager and swaps in failing
// repositories where an error is configured.
type faultyManager struct {
	*repomanager.InMemoryRepositoryManager
	usersErr   error
	issuedErr  error
	revokedErr error
	tasksErr   error
}

func newFaultyManager() *faultyManager {
	return &faultyManager{InMemoryRepositoryManager: repomanager.NewInMemoryRepositoryManager()}
}

func (m *faultyManager) Users(db dbx.DBTX) users.Repository {
	if m.usersErr != nil {
		return failingUsers{m.usersErr}
	}
	return m.InMemoryRepositoryManager.Users(db)
}

func (m *faultyManager) IssuedTokens(db dbx.DBTX) issuedtokens.Repository {
	if m.issuedErr != nil {
		return failingIssued{m.issuedErr}
	}
	return m.InMemoryRepositoryManager.IssuedTokens(db)
}

func (m *faultyManager) RevokedTokens(db dbx.DBTX) revokedtokens.Repository {
	if m.revokedErr != nil {
		return failingRevoked{m.revokedErr}
	}
	return m.InMemoryRepositoryManager.RevokedTokens(db)
}

func (m *faultyManager) Tasks(db dbx.DBTX) tasks.Repository {
	if m.tasksErr != nil {
		return failingTasks{m.tasksErr}
	}
	return m.InMemoryRepositoryManager.Tasks(db)
}

type failingUsers struct{ err error }

func (f failingUsers) Create(context.Context, *models.User) (*models.User, error) { return nil, f.err }
func (f failingUsers) GetUserByName(context.Context, string) (*models.User, error) {
	return nil, f.err
}
func (f failingUsers) GetUserByEmail(context.Context, string) (*models.User, error) {
	return nil, f.err
}

type failingIssued struct{ err error }

func (f failingIssued) Create(context.Context, string, string) error       { return f.err }
func (f failingIssued) CountByUser(context.Context, string) (int64, error) { return 0, f.err }

type failingRevoked struct{ err error }

func (f failingRevoked) Create(context.Context, string, time.Time) error         { return f.err }
func (f failingRevoked) Exists(context.Context, string) (bool, error)            { return false, f.err }
func (f failingRevoked) DeleteExpired(context.Context, time.Time) (int64, error) { return 0, f.err }

type failingTasks struct{ err error }

func (f failingTasks) Create(context.Context, *models.Task) (*models.Task, error)  { return nil, f.err }
func (f failingTasks) ListByOwner(context.Context, string) ([]*models.Task, error) { return nil, f.err }
func (f failingTasks) Find(context.Context, string) (*models.Task, error)          { return nil, f.err }
func (f failingTasks) Update(context.Context, *models.Task) error                  { return f.err }
func (f failingTasks) SetCompleted(context.Context, string) error                  { return f.err }
func (f failingTasks) Delete(context.Context, string) error                        { return f.err }
func (f failingTasks) DeleteByOwner(context.Context, string) (int64, error)        { return 0, f.err }
