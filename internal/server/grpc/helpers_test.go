package grpc

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

// ---- fakes ----

type fakeUsers struct {
	user *models.User
	err  error
	got  services.Registration
}

func (f *fakeUsers) Register(_ context.Context, r services.Registration) (*models.User, error) {
	f.got = r
	return f.user, f.err
}

type fakeSessions struct {
	pair       *services.TokenPair
	loginErr   error
	access     string
	refreshErr error
	signOutErr error
	signedOut  string
	userID     string
	resolveErr error
}

func (f *fakeSessions) Login(context.Context, string, string) (*services.TokenPair, error) {
	return f.pair, f.loginErr
}
func (f *fakeSessions) Refresh(context.Context, string) (string, error) {
	return f.access, f.refreshErr
}
func (f *fakeSessions) SignOut(_ context.Context, token string) error {
	f.signedOut = token
	return f.signOutErr
}
func (f *fakeSessions) Resolve(context.Context, string) (string, error) {
	return f.userID, f.resolveErr
}

type fakeTasks struct {
	task    *models.Task
	list    []*models.Task
	cleared int64
	err     error

	owner string
	id    string
	input services.TaskInput
}

func (f *fakeTasks) Create(_ context.Context, owner string, in services.TaskInput) (*models.Task, error) {
	f.owner, f.input = owner, in
	return f.task, f.err
}
func (f *fakeTasks) List(_ context.Context, owner string) ([]*models.Task, error) {
	f.owner = owner
	return f.list, f.err
}
func (f *fakeTasks) Get(_ context.Context, owner, id string) (*models.Task, error) {
	f.owner, f.id = owner, id
	return f.task, f.err
}
func (f *fakeTasks) Update(_ context.Context, owner, id string, in services.TaskInput) (*models.Task, error) {
	f.owner, f.id, f.input = owner, id, in
	return f.task, f.err
}
func (f *fakeTasks) Complete(_ context.Context, owner, id string) error {
	f.owner, f.id = owner, id
	return f.err
}
func (f *fakeTasks) Delete(_ context.Context, owner, id string) error {
	f.owner, f.id = owner, id
	return f.err
}
func (f *fakeTasks) Clear(_ context.Context, owner string) (int64, error) {
	f.owner = owner
	return f.cleared, f.err
}

func newServer(u userSvc, s sessionSvc, t taskSvc) *GRPCServer {
	return &GRPCServer{
		address:  "127.0.0.1:0",
		users:    u,
		sessions: s,
		tasks:    t,
		logger:   nopLogger{},
	}
}
