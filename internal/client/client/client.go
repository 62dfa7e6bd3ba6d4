package client

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/api"
	"github.com/dmitrijs2005/taskkeeper/internal/client/session"
)

// SessionStore persists tokens between CLI invocations.
type SessionStore interface {
	Load() (*session.Session, error)
	Save(*session.Session) error
	Clear() error
}

// TaskInput carries the user-editable task fields. Time is ignored by
// UpdateTask.
type TaskInput struct {
	Name     string
	Date     string
	Time     string
	Priority string
}

// Client is the operation set the CLI needs.
type Client interface {
	Close() error
	Session() session.Session
	Ping(ctx context.Context) error
	Register(ctx context.Context, name, email string, password []byte) (string, error)
	Login(ctx context.Context, name string, password []byte) error
	Refresh(ctx context.Context) error
	Logout(ctx context.Context) error
	CreateTask(ctx context.Context, in TaskInput) (*api.Task, error)
	ListTasks(ctx context.Context) ([]api.Task, error)
	GetTask(ctx context.Context, id string) (*api.Task, error)
	UpdateTask(ctx context.Context, id string, in TaskInput) (*api.Task, error)
	CompleteTask(ctx context.Context, id string) error
	DeleteTask(ctx context.Context, id string) error
	ClearTasks(ctx context.Context) (int64, error)
}
