// Package tasks declares storage for users' tasks. Ownership is checked by
// the caller; the repository only filters by owner where an operation is
// scoped to one.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository persists tasks. Single-row operations return
// common.ErrorNotFound when id matches nothing.
type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	// ListByOwner returns userID's tasks ordered by scheduled time.
	ListByOwner(ctx context.Context, userID string) ([]*models.Task, error)
	Find(ctx context.Context, id string) (*models.Task, error)
	// Update writes Name, ScheduledAt and Priority.
	Update(ctx context.Context, task *models.Task) error
	SetCompleted(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	// DeleteByOwner removes all of userID's tasks and returns the count.
	DeleteByOwner(ctx context.Context, userID string) (int64, error)
}
