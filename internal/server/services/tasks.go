package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

// TaskInput carries the user-editable fields of a task.
type TaskInput struct {
	Name     string
	Date     string
	Time     string
	Priority string
}

func (in TaskInput) validate(withTime bool) error {
	var timeRules []validation.Rule
	if withTime {
		timeRules = append(timeRules, validation.Required)
	}
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Date, validation.Required),
		validation.Field(&in.Time, timeRules...),
		validation.Field(&in.Priority, validation.Required,
			validation.In(string(models.PriorityLow), string(models.PriorityMedium), string(models.PriorityHigh))),
	)
}

// TaskService manages tasks on behalf of an authenticated owner. A task that
// exists but belongs to someone else is reported as not found.
type TaskService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewTaskService(m repomanager.RepositoryManager, logger logging.Logger) *TaskService {
	return &TaskService{repomanager: m, logger: logger.With("module", "tasks")}
}

// Create stores a new, not yet completed task for owner.
func (s *TaskService) Create(ctx context.Context, owner string, in TaskInput) (*models.Task, error) {
	if err := in.validate(true); err != nil {
		return nil, badRequest(err)
	}
	at, err := models.Schedule(in.Date, in.Time)
	if err != nil {
		return nil, badRequest(err)
	}

	task, err := s.repomanager.Tasks(s.repomanager.Conn()).Create(ctx, &models.Task{
		UserID:      owner,
		Name:        in.Name,
		ScheduledAt: at,
		Priority:    models.Priority(in.Priority),
	})
	if err != nil {
		s.logger.Error(ctx, "task not created", "user_id", owner, "error", err)
		return nil, storageError(err)
	}
	return task, nil
}

// List returns owner's tasks ordered by date, then time of day.
func (s *TaskService) List(ctx context.Context, owner string) ([]*models.Task, error) {
	list, err := s.repomanager.Tasks(s.repomanager.Conn()).ListByOwner(ctx, owner)
	if err != nil {
		return nil, storageError(err)
	}
	return list, nil
}

func (s *TaskService) Get(ctx context.Context, owner, id string) (*models.Task, error) {
	return owned(ctx, s.repomanager.Tasks(s.repomanager.Conn()), owner, id)
}

// Update changes the name, date and priority of a task. The time of day is
// kept.
func (s *TaskService) Update(ctx context.Context, owner, id string, in TaskInput) (*models.Task, error) {
	if err := in.validate(false); err != nil {
		return nil, badRequest(err)
	}

	var task *models.Task
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		t, err := owned(ctx, repo, owner, id)
		if err != nil {
			return err
		}
		at, err := models.Reschedule(t.ScheduledAt, in.Date)
		if err != nil {
			return badRequest(err)
		}

		t.Name = in.Name
		t.ScheduledAt = at
		t.Priority = models.Priority(in.Priority)
		if err := repo.Update(ctx, t); err != nil {
			return repoError(err)
		}
		task = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Complete marks a task as done.
func (s *TaskService) Complete(ctx context.Context, owner, id string) error {
	return s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)
		if _, err := owned(ctx, repo, owner, id); err != nil {
			return err
		}
		return repoError(repo.SetCompleted(ctx, id))
	})
}

func (s *TaskService) Delete(ctx context.Context, owner, id string) error {
	return s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)
		if _, err := owned(ctx, repo, owner, id); err != nil {
			return err
		}
		return repoError(repo.Delete(ctx, id))
	})
}

// Clear deletes all of owner's tasks. It fails with ErrorNotFound when there
// is nothing to delete.
func (s *TaskService) Clear(ctx context.Context, owner string) (int64, error) {
	n, err := s.repomanager.Tasks(s.repomanager.Conn()).DeleteByOwner(ctx, owner)
	if err != nil {
		return 0, storageError(err)
	}
	if n == 0 {
		return 0, common.ErrorNotFound
	}
	s.logger.Info(ctx, "tasks cleared", "user_id", owner, "count", n)
	return n, nil
}

func owned(ctx context.Context, repo tasks.Repository, owner, id string) (*models.Task, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}
	t, err := repo.Find(ctx, id)
	if err != nil {
		return nil, repoError(err)
	}
	if t.UserID != owner {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

// repoError passes not-found through and tags anything else as storage.
func repoError(err error) error {
	if err == nil || errors.Is(err, common.ErrorNotFound) {
		return err
	}
	return storageError(err)
}

func badRequest(err error) error {
	return kindError(common.ErrorBadRequest, kindError(common.ErrValidation, err))
}
