package tasks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	tasks map[string]models.Task
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tasks: make(map[string]models.Task)}
}

func (r *MemoryRepository) Create(_ context.Context, task *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task.ID = uuid.NewString()
	task.CreatedAt = time.Now().UTC()
	r.tasks[task.ID] = *task
	return task, nil
}

func (r *MemoryRepository) ListByOwner(_ context.Context, userID string) ([]*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.Task
	for _, t := range r.tasks {
		if t.UserID == userID {
			item := t
			result = append(result, &item)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].ScheduledAt.Equal(result[j].ScheduledAt) {
			return result[i].ScheduledAt.Before(result[j].ScheduledAt)
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *MemoryRepository) Find(_ context.Context, id string) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &t, nil
}

func (r *MemoryRepository) Update(_ context.Context, task *models.Task) error {
	return r.modify(task.ID, func(t *models.Task) {
		t.Name = task.Name
		t.ScheduledAt = task.ScheduledAt
		t.Priority = task.Priority
	})
}

func (r *MemoryRepository) SetCompleted(_ context.Context, id string) error {
	return r.modify(id, func(t *models.Task) { t.Completed = true })
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *MemoryRepository) DeleteByOwner(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, t := range r.tasks {
		if t.UserID == userID {
			delete(r.tasks, id)
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepository) modify(id string, fn func(*models.Task)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return common.ErrorNotFound
	}
	fn(&t)
	r.tasks[id] = t
	return nil
}
