package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps users in process memory. It enforces the same
// unique name and email constraints as the PostgreSQL schema.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]models.User // by id
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]models.User)}
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Name == user.Name || u.Email == user.Email {
			return nil, common.ErrAlreadyExists
		}
	}

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	r.users[user.ID] = *user

	return user, nil
}

func (r *MemoryRepository) GetUserByName(_ context.Context, name string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Name == name })
}

func (r *MemoryRepository) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email })
}

func (r *MemoryRepository) find(match func(models.User) bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}
