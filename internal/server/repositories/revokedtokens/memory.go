package revokedtokens

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	tokens map[string]models.RevokedToken
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tokens: make(map[string]models.RevokedToken)}
}

func (r *MemoryRepository) Create(_ context.Context, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[token]; ok {
		return common.ErrAlreadyExists
	}
	r.tokens[token] = models.RevokedToken{Token: token, ExpiresAt: expiresAt, RevokedAt: time.Now().UTC()}
	return nil
}

func (r *MemoryRepository) Exists(_ context.Context, token string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.tokens[token]
	return ok, nil
}

func (r *MemoryRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for token, row := range r.tokens {
		if row.ExpiresAt.Before(now) {
			delete(r.tokens, token)
			n++
		}
	}
	return n, nil
}
