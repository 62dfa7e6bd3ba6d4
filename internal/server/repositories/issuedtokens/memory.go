package issuedtokens

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	tokens []models.IssuedToken
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(_ context.Context, userID string, accessToken string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens = append(r.tokens, models.IssuedToken{
		ID:          uuid.NewString(),
		UserID:      userID,
		AccessToken: accessToken,
		CreatedAt:   time.Now().UTC(),
	})
	return nil
}

func (r *MemoryRepository) CountByUser(_ context.Context, userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, t := range r.tokens {
		if t.UserID == userID {
			n++
		}
	}
	return n, nil
}
