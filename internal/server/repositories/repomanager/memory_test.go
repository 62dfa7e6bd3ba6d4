package repomanager

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepositoryManager_SharesState(t *testing.T) {
	ctx := context.Background()
	var m RepositoryManager = NewInMemoryRepositoryManager()

	require.NoError(t, m.RunMigrations(ctx))
	assert.Nil(t, m.Conn())

	err := m.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := m.Users(tx).Create(ctx, &models.User{Name: "alice", PasswordHash: "h", Email: "a@x.com"})
		return err
	})
	require.NoError(t, err)

	u, err := m.Users(m.Conn()).GetUserByName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)

	require.NoError(t, m.RevokedTokens(nil).Create(ctx, "t", u.CreatedAt))
	ok, err := m.RevokedTokens(m.Conn()).Exists(ctx, "t")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, m.IssuedTokens(nil).Create(ctx, u.ID, "a"))
	_, err = m.Tasks(nil).Create(ctx, &models.Task{UserID: u.ID, Name: "x"})
	require.NoError(t, err)

	require.NoError(t, m.Close())
}

func TestInMemoryRepositoryManager_WithTxSerialises(t *testing.T) {
	m := NewInMemoryRepositoryManager()
	boom := errors.New("boom")

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.WithTx(context.Background(), func(context.Context, dbx.DBTX) error {
				mu.Lock()
				inside++
				if inside > maxSeen {
					maxSeen = inside
				}
				mu.Unlock()

				mu.Lock()
				inside--
				mu.Unlock()
				return boom
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.ErrorIs(t, m.WithTx(context.Background(), func(context.Context, dbx.DBTX) error { return boom }), boom)
}
