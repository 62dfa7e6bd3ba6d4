package issuedtokens

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_NeverDeduplicates(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	require.NoError(t, r.Create(ctx, "u1", "a"))
	require.NoError(t, r.Create(ctx, "u1", "a"))
	require.NoError(t, r.Create(ctx, "u2", "b"))

	n, err := r.CountByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = r.CountByUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, n)
}
