package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	late := time.Date(2026, 5, 2, 18, 0, 0, 0, time.UTC)
	early := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	a, err := r.Create(ctx, &models.Task{UserID: "u1", Name: "late", ScheduledAt: late, Priority: models.PriorityLow})
	require.NoError(t, err)
	b, err := r.Create(ctx, &models.Task{UserID: "u1", Name: "early", ScheduledAt: early, Priority: models.PriorityHigh})
	require.NoError(t, err)
	_, err = r.Create(ctx, &models.Task{UserID: "u2", Name: "other", ScheduledAt: early, Priority: models.PriorityMedium})
	require.NoError(t, err)

	list, err := r.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, a.ID, list[1].ID)

	require.NoError(t, r.Update(ctx, &models.Task{ID: a.ID, Name: "renamed", ScheduledAt: early.Add(-time.Hour), Priority: models.PriorityMedium}))
	require.NoError(t, r.SetCompleted(ctx, a.ID))

	got, err := r.Find(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
	assert.Equal(t, "u1", got.UserID)
	assert.True(t, got.Completed)

	list, err = r.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, a.ID, list[0].ID)

	require.NoError(t, r.Delete(ctx, b.ID))
	assert.ErrorIs(t, r.Delete(ctx, b.ID), common.ErrorNotFound)
	assert.ErrorIs(t, r.SetCompleted(ctx, b.ID), common.ErrorNotFound)
	assert.ErrorIs(t, r.Update(ctx, &models.Task{ID: b.ID}), common.ErrorNotFound)
	_, err = r.Find(ctx, b.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	n, err := r.DeleteByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	left, err := r.ListByOwner(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, left, 1)
}
