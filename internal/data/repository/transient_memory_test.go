package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestMemoryTransientRepository_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	repo := NewMemoryTransientRepository().WithClock(clock.Now)

	require.NoError(t, repo.Set(ctx, "key", "value", 5*time.Minute))

	clock.Advance(5*time.Minute - time.Second)
	value, found, err := repo.Get(ctx, "key")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "value", value)

	clock.Advance(time.Second)
	_, found, err = repo.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryTransientRepository_SetReplaces(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTransientRepository()

	require.NoError(t, repo.Set(ctx, "key", "first", time.Minute))
	require.NoError(t, repo.Set(ctx, "key", "second", time.Minute))

	value, found, err := repo.Get(ctx, "key")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "second", value)
}

func TestMemoryTransientRepository_DeleteByPrefix(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTransientRepository()

	require.NoError(t, repo.Set(ctx, "grf_google_reviews_data_a", "1", time.Minute))
	require.NoError(t, repo.Set(ctx, "grf_google_reviews_data_b", "2", time.Minute))
	require.NoError(t, repo.Set(ctx, "other", "3", time.Minute))

	count, err := repo.DeleteByPrefix(ctx, "grf_google_reviews_data_")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, found, _ := repo.Get(ctx, "grf_google_reviews_data_a")
	assert.False(t, found)
	_, found, _ = repo.Get(ctx, "other")
	assert.True(t, found)
}

func TestMemoryOptionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryOptionRepository()

	_, found, err := repo.Get(ctx, "grf_api_key")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Set(ctx, "grf_api_key", "abc"))
	value, found, err := repo.Get(ctx, "grf_api_key")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "abc", value)

	require.NoError(t, repo.Delete(ctx, "grf_api_key"))
	_, found, _ = repo.Get(ctx, "grf_api_key")
	assert.False(t, found)
}
