package cache

import (
	"context"
	"testing"
	"time"

	"career-portal-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	a := domain.JobSearchParams{Sites: []string{"linkedin", "indeed"}, SearchTerm: "Go Developer", Location: "Berlin"}
	b := domain.JobSearchParams{Sites: []string{"Indeed", "LinkedIn"}, SearchTerm: " go developer ", Location: "berlin"}
	c := domain.JobSearchParams{Sites: []string{"indeed"}, SearchTerm: "Go Developer", Location: "Berlin"}

	assert.Equal(t, Key(a), Key(b))
	assert.NotEqual(t, Key(a), Key(c))
}

func TestJobCache(t *testing.T) {
	ctx := context.Background()
	jobs := []domain.JobListing{{ID: "1", Title: "Go Dev"}}

	t.Run("Should return stored jobs until they expire", func(t *testing.T) {
		clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		c := NewJobCache(nil, time.Minute, 10)
		c.now = func() time.Time { return clock }

		c.Set(ctx, "k", jobs)
		got, ok := c.Get(ctx, "k")
		require.True(t, ok)
		assert.Equal(t, jobs, got)

		clock = clock.Add(2 * time.Minute)
		_, ok = c.Get(ctx, "k")
		assert.False(t, ok)
	})

	t.Run("Should evict the oldest entry when full", func(t *testing.T) {
		clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		c := NewJobCache(nil, time.Hour, 2)
		c.now = func() time.Time { return clock }

		c.Set(ctx, "first", jobs)
		clock = clock.Add(time.Second)
		c.Set(ctx, "second", jobs)
		clock = clock.Add(time.Second)
		c.Set(ctx, "third", jobs)

		_, ok := c.Get(ctx, "first")
		assert.False(t, ok)
		_, ok = c.Get(ctx, "second")
		assert.True(t, ok)
		_, ok = c.Get(ctx, "third")
		assert.True(t, ok)
	})

	t.Run("Should miss unknown keys", func(t *testing.T) {
		c := NewJobCache(nil, time.Minute, 0)
		_, ok := c.Get(ctx, "missing")
		assert.False(t, ok)
	})
}
