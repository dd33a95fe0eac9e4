package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SairamThankari/url-shortener/internal/storage"
)

func TestStore_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		store := New()

		url, err := store.Create(ctx, "abc123", "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, "abc123", url.ShortCode)
		assert.Equal(t, "https://example.com", url.OriginalURL)
		assert.Zero(t, url.Clicks)
		assert.False(t, url.CreatedAt.IsZero())
	})

	t.Run("duplicate short code", func(t *testing.T) {
		store := New()

		_, err := store.Create(ctx, "abc123", "https://example.com")
		require.NoError(t, err)

		url, err := store.Create(ctx, "abc123", "https://example.org")

		assert.ErrorIs(t, err, storage.ErrShortCodeExists)
		assert.Nil(t, url)
	})

	t.Run("caller gets a copy", func(t *testing.T) {
		store := New()

		url, err := store.Create(ctx, "abc123", "https://example.com")
		require.NoError(t, err)

		url.OriginalURL = "https://tampered.example.com"
		url.Clicks = 42

		got, err := store.GetByShortCode(ctx, "abc123")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", got.OriginalURL)
		assert.Zero(t, got.Clicks)
	})
}

func TestStore_GetByShortCode(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		store := New()

		url, err := store.GetByShortCode(ctx, "missing")

		assert.ErrorIs(t, err, storage.ErrURLNotFound)
		assert.Nil(t, url)
	})

	t.Run("success", func(t *testing.T) {
		store := New()

		created, err := store.Create(ctx, "abc123", "https://example.com")
		require.NoError(t, err)

		got, err := store.GetByShortCode(ctx, "abc123")

		require.NoError(t, err)
		assert.Equal(t, created.OriginalURL, got.OriginalURL)
		assert.Equal(t, created.CreatedAt, got.CreatedAt)
	})
}

func TestStore_IncrementClicks(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown code is a no-op", func(t *testing.T) {
		store := New()

		assert.False(t, store.IncrementClicks(ctx, "missing"))
	})

	t.Run("increments by one", func(t *testing.T) {
		store := New()

		_, err := store.Create(ctx, "abc123", "https://example.com")
		require.NoError(t, err)

		assert.True(t, store.IncrementClicks(ctx, "abc123"))
		assert.True(t, store.IncrementClicks(ctx, "abc123"))

		url, err := store.GetStats(ctx, "abc123")
		require.NoError(t, err)
		assert.EqualValues(t, 2, url.Clicks)
	})
}

func TestStore_Exists(t *testing.T) {
	ctx := context.Background()
	store := New()

	assert.False(t, store.Exists(ctx, "abc123"))

	_, err := store.Create(ctx, "abc123", "https://example.com")
	require.NoError(t, err)

	assert.True(t, store.Exists(ctx, "abc123"))
}

func TestStore_GetStats(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		store := New()

		url, err := store.GetStats(ctx, "missing")

		assert.ErrorIs(t, err, storage.ErrURLNotFound)
		assert.Nil(t, url)
	})

	t.Run("reads are idempotent", func(t *testing.T) {
		store := New()

		_, err := store.Create(ctx, "abc123", "https://example.com")
		require.NoError(t, err)

		require.True(t, store.IncrementClicks(ctx, "abc123"))

		for i := 0; i < 3; i++ {
			url, err := store.GetStats(ctx, "abc123")
			require.NoError(t, err)
			assert.EqualValues(t, 1, url.Clicks)
		}
	})
}

func TestStore_ConcurrentIncrements(t *testing.T) {
	const n = 10

	ctx := context.Background()
	store := New()

	_, err := store.Create(ctx, "abc123", "https://example.com")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.IncrementClicks(ctx, "abc123")
		}()
	}
	wg.Wait()

	url, err := store.GetStats(ctx, "abc123")
	require.NoError(t, err)
	assert.EqualValues(t, n, url.Clicks, "no increment may be lost")
}

func TestStore_ConcurrentCreatesSameCode(t *testing.T) {
	const n = 10

	ctx := context.Background()
	store := New()

	errs := make(chan error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Create(ctx, "abc123", "https://example.com")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, duplicates int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, storage.ErrShortCodeExists)
			duplicates++
		}
	}

	assert.Equal(t, 1, succeeded, "exactly one concurrent create may win")
	assert.Equal(t, n-1, duplicates)
	assert.Equal(t, 1, store.Len())
}
