package scrape_test

import (
	"context"
	"testing"
	"time"

	"github.com/snoolib/snoo"
	"github.com/snoolib/snoo/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	t.Run("succeeds on first attempt", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "<html></html>", nil
		}

		html, err := scrape.FetchWithRetryDelays(context.Background(), "https://old.reddit.com/", fetch, nil, scrape.DefaultRetryDelays())

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries only unavailable errors", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "", snoo.Errorf(snoo.EINVALID, "bad request")
		}

		_, err := scrape.FetchWithRetryDelays(context.Background(), "https://old.reddit.com/", fetch, nil, scrape.DefaultRetryDelays())

		require.Error(t, err)
		assert.Equal(t, snoo.EINVALID, snoo.ErrorCode(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("returns the last error after all retries", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "", snoo.Errorf(snoo.EUNAVAILABLE, "attempt %d failed", calls)
		}
		delays := []time.Duration{time.Millisecond, time.Millisecond}

		_, err := scrape.FetchWithRetryDelays(context.Background(), "https://old.reddit.com/", fetch, nil, delays)

		require.Error(t, err)
		assert.Equal(t, 3, calls)
		assert.Equal(t, "attempt 3 failed", snoo.ErrorMessage(err))
	})

	t.Run("empty schedule disables retries", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "", snoo.Errorf(snoo.EUNAVAILABLE, "down")
		}

		_, err := scrape.FetchWithRetryDelays(context.Background(), "https://old.reddit.com/", fetch, nil, nil)

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("respects context cancellation between attempts", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetch := func(ctx context.Context, url string) (string, error) {
			cancel()
			return "", snoo.Errorf(snoo.EUNAVAILABLE, "down")
		}
		delays := []time.Duration{time.Minute}

		_, err := scrape.FetchWithRetryDelays(ctx, "https://old.reddit.com/", fetch, nil, delays)

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
