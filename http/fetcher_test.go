package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/snoolib/snoo"
	snoohttp "github.com/snoolib/snoo/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Hello</body></html>"))
		}))
		defer server.Close()

		fetcher := snoohttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello</body></html>", html)
	})

	t.Run("sends impersonation profile headers", func(t *testing.T) {
		t.Parallel()

		var gotUA, gotAccept string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			gotAccept = r.Header.Get("Accept-Language")
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		profile := snoo.Profile{
			Name:           "test",
			UserAgent:      "test-agent/1.0",
			AcceptLanguage: "pl-PL",
		}
		fetcher := snoohttp.NewFetcher(snoohttp.WithProfile(profile))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "test-agent/1.0", gotUA)
		assert.Equal(t, "pl-PL", gotAccept)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := snoohttp.NewFetcher(snoohttp.WithTimeout(10 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, snoo.EUNAVAILABLE, snoo.ErrorCode(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := snoohttp.NewFetcher()
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.Fetch(ctx, server.URL)
		require.Error(t, err)
	})

	t.Run("returns EUNAVAILABLE for non-2xx status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		fetcher := snoohttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, snoo.EUNAVAILABLE, snoo.ErrorCode(err))
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("returns EUNAVAILABLE for unreachable host", func(t *testing.T) {
		t.Parallel()

		fetcher := snoohttp.NewFetcher(snoohttp.WithTimeout(100 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), "http://non-existent-host.invalid/page")
		require.Error(t, err)
		assert.Equal(t, snoo.EUNAVAILABLE, snoo.ErrorCode(err))
	})

	t.Run("rate limit spaces out requests", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		// 20 rps: the second request must wait ~50ms for a token.
		fetcher := snoohttp.NewFetcher(snoohttp.WithRateLimit(20))
		defer fetcher.Close()

		start := time.Now()
		for i := 0; i < 2; i++ {
			_, err := fetcher.Fetch(context.Background(), server.URL)
			require.NoError(t, err)
		}

		assert.Equal(t, int32(2), hits.Load())
		assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
	})
}
