// Package http provides an HTTP-based implementation of snoo.Fetcher.
// The old-style frontend serves complete markup over plain HTTP, so a
// browser-impersonating client is usually all that is needed.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/snoolib/snoo"
	"golang.org/x/time/rate"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements snoo.Fetcher at compile time.
var _ snoo.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves markup from URLs using HTTP requests with
// browser-impersonation headers. An optional token-bucket limiter
// throttles request frequency so repeated scrapes do not trip the
// site's abuse detection.
type Fetcher struct {
	client  *http.Client
	profile snoo.Profile
	limiter *rate.Limiter
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithProfile sets the impersonation profile applied to every request.
// Defaults to snoo.DefaultProfile.
func WithProfile(profile snoo.Profile) Option {
	return func(f *Fetcher) {
		f.profile = profile
	}
}

// WithRateLimit throttles requests to at most rps per second with a
// burst of 1. No throttling is applied if unset.
func WithRateLimit(rps float64) Option {
	return func(f *Fetcher) {
		f.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		profile: snoo.DefaultProfile(),
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the markup of the page at url. All failures carry
// code EUNAVAILABLE so callers can tell fetch problems apart from
// resolution and extraction problems.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", snoo.Errorf(snoo.EUNAVAILABLE, "invalid fetch URL %q: %v", url, err)
	}

	req.Header.Set("User-Agent", f.profile.UserAgent)
	if f.profile.Accept != "" {
		req.Header.Set("Accept", f.profile.Accept)
	}
	if f.profile.AcceptLanguage != "" {
		req.Header.Set("Accept-Language", f.profile.AcceptLanguage)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", snoo.Errorf(snoo.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", snoo.Errorf(snoo.EUNAVAILABLE, "fetch %s: HTTP %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", snoo.Errorf(snoo.EUNAVAILABLE, "fetch %s: reading body: %v", url, err)
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
