package snoo

import "context"

// Fetcher retrieves raw markup from URLs. Implementations own retry,
// timeout, and bot-detection concerns; failures surface with code
// EUNAVAILABLE and are never conflated with resolution or extraction
// errors.
type Fetcher interface {
	// Fetch retrieves the markup of the page at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// Profile is an explicit browser-impersonation configuration passed
// into fetcher constructors. It is a plain value, never process-wide
// ambient state, so independent pipelines can fetch with independent
// identities.
type Profile struct {
	Name           string
	UserAgent      string
	Accept         string
	AcceptLanguage string
}

// DefaultProfile returns a desktop Chrome impersonation profile. The
// old-style frontend serves complete markup to anything that looks
// like a regular browser.
func DefaultProfile() Profile {
	return Profile{
		Name:           "chrome-desktop",
		UserAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
		Accept:         "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		AcceptLanguage: "en-US,en;q=0.9",
	}
}
