// Package scrape wires the resolver, fetcher, extractor, and thread
// builder into a post-scraping pipeline.
package scrape

import (
	"context"
	"log/slog"
	"time"

	"github.com/snoolib/snoo"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel fetches in Posts.
const DefaultConcurrency = 4

// Result is the outcome of scraping a single post URL.
type Result struct {
	Ref    *snoo.ContentRef `json:"ref"`
	Post   *snoo.Post       `json:"post"`
	Thread *snoo.Thread     `json:"thread"`
}

// Scraper runs the full pipeline for post URLs: resolve, fetch the
// canonical page, extract the flat records, and rebuild the thread.
type Scraper struct {
	fetcher   snoo.Fetcher
	extractor snoo.Extractor
	logger    *slog.Logger
	delays    []time.Duration
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithLogger sets a logger for retry reporting. Discards by default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scraper) {
		s.logger = logger
	}
}

// WithRetryDelays overrides the backoff schedule used for fetch
// retries. An empty schedule disables retries.
func WithRetryDelays(delays []time.Duration) Option {
	return func(s *Scraper) {
		s.delays = delays
	}
}

// NewScraper creates a new Scraper.
func NewScraper(fetcher snoo.Fetcher, extractor snoo.Extractor, opts ...Option) *Scraper {
	s := &Scraper{
		fetcher:   fetcher,
		extractor: extractor,
		logger:    slog.New(slog.DiscardHandler),
		delays:    DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Post scrapes a single post (or comment permalink) URL. The resolved
// reference is routed to its canonical URL, the page fetched with
// retries, and the flat comment records rebuilt into a thread.
func (s *Scraper) Post(ctx context.Context, url string) (*Result, error) {
	ref, err := snoo.Resolve(url)
	if err != nil {
		return nil, err
	}
	if !ref.HasPost() {
		return nil, snoo.Errorf(snoo.EINVALID, "URL %q does not point to a post", url)
	}

	html, err := FetchWithRetryDelays(ctx, ref.CanonicalURL(), s.fetcher.Fetch, s.logger, s.delays)
	if err != nil {
		return nil, err
	}

	post, err := s.extractor.ExtractPost(html, ref)
	if err != nil {
		return nil, err
	}

	comments, err := s.extractor.ExtractComments(html, ref)
	if err != nil {
		return nil, err
	}

	thread, err := snoo.BuildThread(post.ID, comments)
	if err != nil {
		return nil, err
	}

	return &Result{Ref: ref, Post: post, Thread: thread}, nil
}

// Posts scrapes several post URLs concurrently, at most concurrency at
// a time. Results are returned in input order. The first error cancels
// the remaining work.
func (s *Scraper) Posts(ctx context.Context, urls []string, concurrency int) ([]*Result, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]*Result, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, url := range urls {
		g.Go(func() error {
			result, err := s.Post(ctx, url)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
