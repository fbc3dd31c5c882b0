package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/snoolib/snoo"
	"github.com/snoolib/snoo/goquery"
	"github.com/snoolib/snoo/htmltomarkdown"
	snoohttp "github.com/snoolib/snoo/http"
	"github.com/snoolib/snoo/rod"
	"github.com/snoolib/snoo/scrape"
	snooslog "github.com/snoolib/snoo/slog"
	"github.com/snoolib/snoo/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	PostService snoo.PostService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("snoo"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'snoo --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Resolve needs no services at all.
	if cmd == "resolve" {
		return kongCtx.Run(deps)
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SNOO_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.PostService = sqlite.NewPostService(m.DB)
	deps.DB = m.DB
	deps.Posts = m.PostService

	if cmd == "scrape" {
		var fetcher snoo.Fetcher
		if cli.Scrape.Browser {
			fetcher, err = rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
		} else {
			fetcher = snoohttp.NewFetcher(
				snoohttp.WithRateLimit(cli.Scrape.RPS),
				snoohttp.WithTimeout(30*time.Second),
			)
		}
		defer fetcher.Close()

		converter := htmltomarkdown.NewConverter()
		extractor := goquery.NewExtractor(goquery.WithConverter(converter))

		var opts []scrape.Option
		if cli.Scrape.Verbose {
			logger := slog.New(slog.NewTextHandler(stderr, nil))
			fetcher = snooslog.NewLoggingFetcher(fetcher, logger)
			opts = append(opts, scrape.WithLogger(logger))
		}

		deps.Scraper = scrape.NewScraper(fetcher, extractor, opts...)
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("SNOO_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "snoo.db"
	}
	dir := filepath.Join(home, ".snoo")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "snoo.db")
}
