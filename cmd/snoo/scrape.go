package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/snoolib/snoo"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	results, err := deps.Scraper.Posts(deps.Ctx, c.URLs, c.Concurrency)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", snoo.ErrorMessage(err))
		return err
	}

	if c.Save {
		for _, result := range results {
			if err := deps.Posts.CreatePost(deps.Ctx, result.Post, result.Thread.Flatten()); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", snoo.ErrorMessage(err))
				return err
			}
		}
	}

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')

	if c.Out != "" {
		if err := os.WriteFile(c.Out, out, 0644); err != nil {
			return fmt.Errorf("failed to write %q: %w", c.Out, err)
		}
		fmt.Fprintf(deps.Stdout, "Wrote %d posts to %s\n", len(results), c.Out)
		return nil
	}

	_, err = deps.Stdout.Write(out)
	return err
}
