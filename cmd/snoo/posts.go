package main

import (
	"fmt"

	"github.com/snoolib/snoo"
)

// Run executes the posts command.
func (c *PostsCmd) Run(deps *Dependencies) error {
	filter := snoo.PostFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Subreddit != "" {
		filter.Subreddit = &c.Subreddit
	}
	if c.Author != "" {
		filter.Author = &c.Author
	}

	posts, err := deps.Posts.FindPosts(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", snoo.ErrorMessage(err))
		return err
	}

	if len(posts) == 0 {
		fmt.Fprintln(deps.Stdout, "No posts found. Use 'snoo scrape --save' to archive one.")
		return nil
	}

	for _, p := range posts {
		fmt.Fprintf(deps.Stdout, "%s  r/%s  %d points  %s  %s\n",
			p.ID, p.Subreddit, p.Score, p.FetchedAt.Format("2006-01-02 15:04"), p.Title)
	}

	return nil
}
