package main

import (
	"context"
	"io"

	"github.com/snoolib/snoo"
	"github.com/snoolib/snoo/scrape"
	"github.com/snoolib/snoo/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	DB      *sqlite.DB
	Posts   snoo.PostService
	Scraper *scrape.Scraper
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Resolve ResolveCmd `cmd:"" help:"Classify reddit URLs without fetching anything"`
	Scrape  ScrapeCmd  `cmd:"" help:"Scrape post pages and rebuild their comment threads"`
	Posts   PostsCmd   `cmd:"" help:"List archived posts"`
	Thread  ThreadCmd  `cmd:"" help:"Print the archived comment thread of a post"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a post and its captures from the archive"`
}

// ResolveCmd is the "resolve" subcommand.
type ResolveCmd struct {
	URLs []string `arg:"" help:"Reddit URLs to classify"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URLs        []string `arg:"" help:"Post URLs to scrape"`
	Out         string   `short:"o" help:"Write results as JSON to a file instead of stdout"`
	Save        bool     `short:"s" help:"Archive results in the database"`
	Browser     bool     `short:"b" help:"Fetch with a headless browser instead of plain HTTP"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent fetch limit"`
	RPS         float64  `name:"rps" default:"1" help:"Maximum requests per second"`
	Verbose     bool     `short:"v" help:"Log fetch and retry activity"`
}

// PostsCmd is the "posts" subcommand.
type PostsCmd struct {
	Subreddit string `short:"r" help:"Filter by subreddit"`
	Author    string `short:"a" help:"Filter by author"`
	Limit     int    `short:"n" default:"20" help:"Maximum number of posts to list"`
	Offset    int    `help:"Number of posts to skip"`
}

// ThreadCmd is the "thread" subcommand.
type ThreadCmd struct {
	PostID string `arg:"" help:"Post ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	PostID string `arg:"" help:"Post ID"`
}
