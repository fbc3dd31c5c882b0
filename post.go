package snoo

import (
	"context"
	"time"
)

// Post represents the metadata and body of a scraped reddit post.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Subreddit string    `json:"subreddit"`
	Score     int       `json:"score"`
	URL       string    `json:"url"`
	Permalink string    `json:"permalink"`
	Domain    string    `json:"domain"`
	Flair     string    `json:"flair"`
	NSFW      bool      `json:"nsfw"`
	Spoiler   bool      `json:"spoiler"`

	// BodyHTML is the self-text body as rendered markup; empty for
	// link posts. BodyMarkdown is its converted form when a
	// Converter was applied.
	BodyHTML     string `json:"bodyHtml"`
	BodyMarkdown string `json:"bodyMarkdown"`

	CreatedAt   time.Time `json:"createdAt"`
	NumComments int       `json:"numComments"`

	// FetchedAt is set by storage when the post is archived.
	FetchedAt time.Time `json:"fetchedAt"`
}

// Validate returns an error if the post contains invalid fields.
func (p *Post) Validate() error {
	if p.ID == "" {
		return Errorf(EINVALID, "post ID required")
	}
	return nil
}

// PostFilter represents a filter for FindPosts.
type PostFilter struct {
	ID        *string `json:"id"`
	Subreddit *string `json:"subreddit"`
	Author    *string `json:"author"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// PostService represents an archive of scraped posts and their
// comments. Each CreatePost call records a new capture; the same post
// scraped again later is stored as a fresh capture so score and
// comment changes over time are preserved.
type PostService interface {
	// CreatePost archives a post together with its flat comment
	// records in extraction order.
	CreatePost(ctx context.Context, post *Post, comments []Comment) error

	// FindPostByID retrieves the most recent capture of a post.
	// Returns ENOTFOUND if the post has never been archived.
	FindPostByID(ctx context.Context, postID string) (*Post, error)

	// FindPosts retrieves archived posts matching the filter, most
	// recently fetched first.
	FindPosts(ctx context.Context, filter PostFilter) ([]*Post, error)

	// FindThread rebuilds the comment thread of the most recent
	// capture of a post. Returns ENOTFOUND if the post has never
	// been archived.
	FindThread(ctx context.Context, postID string) (*Thread, error)

	// DeletePost removes all captures of a post and their comments.
	// Returns ENOTFOUND if the post has never been archived.
	DeletePost(ctx context.Context, postID string) error
}
