package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/snoolib/snoo"
)

// Compile-time interface verification.
var _ snoo.PostService = (*PostService)(nil)

// PostService implements snoo.PostService using SQLite. Every
// CreatePost call stores a new capture row, so a post scraped twice
// keeps both snapshots; reads always use the most recent capture.
type PostService struct {
	db *DB
}

// NewPostService creates a new PostService.
func NewPostService(db *DB) *PostService {
	return &PostService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// CreatePost archives a post and its flat comment records as a new
// capture. The comments keep their extraction order so FindThread can
// rebuild the same tree later.
func (s *PostService) CreatePost(ctx context.Context, post *snoo.Post, comments []snoo.Comment) error {
	if err := post.Validate(); err != nil {
		return err
	}

	postID, err := snoo.NormalizeID(post.ID)
	if err != nil {
		return err
	}
	post.ID = postID
	post.FetchedAt = time.Now().UTC()

	captureID := uuid.New().String()
	contentHash := hashContent(post.Title + post.BodyHTML)

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO captures (id, post_id, title, author, subreddit, score, url, permalink, domain, flair,
			nsfw, spoiler, body_html, body_markdown, created_at, num_comments, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, captureID, post.ID, post.Title, post.Author, post.Subreddit, post.Score, post.URL, post.Permalink,
		post.Domain, post.Flair, post.NSFW, post.Spoiler, post.BodyHTML, post.BodyMarkdown,
		post.CreatedAt.UTC().Format(time.RFC3339), post.NumComments, contentHash,
		post.FetchedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	for i, c := range comments {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO comments (id, capture_id, comment_id, parent_id, author, body_html, body_text,
				body_markdown, score, created_at, permalink, depth, more, deleted, removed, submitter,
				stickied, distinguished, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), captureID, c.ID, c.ParentID, c.Author, c.BodyHTML, c.BodyText,
			c.BodyMarkdown, c.Score, c.CreatedAt.UTC().Format(time.RFC3339), c.Permalink, c.Depth,
			c.More, c.Deleted, c.Removed, c.Submitter, c.Stickied, c.Distinguished, i)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindPostByID retrieves the most recent capture of a post.
func (s *PostService) FindPostByID(ctx context.Context, postID string) (*snoo.Post, error) {
	postID, err := snoo.NormalizeID(postID)
	if err != nil {
		return nil, err
	}

	post, _, err := s.findLatestCapture(ctx, postID)
	return post, err
}

// findLatestCapture returns the newest capture of a post along with
// its capture row ID.
func (s *PostService) findLatestCapture(ctx context.Context, postID string) (*snoo.Post, string, error) {
	var post snoo.Post
	var captureID, createdAt, fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, post_id, title, author, subreddit, score, url, permalink, domain, flair,
			nsfw, spoiler, body_html, body_markdown, created_at, num_comments, fetched_at
		FROM captures
		WHERE post_id = ?
		ORDER BY fetched_at DESC, rowid DESC
		LIMIT 1
	`, postID).Scan(&captureID, &post.ID, &post.Title, &post.Author, &post.Subreddit, &post.Score,
		&post.URL, &post.Permalink, &post.Domain, &post.Flair, &post.NSFW, &post.Spoiler,
		&post.BodyHTML, &post.BodyMarkdown, &createdAt, &post.NumComments, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, "", snoo.Errorf(snoo.ENOTFOUND, "post not found")
	}
	if err != nil {
		return nil, "", err
	}

	if post.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, "", err
	}
	if post.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, "", err
	}

	return &post, captureID, nil
}

// FindPosts retrieves archived captures matching the filter, most
// recently fetched first.
func (s *PostService) FindPosts(ctx context.Context, filter snoo.PostFilter) ([]*snoo.Post, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT post_id, title, author, subreddit, score, url, permalink, domain, flair,
		nsfw, spoiler, body_html, body_markdown, created_at, num_comments, fetched_at
		FROM captures WHERE 1=1`)

	if filter.ID != nil {
		id, err := snoo.NormalizeID(*filter.ID)
		if err != nil {
			return nil, err
		}
		query.WriteString(" AND post_id = ?")
		args = append(args, id)
	}
	if filter.Subreddit != nil {
		query.WriteString(" AND subreddit = ? COLLATE NOCASE")
		args = append(args, *filter.Subreddit)
	}
	if filter.Author != nil {
		query.WriteString(" AND author = ? COLLATE NOCASE")
		args = append(args, *filter.Author)
	}

	query.WriteString(" ORDER BY fetched_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*snoo.Post
	for rows.Next() {
		var post snoo.Post
		var createdAt, fetchedAt string

		if err := rows.Scan(&post.ID, &post.Title, &post.Author, &post.Subreddit, &post.Score,
			&post.URL, &post.Permalink, &post.Domain, &post.Flair, &post.NSFW, &post.Spoiler,
			&post.BodyHTML, &post.BodyMarkdown, &createdAt, &post.NumComments, &fetchedAt); err != nil {
			return nil, err
		}

		if post.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if post.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
			return nil, err
		}

		posts = append(posts, &post)
	}

	return posts, rows.Err()
}

// FindThread rebuilds the comment thread of the most recent capture of
// a post.
func (s *PostService) FindThread(ctx context.Context, postID string) (*snoo.Thread, error) {
	postID, err := snoo.NormalizeID(postID)
	if err != nil {
		return nil, err
	}

	_, captureID, err := s.findLatestCapture(ctx, postID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT comment_id, parent_id, author, body_html, body_text, body_markdown, score,
			created_at, permalink, depth, more, deleted, removed, submitter, stickied, distinguished
		FROM comments
		WHERE capture_id = ?
		ORDER BY position ASC
	`, captureID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []snoo.Comment
	for rows.Next() {
		var c snoo.Comment
		var createdAt string

		if err := rows.Scan(&c.ID, &c.ParentID, &c.Author, &c.BodyHTML, &c.BodyText,
			&c.BodyMarkdown, &c.Score, &createdAt, &c.Permalink, &c.Depth, &c.More,
			&c.Deleted, &c.Removed, &c.Submitter, &c.Stickied, &c.Distinguished); err != nil {
			return nil, err
		}

		if c.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		c.PostID = postID
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return snoo.BuildThread(postID, comments)
}

// DeletePost removes all captures of a post. Comments are removed by
// the cascading foreign key.
func (s *PostService) DeletePost(ctx context.Context, postID string) error {
	postID, err := snoo.NormalizeID(postID)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM captures WHERE post_id = ?", postID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return snoo.Errorf(snoo.ENOTFOUND, "post not found")
	}

	return nil
}
