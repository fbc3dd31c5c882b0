package snoo

import (
	"fmt"
	"net/url"
	"strconv"
)

// CanonicalHost is the browsing host all resolved references route to.
// The old-style frontend serves fully rendered markup, so extraction
// never depends on client-side rendering.
const CanonicalHost = "old.reddit.com"

// ContentKind identifies what a reddit URL points at.
type ContentKind string

// Recognized content kinds. Exactly one per resolved URL.
const (
	KindFrontpage ContentKind = "frontpage"
	KindPopular   ContentKind = "popular"
	KindAll       ContentKind = "all"
	KindSubreddit ContentKind = "subreddit"
	KindUser      ContentKind = "user"
	KindPost      ContentKind = "post"
	KindComment   ContentKind = "comment"
)

// ContextInfo captures the single recognized contextual hint a URL can
// carry: a comment permalink's ?context=N parameter, asking for N
// ancestor comments above the linked comment.
type ContextInfo struct {
	Depth int `json:"depth"`
}

// ContentRef is the resolved, typed description of what a URL points
// at. It is constructed once by Resolve and never mutated afterward.
// The fields populated are exactly those meaningful for Kind: a
// KindComment ref always carries both PostID and CommentID, a KindUser
// ref carries only Username, and so on. Post and comment IDs are
// stored in normalized (lowercase) form.
type ContentRef struct {
	Kind        ContentKind `json:"kind"`
	OriginalURL string      `json:"originalUrl"`

	Subreddit string `json:"subreddit,omitempty"`
	Username  string `json:"username,omitempty"`
	PostID    string `json:"postId,omitempty"`
	CommentID string `json:"commentId,omitempty"`

	Context *ContextInfo `json:"context,omitempty"`
}

// HasPost reports whether the reference names a specific post.
func (r *ContentRef) HasPost() bool {
	return r.PostID != ""
}

// Validate returns an error if the populated fields do not match the
// required-field set for the reference's kind.
func (r *ContentRef) Validate() error {
	switch r.Kind {
	case KindFrontpage, KindPopular, KindAll:
		if r.Subreddit != "" || r.Username != "" || r.PostID != "" || r.CommentID != "" {
			return Errorf(EINVALID, "%s reference must not carry identifiers", r.Kind)
		}
	case KindSubreddit:
		if r.Subreddit == "" {
			return Errorf(EINVALID, "subreddit reference requires a subreddit name")
		}
		if r.PostID != "" || r.CommentID != "" || r.Username != "" {
			return Errorf(EINVALID, "subreddit reference must not carry post or user identifiers")
		}
	case KindUser:
		if r.Username == "" {
			return Errorf(EINVALID, "user reference requires a username")
		}
		if r.PostID != "" || r.CommentID != "" || r.Subreddit != "" {
			return Errorf(EINVALID, "user reference must not carry post or subreddit identifiers")
		}
	case KindPost:
		if r.PostID == "" {
			return Errorf(EINVALID, "post reference requires a post ID")
		}
		if r.CommentID != "" {
			return Errorf(EINVALID, "post reference must not carry a comment ID")
		}
	case KindComment:
		if r.PostID == "" || r.CommentID == "" {
			return Errorf(EINVALID, "comment reference requires both post and comment IDs")
		}
	default:
		return Errorf(EINVALID, "unknown content kind %q", r.Kind)
	}
	return nil
}

// CanonicalURL renders the reference as a URL on the canonical
// browsing host. It is routing metadata for the fetch layer only and
// carries no information beyond the reference's kind and identifiers.
func (r *ContentRef) CanonicalURL() string {
	base := &url.URL{Scheme: "https", Host: CanonicalHost, Path: "/"}

	switch r.Kind {
	case KindPopular:
		base.Path = "/r/popular/"
	case KindAll:
		base.Path = "/r/all/"
	case KindSubreddit:
		base.Path = fmt.Sprintf("/r/%s/", r.Subreddit)
	case KindUser:
		base.Path = fmt.Sprintf("/user/%s/", r.Username)
	case KindPost:
		base.Path = fmt.Sprintf("/comments/%s/", r.PostID)
	case KindComment:
		// The slug segment is ignored by the site; "_" is the
		// conventional stand-in when the title is unknown.
		base.Path = fmt.Sprintf("/comments/%s/_/%s/", r.PostID, r.CommentID)
		if r.Context != nil {
			base.RawQuery = url.Values{"context": {strconv.Itoa(r.Context.Depth)}}.Encode()
		}
	}

	return base.String()
}
