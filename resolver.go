package snoo

import (
	"net/url"
	"strconv"
	"strings"
)

// Shortlink hosts redirect straight to a post.
var shortlinkHosts = map[string]bool{
	"redd.it":     true,
	"www.redd.it": true,
}

// matcher recognizes one URL shape. It returns (nil, nil) when the
// shape does not apply, a reference on a match, or an error when the
// shape applies but a required segment is missing or malformed.
type matcher func(host string, segments []string, query url.Values, rawURL string) (*ContentRef, error)

// Resolve classifies a raw reddit URL into a typed content reference.
// Matchers are tried in a fixed priority order, most specific first,
// and the first match wins. All captured post and comment IDs are
// normalized before being stored. Query string and fragment are
// ignored for classification, except the context hint on comment
// permalinks. Returns EUNRECOGNIZED when the URL matches no known
// pattern.
func Resolve(rawURL string) (*ContentRef, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, Errorf(EUNRECOGNIZED, "a non-empty reddit URL is required")
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, Errorf(EUNRECOGNIZED, "unparseable URL %q", rawURL)
	}

	host := normalizeHost(parsed.Host)
	if !isRedditHost(host) {
		return nil, Errorf(EUNRECOGNIZED, "URL %q does not belong to reddit", rawURL)
	}

	segments := splitPath(parsed.Path)

	matchers := []matcher{
		matchShortlink,
		matchFrontpage,
		matchSubredditPath,
		matchUserPath,
	}

	for _, match := range matchers {
		ref, err := match(host, segments, parsed.Query(), trimmed)
		if err != nil {
			return nil, err
		}
		if ref != nil {
			if err := ref.Validate(); err != nil {
				return nil, err
			}
			return ref, nil
		}
	}

	return nil, Errorf(EUNRECOGNIZED, "URL %q does not match a supported reddit pattern", rawURL)
}

// matchShortlink recognizes https://redd.it/<post_id> links.
func matchShortlink(host string, segments []string, _ url.Values, rawURL string) (*ContentRef, error) {
	if !shortlinkHosts[host] {
		return nil, nil
	}

	var slug string
	if len(segments) > 0 {
		slug = segments[0]
	}
	if !IsPostID(slug) {
		return nil, Errorf(EUNRECOGNIZED, "shortlink %q is missing a valid post ID", rawURL)
	}

	postID, err := NormalizeID(slug)
	if err != nil {
		return nil, err
	}

	return &ContentRef{Kind: KindPost, OriginalURL: rawURL, PostID: postID}, nil
}

// matchFrontpage recognizes the bare site root.
func matchFrontpage(_ string, segments []string, _ url.Values, rawURL string) (*ContentRef, error) {
	if len(segments) > 0 {
		return nil, nil
	}
	return &ContentRef{Kind: KindFrontpage, OriginalURL: rawURL}, nil
}

// matchSubredditPath recognizes /r/<name>/... shapes: subreddit
// listings, the popular and all aggregate listings, posts, and comment
// permalinks within posts.
func matchSubredditPath(_ string, segments []string, query url.Values, rawURL string) (*ContentRef, error) {
	if len(segments) < 2 || segments[0] != "r" {
		return nil, nil
	}

	subreddit := segments[1]

	switch strings.ToLower(subreddit) {
	case "popular":
		return &ContentRef{Kind: KindPopular, OriginalURL: rawURL}, nil
	case "all":
		return &ContentRef{Kind: KindAll, OriginalURL: rawURL}, nil
	}

	if len(segments) >= 4 && segments[2] == "comments" {
		if !IsPostID(segments[3]) {
			return nil, Errorf(EUNRECOGNIZED, "URL %q contains an invalid post ID", rawURL)
		}
		postID, err := NormalizeID(segments[3])
		if err != nil {
			return nil, err
		}

		// Path shape: /r/<sub>/comments/<post>/<slug>/<comment>
		var commentID string
		if len(segments) >= 6 && IsCommentID(segments[5]) {
			commentID, err = NormalizeID(segments[5])
			if err != nil {
				return nil, err
			}
		}

		if commentID != "" {
			return &ContentRef{
				Kind:        KindComment,
				OriginalURL: rawURL,
				Subreddit:   subreddit,
				PostID:      postID,
				CommentID:   commentID,
				Context:     contextHint(query),
			}, nil
		}

		return &ContentRef{
			Kind:        KindPost,
			OriginalURL: rawURL,
			Subreddit:   subreddit,
			PostID:      postID,
		}, nil
	}

	return &ContentRef{Kind: KindSubreddit, OriginalURL: rawURL, Subreddit: subreddit}, nil
}

// matchUserPath recognizes /user/<name> and /u/<name> profile shapes.
func matchUserPath(_ string, segments []string, _ url.Values, rawURL string) (*ContentRef, error) {
	if len(segments) < 2 || (segments[0] != "user" && segments[0] != "u") {
		return nil, nil
	}
	return &ContentRef{Kind: KindUser, OriginalURL: rawURL, Username: segments[1]}, nil
}

// contextHint extracts the ?context=N parameter from a comment
// permalink. Non-numeric or non-positive values are ignored.
func contextHint(query url.Values) *ContextInfo {
	raw := query.Get("context")
	if raw == "" {
		return nil
	}
	depth, err := strconv.Atoi(raw)
	if err != nil || depth <= 0 {
		return nil
	}
	return &ContextInfo{Depth: depth}
}

// normalizeHost lowercases a host and strips any port.
func normalizeHost(host string) string {
	host = strings.ToLower(host)
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	return host
}

// isRedditHost accepts the canonical host, any reddit mirror
// subdomain, and the shortlink hosts.
func isRedditHost(host string) bool {
	if shortlinkHosts[host] {
		return true
	}
	return host == "reddit.com" || strings.HasSuffix(host, ".reddit.com")
}

// splitPath breaks a URL path into its non-empty segments.
func splitPath(path string) []string {
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}
