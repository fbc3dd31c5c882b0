package snoo

import (
	"regexp"
	"strings"
)

// Reddit identifiers are opaque base-36 tokens. Post IDs are shorter
// than comment IDs because posts predate comments in reddit's ID space.
var (
	postIDPattern    = regexp.MustCompile(`^[a-zA-Z0-9]{5,8}$`)
	commentIDPattern = regexp.MustCompile(`^[a-zA-Z0-9]{6,10}$`)
)

// NormalizeID canonicalizes a raw reddit identifier to its lowercase
// form. Identifiers differing only in case are the same identity, so
// all comparisons and lookups go through this function. Normalization
// is idempotent: NormalizeID(NormalizeID(x)) == NormalizeID(x).
func NormalizeID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", Errorf(EINVALID, "identifier required")
	}
	return strings.ToLower(id), nil
}

// IsPostID reports whether a path segment has the shape of a post ID.
func IsPostID(s string) bool {
	return postIDPattern.MatchString(s)
}

// IsCommentID reports whether a path segment has the shape of a comment ID.
func IsCommentID(s string) bool {
	return commentIDPattern.MatchString(s)
}
