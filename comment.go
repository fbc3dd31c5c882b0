package snoo

import "time"

// Comment is a single comment as extracted, before thread
// reconstruction. It carries only its own ID and its immediate parent
// ID; BuildThread turns a flat sequence of these into a Thread.
type Comment struct {
	ID     string `json:"id"`
	PostID string `json:"postId"`

	// ParentID is empty for a top-level comment.
	ParentID string `json:"parentId,omitempty"`

	Author       string    `json:"author"`
	BodyHTML     string    `json:"bodyHtml"`
	BodyText     string    `json:"bodyText"`
	BodyMarkdown string    `json:"bodyMarkdown,omitempty"`
	Score        int       `json:"score"`
	CreatedAt    time.Time `json:"createdAt"`
	Permalink    string    `json:"permalink,omitempty"`

	// Depth is the nesting level the extractor observed in the
	// markup (0 = top-level). BuildThread treats it as a hint only;
	// the authoritative structure comes from ParentID links.
	Depth int `json:"depth"`

	// More marks a "load more replies" stub rather than real
	// content. Placeholder records become leaf nodes in the thread.
	More bool `json:"more,omitempty"`

	Deleted       bool   `json:"deleted,omitempty"`
	Removed       bool   `json:"removed,omitempty"`
	Submitter     bool   `json:"submitter,omitempty"`
	Stickied      bool   `json:"stickied,omitempty"`
	Distinguished string `json:"distinguished,omitempty"`
}

// CommentNode is a comment in tree form. Every node is owned by
// exactly one parent node or by the thread root; the structure is a
// strict forest with no back references.
type CommentNode struct {
	Comment  Comment        `json:"comment"`
	Children []*CommentNode `json:"children,omitempty"`

	// Truncated marks a node whose true parent is known to exist
	// but is absent from the available data (deleted, beyond a
	// pagination boundary, or part of malformed input).
	Truncated bool `json:"truncated,omitempty"`
}

// Thread is the reconstructed reply hierarchy of a post's comments.
// It is produced once by BuildThread and immutable thereafter.
type Thread struct {
	PostID string         `json:"postId"`
	Roots  []*CommentNode `json:"roots"`
}

// Len returns the total number of nodes in the thread, placeholders
// included.
func (t *Thread) Len() int {
	var count func(nodes []*CommentNode) int
	count = func(nodes []*CommentNode) int {
		n := len(nodes)
		for _, node := range nodes {
			n += count(node.Children)
		}
		return n
	}
	return count(t.Roots)
}

// Flatten returns the thread's comments in pre-order: each comment
// followed by its replies, siblings in their original order. Rebuilding
// a thread from its own flattening yields an isomorphic tree.
func (t *Thread) Flatten() []Comment {
	var flat []Comment
	var walk func(nodes []*CommentNode)
	walk = func(nodes []*CommentNode) {
		for _, node := range nodes {
			flat = append(flat, node.Comment)
			walk(node.Children)
		}
	}
	walk(t.Roots)
	return flat
}
