package snoo

// BuildThread reconstructs the threaded reply hierarchy of a post from
// a flat sequence of comment records. It is a pure function: no I/O and
// no mutation of its inputs.
//
// Every record becomes exactly one node, placeholders included, so the
// resulting thread always contains len(flat) nodes. Children of a given
// parent preserve the relative order they appeared in flat. Structural
// problems in the input are repaired rather than reported: a comment
// whose parent is absent from the record set becomes a root marked
// Truncated, and a comment whose parent chain loops back onto itself is
// detached and attached as a Truncated root. A comment whose parent is
// an unexpanded "load more" placeholder attaches as a child of the
// placeholder.
//
// All comment and parent IDs are normalized defensively; extraction is
// not assumed to have pre-normalized them. Returns EINVALID only for
// records that are malformed at the type level (an empty comment ID).
func BuildThread(postID string, flat []Comment) (*Thread, error) {
	normalizedPostID, err := NormalizeID(postID)
	if err != nil {
		return nil, Errorf(EINVALID, "thread post ID required")
	}

	records := make([]Comment, len(flat))
	for i, c := range flat {
		record := c
		record.ID, err = NormalizeID(c.ID)
		if err != nil {
			return nil, Errorf(EINVALID, "comment at position %d has an empty ID", i)
		}
		if c.ParentID != "" {
			record.ParentID, err = NormalizeID(c.ParentID)
			if err != nil {
				return nil, err
			}
		}
		if record.PostID == "" {
			record.PostID = normalizedPostID
		} else {
			record.PostID, err = NormalizeID(record.PostID)
			if err != nil {
				return nil, err
			}
		}
		records[i] = record
	}

	// First occurrence wins for duplicate IDs; later duplicates still
	// become their own nodes but are never lookup targets.
	nodes := make([]*CommentNode, len(records))
	byID := make(map[string]*CommentNode, len(records))
	for i, record := range records {
		nodes[i] = &CommentNode{Comment: record}
		if _, ok := byID[record.ID]; !ok {
			byID[record.ID] = nodes[i]
		}
	}

	// Break parent cycles before attaching. A comment whose parent
	// chain revisits its own ID is detached and will root as
	// truncated below.
	for i := range records {
		if records[i].ParentID == "" {
			continue
		}
		seen := map[string]bool{records[i].ID: true}
		current := records[i].ParentID
		for current != "" {
			if current == records[i].ID {
				records[i].ParentID = ""
				nodes[i].Comment.ParentID = ""
				nodes[i].Truncated = true
				break
			}
			if seen[current] {
				break
			}
			seen[current] = true
			parent, ok := byID[current]
			if !ok {
				break
			}
			current = parent.Comment.ParentID
		}
	}

	thread := &Thread{PostID: normalizedPostID}
	for i, record := range records {
		node := nodes[i]

		if record.ParentID == "" {
			thread.Roots = append(thread.Roots, node)
			continue
		}

		parent, ok := byID[record.ParentID]
		if !ok || parent == node {
			// Parent omitted from the record set: deleted, or
			// beyond a pagination boundary. Keep the comment
			// rather than dropping it.
			node.Truncated = true
			thread.Roots = append(thread.Roots, node)
			continue
		}

		parent.Children = append(parent.Children, node)
	}

	return thread, nil
}
