package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/snoolib/snoo"
)

// ExtractComments extracts the flat comment records from a post page
// in document display order: top-level threads in listing order,
// replies inline after their parent, pre-order. "Load more replies"
// stubs become placeholder records. Identifiers are returned raw.
func (e *Extractor) ExtractComments(html string, ref *snoo.ContentRef) ([]snoo.Comment, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, snoo.Errorf(snoo.EEXTRACT, "failed to parse HTML: %v", err)
	}

	area := doc.Find("div.commentarea").First()
	if area.Length() == 0 {
		return nil, snoo.Errorf(snoo.EEXTRACT, "could not find comment area in HTML")
	}

	postID := fullnameID(doc.Find("div.thing.link").First().AttrOr("data-fullname", ""))
	if postID == "" && ref != nil {
		postID = ref.PostID
	}

	var comments []snoo.Comment

	// Find walks descendants in document order, which for the nested
	// comment markup is exactly the pre-order the contract requires.
	area.Find("div.thing").Each(func(_ int, node *goquery.Selection) {
		if isMoreStub(node) {
			if stub, ok := e.moreStub(node, postID); ok {
				comments = append(comments, stub)
			}
			return
		}
		if !node.HasClass("comment") {
			return
		}
		if comment, ok := e.comment(node, postID); ok {
			comments = append(comments, comment)
		}
	})

	for i := range comments {
		if e.conv == nil || comments[i].BodyHTML == "" {
			continue
		}
		markdown, err := e.conv.Convert(comments[i].BodyHTML)
		if err != nil {
			return nil, err
		}
		comments[i].BodyMarkdown = strings.TrimSpace(markdown)
	}

	return comments, nil
}

// comment parses one div.thing.comment node into a flat record.
func (e *Extractor) comment(node *goquery.Selection, postID string) (snoo.Comment, bool) {
	id := fullnameID(node.AttrOr("data-fullname", ""))
	if id == "" {
		return snoo.Comment{}, false
	}

	entry := node.Find("div.entry").First()
	if entry.Length() == 0 {
		return snoo.Comment{}, false
	}

	class := node.AttrOr("class", "")

	comment := snoo.Comment{
		ID:        id,
		PostID:    postID,
		ParentID:  parentID(node, entry),
		Score:     scoreOf(entry.Find("span.score.unvoted").First()),
		CreatedAt: timestampOf(entry.Find("time.live-timestamp").First()),
		Permalink: entry.Find("a[data-event-action='permalink']").First().AttrOr("href", ""),
		Depth:     node.ParentsFiltered("div.thing.comment").Length(),
		Submitter: strings.Contains(class, "submitter"),
		Stickied:  strings.Contains(class, "stickied"),
		Deleted:   strings.Contains(class, "deleted"),
	}

	switch {
	case strings.Contains(class, "moderator"):
		comment.Distinguished = "moderator"
	case strings.Contains(class, "admin"):
		comment.Distinguished = "admin"
	}

	if body := entry.Find("div.usertext-body div.md").First(); body.Length() > 0 {
		if inner, err := body.Html(); err == nil {
			comment.BodyHTML = strings.TrimSpace(inner)
		}
		comment.BodyText = strings.TrimSpace(body.Text())
		switch comment.BodyText {
		case "[removed]":
			comment.Removed = true
		case "[deleted]":
			comment.Deleted = true
		}
	}

	comment.Author = extractAuthor(entry)
	if comment.Author == "" && comment.Deleted {
		comment.Author = "[deleted]"
	}

	return comment, true
}

// moreStub parses a morechildren node into a placeholder record. Stubs
// without any usable identifier are skipped; the builder requires a
// non-empty ID for every record.
func (e *Extractor) moreStub(node *goquery.Selection, postID string) (snoo.Comment, bool) {
	id := fullnameID(node.AttrOr("data-fullname", ""))
	if id == "" {
		id = fullnameID(strings.TrimPrefix(node.AttrOr("id", ""), "thing_"))
	}
	if id == "" {
		return snoo.Comment{}, false
	}

	return snoo.Comment{
		ID:       id,
		PostID:   postID,
		ParentID: enclosingCommentID(node),
		BodyText: collapseWhitespace(node.Find("span.morecomments").First().Text()),
		Depth:    node.ParentsFiltered("div.thing.comment").Length(),
		More:     true,
	}, true
}

// parentID determines a comment's parent. The entry's parent button
// links to the parent's fullname fragment; a t3 fragment (or none at
// all, for a comment with no enclosing comment) means top level.
func parentID(node, entry *goquery.Selection) string {
	if link := entry.Find("a[data-event-action='parent']").First(); link.Length() > 0 {
		href := link.AttrOr("href", "")
		if fragment, ok := strings.CutPrefix(href, "#"); ok {
			if strings.HasPrefix(fragment, "t3_") {
				return ""
			}
			if id := fullnameID(fragment); id != "" {
				return id
			}
		}
	}
	return enclosingCommentID(node)
}

// enclosingCommentID returns the ID of the nearest enclosing comment
// node, or "" at top level.
func enclosingCommentID(node *goquery.Selection) string {
	return fullnameID(node.ParentsFiltered("div.thing.comment").First().AttrOr("data-fullname", ""))
}

// isMoreStub reports whether a thing node is a "load more comments"
// stub rather than real content.
func isMoreStub(node *goquery.Selection) bool {
	return node.AttrOr("data-type", "") == "morechildren" || node.HasClass("morechildren")
}
