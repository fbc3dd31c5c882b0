// Package goquery provides a snoo.Extractor for old.reddit.com markup.
// The old-style frontend annotates post and comment elements with data
// attributes, so extraction is structural rather than heuristic.
package goquery

import (
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/snoolib/snoo"
)

// Ensure Extractor implements snoo.Extractor at compile time.
var _ snoo.Extractor = (*Extractor)(nil)

// Extractor extracts post and comment records from old.reddit.com
// post pages.
type Extractor struct {
	conv snoo.Converter
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConverter sets a Converter used to populate the Markdown body of
// extracted posts and comments. Without it only the HTML and plain
// text bodies are filled in.
func WithConverter(conv snoo.Converter) Option {
	return func(e *Extractor) {
		e.conv = conv
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractPost extracts the post record from a post page. Identifiers
// are returned raw, exactly as present in the markup.
func (e *Extractor) ExtractPost(html string, ref *snoo.ContentRef) (*snoo.Post, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, snoo.Errorf(snoo.EEXTRACT, "failed to parse HTML: %v", err)
	}

	node := doc.Find("div.thing.link").First()
	if node.Length() == 0 {
		return nil, snoo.Errorf(snoo.EEXTRACT, "could not find post element in HTML")
	}

	postID := fullnameID(node.AttrOr("data-fullname", ""))
	if postID == "" {
		return nil, snoo.Errorf(snoo.EEXTRACT, "post element is missing its identifier")
	}

	post := &snoo.Post{
		ID:          postID,
		Title:       collapseWhitespace(node.Find("a.title").First().Text()),
		Author:      extractAuthor(node),
		Subreddit:   node.AttrOr("data-subreddit", ""),
		Score:       scoreOf(node.Find("div.score.unvoted").First()),
		URL:         node.AttrOr("data-url", ""),
		Permalink:   node.AttrOr("data-permalink", ""),
		Domain:      node.AttrOr("data-domain", ""),
		NSFW:        node.AttrOr("data-nsfw", "") == "true",
		Spoiler:     node.AttrOr("data-spoiler", "") == "true",
		Flair:       strings.TrimSpace(node.Find("span.linkflairlabel").First().Text()),
		CreatedAt:   timestampOf(node.Find("time.live-timestamp").First()),
		NumComments: intAttr(node, "data-comments-count"),
	}

	if body := node.Find("div.expando div.usertext-body div.md").First(); body.Length() > 0 {
		if inner, err := body.Html(); err == nil {
			post.BodyHTML = strings.TrimSpace(inner)
		}
	}

	if e.conv != nil && post.BodyHTML != "" {
		markdown, err := e.conv.Convert(post.BodyHTML)
		if err != nil {
			return nil, err
		}
		post.BodyMarkdown = strings.TrimSpace(markdown)
	}

	return post, nil
}

// extractAuthor pulls the author name from a post or comment node.
// Deleted accounts render as a bare "[deleted]" tagline without an
// author anchor.
func extractAuthor(node *goquery.Selection) string {
	if author := node.Find("a.author").First(); author.Length() > 0 {
		return strings.TrimSpace(author.Text())
	}
	if tagline := node.Find("p.tagline").First(); tagline.Length() > 0 {
		if strings.Contains(tagline.Text(), "[deleted]") {
			return "[deleted]"
		}
	}
	return ""
}

// scoreOf reads the numeric score from a score element's title
// attribute, where the frontend stores the unabbreviated value.
func scoreOf(sel *goquery.Selection) int {
	if sel.Length() == 0 {
		return 0
	}
	n, err := strconv.Atoi(sel.AttrOr("title", ""))
	if err != nil {
		return 0
	}
	return n
}

// timestampOf parses the datetime attribute of a <time> element.
func timestampOf(sel *goquery.Selection) time.Time {
	if sel.Length() == 0 {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, sel.AttrOr("datetime", ""))
	if err != nil {
		return time.Time{}
	}
	return t
}

func intAttr(sel *goquery.Selection, name string) int {
	n, err := strconv.Atoi(sel.AttrOr(name, ""))
	if err != nil {
		return 0
	}
	return n
}

// fullnameID strips the type prefix from a reddit fullname
// ("t3_abc123" -> "abc123"). Returns "" for inputs without a prefix.
func fullnameID(fullname string) string {
	_, id, ok := strings.Cut(fullname, "_")
	if !ok {
		return ""
	}
	return id
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
