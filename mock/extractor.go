package mock

import "github.com/snoolib/snoo"

var _ snoo.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of snoo.Extractor.
type Extractor struct {
	ExtractPostFn     func(html string, ref *snoo.ContentRef) (*snoo.Post, error)
	ExtractCommentsFn func(html string, ref *snoo.ContentRef) ([]snoo.Comment, error)
}

func (e *Extractor) ExtractPost(html string, ref *snoo.ContentRef) (*snoo.Post, error) {
	return e.ExtractPostFn(html, ref)
}

func (e *Extractor) ExtractComments(html string, ref *snoo.ContentRef) ([]snoo.Comment, error) {
	return e.ExtractCommentsFn(html, ref)
}
