package slog

import (
	"log/slog"
	"time"

	"github.com/snoolib/snoo"
)

// Ensure LoggingExtractor implements snoo.Extractor.
var _ snoo.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   snoo.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next snoo.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractPost delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) ExtractPost(html string, ref *snoo.ContentRef) (post *snoo.Post, err error) {
	defer func(begin time.Time) {
		var postID string
		if post != nil {
			postID = post.ID
		}
		e.logger.Info("extract post",
			"post_id", postID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractPost(html, ref)
}

// ExtractComments delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) ExtractComments(html string, ref *snoo.ContentRef) (comments []snoo.Comment, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract comments",
			"count", len(comments),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractComments(html, ref)
}
