package mock

import (
	"context"

	"github.com/snoolib/snoo"
)

var _ snoo.PostService = (*PostService)(nil)

// PostService is a mock implementation of snoo.PostService.
type PostService struct {
	CreatePostFn   func(ctx context.Context, post *snoo.Post, comments []snoo.Comment) error
	FindPostByIDFn func(ctx context.Context, postID string) (*snoo.Post, error)
	FindPostsFn    func(ctx context.Context, filter snoo.PostFilter) ([]*snoo.Post, error)
	FindThreadFn   func(ctx context.Context, postID string) (*snoo.Thread, error)
	DeletePostFn   func(ctx context.Context, postID string) error
}

func (s *PostService) CreatePost(ctx context.Context, post *snoo.Post, comments []snoo.Comment) error {
	return s.CreatePostFn(ctx, post, comments)
}

func (s *PostService) FindPostByID(ctx context.Context, postID string) (*snoo.Post, error) {
	return s.FindPostByIDFn(ctx, postID)
}

func (s *PostService) FindPosts(ctx context.Context, filter snoo.PostFilter) ([]*snoo.Post, error) {
	return s.FindPostsFn(ctx, filter)
}

func (s *PostService) FindThread(ctx context.Context, postID string) (*snoo.Thread, error) {
	return s.FindThreadFn(ctx, postID)
}

func (s *PostService) DeletePost(ctx context.Context, postID string) error {
	return s.DeletePostFn(ctx, postID)
}
