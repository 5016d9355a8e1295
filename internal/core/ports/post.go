package ports

import (
	"context"

	"github.com/rahulserver/task-management-backend/internal/core/domain"
)

type PostRepository interface {
	InsertPost(ctx context.Context, post domain.Post) error
	// GetPost returns domain.ErrPostNotFound when no post has postID. Inside
	// WithinTx the row is locked until commit.
	GetPost(ctx context.Context, postID string) (domain.Post, error)
	GetOwnedPost(ctx context.Context, ownerID, postID string) (domain.Post, error)
	ListPublicPosts(ctx context.Context, query domain.PageQuery) ([]domain.Post, error)
	// UpdatePost stores every mutable field of post, likes and comments included.
	UpdatePost(ctx context.Context, post domain.Post) error
	DeletePost(ctx context.Context, ownerID, postID string) (deleted bool, err error)
	WithinTx(ctx context.Context, fn func(repo PostRepository) error) error
}

// MediaStore keeps post images outside the database.
type MediaStore interface {
	Upload(ctx context.Context, payload, key string) (domain.Image, error)
	Delete(ctx context.Context, publicID string) error
}

type PostService interface {
	CreatePost(ctx context.Context, ownerID string, input domain.CreatePostInput) (domain.Post, error)
	UpdatePost(ctx context.Context, ownerID, postID string, input domain.UpdatePostInput) (domain.Post, error)
	DeletePost(ctx context.Context, ownerID, postID string) error
	GetPost(ctx context.Context, viewerID, postID string) (domain.Post, error)
	ListFeed(ctx context.Context, query domain.PageQuery) ([]domain.Post, error)
	AddComment(ctx context.Context, userID, postID string, input domain.CreateCommentInput) (domain.Post, error)
	TogglePostLike(ctx context.Context, userID, postID string) (domain.Post, error)
	ToggleCommentLike(ctx context.Context, userID, postID, commentID string) (domain.Post, error)
}
