package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rahulserver/task-management-backend/internal/core/domain"
	"github.com/rahulserver/task-management-backend/internal/core/ports"
)

type PostService struct {
	postRepository ports.PostRepository
	mediaStore     ports.MediaStore
	now            func() time.Time
	newID          func() string
}

func NewPostService(postRepository ports.PostRepository, mediaStore ports.MediaStore) *PostService {
	return &PostService{
		postRepository: postRepository,
		mediaStore:     mediaStore,
		now:            time.Now,
		newID:          uuid.NewString,
	}
}

var _ ports.PostService = (*PostService)(nil)

// imageKey namespaces uploads by owner and upload time.
func imageKey(ownerID string, at time.Time) string {
	return fmt.Sprintf("posts/%s/%d", ownerID, at.UnixMilli())
}

func (s *PostService) CreatePost(ctx context.Context, ownerID string, input domain.CreatePostInput) (domain.Post, error) {
	now := s.now().UTC()

	image, err := s.mediaStore.Upload(ctx, input.ImagePayload, imageKey(ownerID, now))
	if err != nil {
		return domain.Post{}, fmt.Errorf("upload post image: %w", err)
	}

	visibility := input.Visibility
	if visibility == "" {
		visibility = domain.PostVisibilityPublic
	}

	post := domain.Post{
		ID:            s.newID(),
		Caption:       input.Caption,
		ImageURL:      image.URL,
		ImagePublicID: image.PublicID,
		Visibility:    visibility,
		Likes:         []string{},
		Comments:      []domain.Comment{},
		Tags:          input.Tags,
		OwnerID:       ownerID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	if err := s.postRepository.InsertPost(ctx, post); err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

// UpdatePost uploads a replacement image before taking the row lock, then
// applies the changes inside a transaction so concurrent likes and comments
// are kept. The previous image is removed once the update is stored.
func (s *PostService) UpdatePost(ctx context.Context, ownerID, postID string, input domain.UpdatePostInput) (domain.Post, error) {
	if _, err := s.postRepository.GetOwnedPost(ctx, ownerID, postID); err != nil {
		return domain.Post{}, err
	}

	now := s.now().UTC()
	var uploaded *domain.Image
	if input.ImagePayload != nil {
		image, err := s.mediaStore.Upload(ctx, *input.ImagePayload, imageKey(ownerID, now))
		if err != nil {
			return domain.Post{}, fmt.Errorf("upload post image: %w", err)
		}
		uploaded = &image
	}

	var (
		result        domain.Post
		previousImage string
	)
	err := s.postRepository.WithinTx(ctx, func(repo ports.PostRepository) error {
		post, err := repo.GetOwnedPost(ctx, ownerID, postID)
		if err != nil {
			return err
		}

		if uploaded != nil {
			previousImage = post.ImagePublicID
			post.ImageURL = uploaded.URL
			post.ImagePublicID = uploaded.PublicID
		}
		if input.Caption != nil {
			post.Caption = *input.Caption
		}
		if input.Visibility != nil {
			post.Visibility = *input.Visibility
		}
		if input.TagsSet {
			post.Tags = input.Tags
			if post.Tags == nil {
				post.Tags = []string{}
			}
		}
		post.UpdatedAt = now

		if err := repo.UpdatePost(ctx, post); err != nil {
			return err
		}
		result = post
		return nil
	})
	if err != nil {
		if uploaded != nil {
			s.deleteImage(ctx, postID, uploaded.PublicID)
		}
		return domain.Post{}, err
	}

	if previousImage != "" && previousImage != result.ImagePublicID {
		s.deleteImage(ctx, postID, previousImage)
	}
	return result, nil
}

// deleteImage removes an image that is no longer referenced. Failures leave
// an orphan in the media store and are only logged.
func (s *PostService) deleteImage(ctx context.Context, postID, publicID string) {
	if err := s.mediaStore.Delete(ctx, publicID); err != nil {
		zap.L().Warn("failed to delete unreferenced post image",
			zap.String("post_id", postID),
			zap.String("public_id", publicID),
			zap.Error(err),
		)
	}
}

func (s *PostService) DeletePost(ctx context.Context, ownerID, postID string) error {
	post, err := s.postRepository.GetOwnedPost(ctx, ownerID, postID)
	if err != nil {
		return err
	}

	if post.ImagePublicID != "" {
		if err := s.mediaStore.Delete(ctx, post.ImagePublicID); err != nil {
			return fmt.Errorf("delete post image: %w", err)
		}
	}

	deleted, err := s.postRepository.DeletePost(ctx, ownerID, postID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrPostNotFound
	}
	return nil
}

func (s *PostService) GetPost(ctx context.Context, viewerID, postID string) (domain.Post, error) {
	post, err := s.postRepository.GetPost(ctx, postID)
	if err != nil {
		return domain.Post{}, err
	}
	if !post.VisibleTo(viewerID) {
		return domain.Post{}, domain.ErrPostForbidden
	}
	return post, nil
}

func (s *PostService) ListFeed(ctx context.Context, query domain.PageQuery) ([]domain.Post, error) {
	return s.postRepository.ListPublicPosts(ctx, query.WithDefaults(domain.DefaultFeedPage).CapLimit(domain.MaxFeedPageLimit))
}

func (s *PostService) AddComment(ctx context.Context, userID, postID string, input domain.CreateCommentInput) (domain.Post, error) {
	return s.mutatePost(ctx, userID, postID, func(post *domain.Post, now time.Time) error {
		post.Comments = append(post.Comments, domain.Comment{
			ID:        s.newID(),
			Content:   input.Content,
			Likes:     []string{},
			OwnerID:   userID,
			CreatedAt: now,
			UpdatedAt: now,
		})
		return nil
	})
}

func (s *PostService) TogglePostLike(ctx context.Context, userID, postID string) (domain.Post, error) {
	return s.mutatePost(ctx, userID, postID, func(post *domain.Post, _ time.Time) error {
		post.Likes = domain.ToggleMember(post.Likes, userID)
		return nil
	})
}

func (s *PostService) ToggleCommentLike(ctx context.Context, userID, postID, commentID string) (domain.Post, error) {
	return s.mutatePost(ctx, userID, postID, func(post *domain.Post, _ time.Time) error {
		comment := post.Comment(commentID)
		if comment == nil {
			return domain.ErrCommentNotFound
		}
		comment.Likes = domain.ToggleMember(comment.Likes, userID)
		return nil
	})
}

// mutatePost runs a read-modify-write on one post under a row lock so that
// concurrent likes and comments on the same post are not lost.
func (s *PostService) mutatePost(ctx context.Context, userID, postID string, mutate func(post *domain.Post, now time.Time) error) (domain.Post, error) {
	var result domain.Post
	err := s.postRepository.WithinTx(ctx, func(repo ports.PostRepository) error {
		post, err := repo.GetPost(ctx, postID)
		if err != nil {
			return err
		}
		if !post.VisibleTo(userID) {
			return domain.ErrPostForbidden
		}

		now := s.now().UTC()
		if err := mutate(&post, now); err != nil {
			return err
		}
		post.UpdatedAt = now

		if err := repo.UpdatePost(ctx, post); err != nil {
			return err
		}
		result = post
		return nil
	})
	if err != nil {
		return domain.Post{}, err
	}
	return result, nil
}
