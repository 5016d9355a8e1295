package mapper

import (
	"time"

	"github.com/rahulserver/task-management-backend/internal/adapter/http/dto"
	"github.com/rahulserver/task-management-backend/internal/core/domain"
)

func ToPostItems(posts []domain.Post) []dto.PostItem {
	items := make([]dto.PostItem, 0, len(posts))
	for _, post := range posts {
		items = append(items, ToPostItem(post))
	}
	return items
}

func ToPostItem(post domain.Post) dto.PostItem {
	comments := make([]dto.CommentItem, 0, len(post.Comments))
	for _, comment := range post.Comments {
		comments = append(comments, dto.CommentItem{
			ID:        comment.ID,
			Content:   comment.Content,
			Likes:     orEmpty(comment.Likes),
			LikeCount: len(comment.Likes),
			CreatedBy: comment.OwnerID,
			CreatedAt: comment.CreatedAt.Format(time.RFC3339),
			UpdatedAt: comment.UpdatedAt.Format(time.RFC3339),
		})
	}

	return dto.PostItem{
		ID:           post.ID,
		Caption:      post.Caption,
		ImageURL:     post.ImageURL,
		Visibility:   string(post.Visibility),
		Likes:        orEmpty(post.Likes),
		LikeCount:    len(post.Likes),
		Comments:     comments,
		CommentCount: len(post.Comments),
		Tags:         orEmpty(post.Tags),
		CreatedBy:    post.OwnerID,
		CreatedAt:    post.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    post.UpdatedAt.Format(time.RFC3339),
	}
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
