package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rahulserver/task-management-backend/internal/adapter/http/dto"
	"github.com/rahulserver/task-management-backend/internal/adapter/http/mapper"
	"github.com/rahulserver/task-management-backend/internal/adapter/http/middleware"
	"github.com/rahulserver/task-management-backend/internal/adapter/http/validation"
	"github.com/rahulserver/task-management-backend/internal/core/domain"
	"github.com/rahulserver/task-management-backend/internal/core/ports"
	"github.com/rahulserver/task-management-backend/pkg/apierrors"
)

type PostHandler struct {
	postService ports.PostService
}

func NewPostHandler(postService ports.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	var req dto.CreatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	input, violations := validation.BuildCreatePostInput(req)
	if len(violations) > 0 {
		respondValidation(c, violations)
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), middleware.GetUserID(c), input)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailCreatePost, "failed to create post")
		return
	}

	respond(c, http.StatusCreated, apierrors.MsgPostCreated, mapper.ToPostItem(post))
}

func (h *PostHandler) ListFeed(c *gin.Context) {
	query, violations := validation.ParsePageQuery(listQuery(c), domain.DefaultFeedPage, domain.PostSortFields, domain.MaxFeedPageLimit)
	if len(violations) > 0 {
		respondValidation(c, violations)
		return
	}

	posts, err := h.postService.ListFeed(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailListFeed, "failed to list feed")
		return
	}

	respond(c, http.StatusOK, apierrors.MsgFeedFetched, dto.PostList{
		Posts: mapper.ToPostItems(posts),
		Page:  mapper.ToPageMeta(query),
	})
}

func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := pathID(c, "id", apierrors.MsgInvalidPostID)
	if !ok {
		return
	}

	post, err := h.postService.GetPost(c.Request.Context(), middleware.GetUserID(c), postID)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgInternalError, "failed to get post", zap.String("post_id", postID))
		return
	}

	respond(c, http.StatusOK, apierrors.MsgPostFetched, mapper.ToPostItem(post))
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	postID, ok := pathID(c, "id", apierrors.MsgInvalidPostID)
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	input, violations := validation.BuildUpdatePostInput(req)
	if len(violations) > 0 {
		respondValidation(c, violations)
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), middleware.GetUserID(c), postID, input)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailUpdatePost, "failed to update post", zap.String("post_id", postID))
		return
	}

	respond(c, http.StatusOK, apierrors.MsgPostUpdated, mapper.ToPostItem(post))
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	postID, ok := pathID(c, "id", apierrors.MsgInvalidPostID)
	if !ok {
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), middleware.GetUserID(c), postID); err != nil {
		respondServiceError(c, err, apierrors.MsgFailDeletePost, "failed to delete post", zap.String("post_id", postID))
		return
	}

	respond(c, http.StatusOK, apierrors.MsgPostDeleted, nil)
}

func (h *PostHandler) AddComment(c *gin.Context) {
	postID, ok := pathID(c, "id", apierrors.MsgInvalidPostID)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	input, violations := validation.BuildCreateCommentInput(req)
	if len(violations) > 0 {
		respondValidation(c, violations)
		return
	}

	post, err := h.postService.AddComment(c.Request.Context(), middleware.GetUserID(c), postID, input)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgInternalError, "failed to add comment", zap.String("post_id", postID))
		return
	}

	respond(c, http.StatusCreated, apierrors.MsgCommentAdded, mapper.ToPostItem(post))
}

func (h *PostHandler) TogglePostLike(c *gin.Context) {
	postID, ok := pathID(c, "id", apierrors.MsgInvalidPostID)
	if !ok {
		return
	}

	post, err := h.postService.TogglePostLike(c.Request.Context(), middleware.GetUserID(c), postID)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgInternalError, "failed to toggle post like", zap.String("post_id", postID))
		return
	}

	respond(c, http.StatusOK, apierrors.MsgPostLikeToggled, mapper.ToPostItem(post))
}

func (h *PostHandler) ToggleCommentLike(c *gin.Context) {
	postID, ok := pathID(c, "id", apierrors.MsgInvalidPostID)
	if !ok {
		return
	}
	commentID := c.Param("commentId")

	post, err := h.postService.ToggleCommentLike(c.Request.Context(), middleware.GetUserID(c), postID, commentID)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgInternalError, "failed to toggle comment like",
			zap.String("post_id", postID),
			zap.String("comment_id", commentID),
		)
		return
	}

	respond(c, http.StatusOK, apierrors.MsgCommentLikeToggled, mapper.ToPostItem(post))
}
