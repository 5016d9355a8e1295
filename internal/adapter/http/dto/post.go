package dto

type CommentItem struct {
	ID        string   `json:"id"`
	Content   string   `json:"content"`
	Likes     []string `json:"likes"`
	LikeCount int      `json:"likeCount"`
	CreatedBy string   `json:"createdBy"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

type PostItem struct {
	ID           string        `json:"id"`
	Caption      string        `json:"caption"`
	ImageURL     string        `json:"imageUrl"`
	Visibility   string        `json:"visibility"`
	Likes        []string      `json:"likes"`
	LikeCount    int           `json:"likeCount"`
	Comments     []CommentItem `json:"comments"`
	CommentCount int           `json:"commentCount"`
	Tags         []string      `json:"tags"`
	CreatedBy    string        `json:"createdBy"`
	CreatedAt    string        `json:"createdAt"`
	UpdatedAt    string        `json:"updatedAt"`
}

type CreatePostRequest struct {
	Caption    string   `json:"caption" validate:"required,min=1,max=2000"`
	Image      string   `json:"image" validate:"required"`
	Visibility *string  `json:"visibility" validate:"omitempty,oneof=PUBLIC PRIVATE"`
	Tags       []string `json:"tags" validate:"omitempty,max=10,unique,dive,min=1,max=50"`
}

type UpdatePostRequest struct {
	Caption    *string  `json:"caption" validate:"omitempty,min=1,max=2000"`
	Image      *string  `json:"image" validate:"omitempty,min=1"`
	Visibility *string  `json:"visibility" validate:"omitempty,oneof=PUBLIC PRIVATE"`
	Tags       []string `json:"tags" validate:"omitempty,max=10,unique,dive,min=1,max=50"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

type PostList struct {
	Posts []PostItem `json:"posts"`
	Page  PageMeta   `json:"pagination"`
}
