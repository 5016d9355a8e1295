package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rahulserver/task-management-backend/internal/core/domain"
	"github.com/rahulserver/task-management-backend/internal/core/ports"
)

const postColumns = `id, caption, image_url, image_public_id, visibility, likes, comments, tags, created_by, created_at, updated_at`

const (
	insertPostQuery = `
INSERT INTO posts (id, caption, image_url, image_public_id, visibility, likes, comments, tags, created_by, created_at, updated_at)
VALUES (:id, :caption, :image_url, :image_public_id, :visibility, :likes, :comments, :tags, :created_by, :created_at, :updated_at)`

	getPostQuery      = `SELECT ` + postColumns + ` FROM posts WHERE id = ?`
	getOwnedPostQuery = `SELECT ` + postColumns + ` FROM posts WHERE id = ? AND created_by = ?`

	updatePostQuery = `
UPDATE posts SET
  caption = :caption,
  image_url = :image_url,
  image_public_id = :image_public_id,
  visibility = :visibility,
  likes = :likes,
  comments = :comments,
  tags = :tags,
  updated_at = :updated_at
WHERE id = :id`

	deletePostQuery = `DELETE FROM posts WHERE id = ? AND created_by = ?`
)

var postSortColumns = map[string]string{
	domain.SortByCreatedAt: "created_at",
	domain.SortByLikes:     "JSON_LENGTH(likes)",
	domain.SortByComments:  "JSON_LENGTH(comments)",
}

type PostRepository struct {
	db   *sqlx.DB
	ext  sqlx.ExtContext
	inTx bool
}

type commentDocument struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Likes     []string  `json:"likes"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type postRow struct {
	ID            string                        `db:"id"`
	Caption       string                        `db:"caption"`
	ImageURL      string                        `db:"image_url"`
	ImagePublicID string                        `db:"image_public_id"`
	Visibility    string                        `db:"visibility"`
	Likes         jsonColumn[[]string]          `db:"likes"`
	Comments      jsonColumn[[]commentDocument] `db:"comments"`
	Tags          jsonColumn[[]string]          `db:"tags"`
	CreatedBy     string                        `db:"created_by"`
	CreatedAt     time.Time                     `db:"created_at"`
	UpdatedAt     time.Time                     `db:"updated_at"`
}

var _ ports.PostRepository = (*PostRepository)(nil)

func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{db: db, ext: db}
}

func (r *PostRepository) InsertPost(ctx context.Context, post domain.Post) error {
	if _, err := sqlx.NamedExecContext(ctx, r.ext, insertPostQuery, mapDomainPostToRow(post)); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *PostRepository) GetPost(ctx context.Context, postID string) (domain.Post, error) {
	return r.getPost(ctx, getPostQuery, postID)
}

func (r *PostRepository) GetOwnedPost(ctx context.Context, ownerID, postID string) (domain.Post, error) {
	return r.getPost(ctx, getOwnedPostQuery, postID, ownerID)
}

func (r *PostRepository) getPost(ctx context.Context, query string, args ...any) (domain.Post, error) {
	if r.inTx {
		query += " FOR UPDATE"
	}

	var row postRow
	if err := sqlx.GetContext(ctx, r.ext, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, domain.ErrPostNotFound
		}
		return domain.Post{}, fmt.Errorf("get post: %w", err)
	}
	return mapPostRowToDomainPost(row), nil
}

func (r *PostRepository) ListPublicPosts(ctx context.Context, query domain.PageQuery) ([]domain.Post, error) {
	orderBy, ok := postSortColumns[query.SortBy]
	if !ok {
		orderBy = postSortColumns[domain.SortByCreatedAt]
	}
	direction := "DESC"
	if query.SortOrder == domain.SortAsc {
		direction = "ASC"
	}

	stmt := fmt.Sprintf(
		`SELECT %s FROM posts WHERE visibility = ? ORDER BY %s %s, id ASC LIMIT ? OFFSET ?`,
		postColumns, orderBy, direction,
	)

	var rows []postRow
	if err := sqlx.SelectContext(ctx, r.ext, &rows, stmt, string(domain.PostVisibilityPublic), query.Limit, query.Offset()); err != nil {
		return nil, fmt.Errorf("list public posts: %w", err)
	}

	posts := make([]domain.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, mapPostRowToDomainPost(row))
	}
	return posts, nil
}

func (r *PostRepository) UpdatePost(ctx context.Context, post domain.Post) error {
	if _, err := sqlx.NamedExecContext(ctx, r.ext, updatePostQuery, mapDomainPostToRow(post)); err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

func (r *PostRepository) DeletePost(ctx context.Context, ownerID, postID string) (bool, error) {
	result, err := r.ext.ExecContext(ctx, deletePostQuery, postID, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}
	return affected > 0, nil
}

func (r *PostRepository) WithinTx(ctx context.Context, fn func(repo ports.PostRepository) error) error {
	if r.inTx {
		return fn(r)
	}
	return withinTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return fn(&PostRepository{db: r.db, ext: tx, inTx: true})
	})
}

func mapDomainPostToRow(post domain.Post) postRow {
	comments := make([]commentDocument, 0, len(post.Comments))
	for _, comment := range post.Comments {
		comments = append(comments, commentDocument{
			ID:        comment.ID,
			Content:   comment.Content,
			Likes:     nonNil(comment.Likes),
			CreatedBy: comment.OwnerID,
			CreatedAt: comment.CreatedAt,
			UpdatedAt: comment.UpdatedAt,
		})
	}

	return postRow{
		ID:            post.ID,
		Caption:       post.Caption,
		ImageURL:      post.ImageURL,
		ImagePublicID: post.ImagePublicID,
		Visibility:    string(post.Visibility),
		Likes:         jsonColumn[[]string]{V: nonNil(post.Likes)},
		Comments:      jsonColumn[[]commentDocument]{V: comments},
		Tags:          jsonColumn[[]string]{V: nonNil(post.Tags)},
		CreatedBy:     post.OwnerID,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
	}
}

func mapPostRowToDomainPost(row postRow) domain.Post {
	comments := make([]domain.Comment, 0, len(row.Comments.V))
	for _, doc := range row.Comments.V {
		comments = append(comments, domain.Comment{
			ID:        doc.ID,
			Content:   doc.Content,
			Likes:     nonNil(doc.Likes),
			OwnerID:   doc.CreatedBy,
			CreatedAt: doc.CreatedAt,
			UpdatedAt: doc.UpdatedAt,
		})
	}

	return domain.Post{
		ID:            row.ID,
		Caption:       row.Caption,
		ImageURL:      row.ImageURL,
		ImagePublicID: row.ImagePublicID,
		Visibility:    domain.PostVisibility(row.Visibility),
		Likes:         nonNil(row.Likes.V),
		Comments:      comments,
		Tags:          nonNil(row.Tags.V),
		OwnerID:       row.CreatedBy,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
