package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rahulserver/task-management-backend/internal/core/domain"
	"github.com/rahulserver/task-management-backend/internal/core/ports"
)

// memTaskRepository is an in-memory TaskRepository. WithinTx snapshots the
// table and restores it when fn fails, which mirrors a rollback.
type memTaskRepository struct {
	mu        sync.Mutex
	tasks     map[string]domain.Task
	updateErr error
}

func newMemTaskRepository(tasks ...domain.Task) *memTaskRepository {
	repo := &memTaskRepository{tasks: map[string]domain.Task{}}
	for _, task := range tasks {
		repo.tasks[task.ID] = task
	}
	return repo
}

func (r *memTaskRepository) MaxPosition(_ context.Context, ownerID string, status domain.TaskStatus) (float64, bool, error) {
	var (
		max   float64
		found bool
	)
	for _, task := range r.tasks {
		if task.OwnerID != ownerID || task.Status != status {
			continue
		}
		if !found || task.Position > max {
			max = task.Position
			found = true
		}
	}
	return max, found, nil
}

func (r *memTaskRepository) InsertTask(_ context.Context, task domain.Task) error {
	r.tasks[task.ID] = task
	return nil
}

func (r *memTaskRepository) GetTask(_ context.Context, ownerID, taskID string) (domain.Task, error) {
	task, ok := r.tasks[taskID]
	if !ok || task.OwnerID != ownerID {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return task, nil
}

func (r *memTaskRepository) ListTasks(_ context.Context, ownerID string, query domain.PageQuery) ([]domain.Task, error) {
	var owned []domain.Task
	for _, task := range r.tasks {
		if task.OwnerID == ownerID {
			owned = append(owned, task)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if query.SortOrder == domain.SortDesc {
			return owned[i].Position > owned[j].Position
		}
		return owned[i].Position < owned[j].Position
	})
	start := query.Offset()
	if start >= len(owned) {
		return []domain.Task{}, nil
	}
	end := start + query.Limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[start:end], nil
}

func (r *memTaskRepository) UpdateTask(_ context.Context, task domain.Task) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	r.tasks[task.ID] = task
	return nil
}

func (r *memTaskRepository) DeleteTask(_ context.Context, ownerID, taskID string) (bool, error) {
	task, ok := r.tasks[taskID]
	if !ok || task.OwnerID != ownerID {
		return false, nil
	}
	delete(r.tasks, taskID)
	return true, nil
}

func (r *memTaskRepository) WithinTx(_ context.Context, fn func(repo ports.TaskRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make(map[string]domain.Task, len(r.tasks))
	for id, task := range r.tasks {
		snapshot[id] = task
	}
	if err := fn(r); err != nil {
		r.tasks = snapshot
		return err
	}
	return nil
}

type memPostRepository struct {
	mu    sync.Mutex
	posts map[string]domain.Post
	order []string
}

func newMemPostRepository(posts ...domain.Post) *memPostRepository {
	repo := &memPostRepository{posts: map[string]domain.Post{}}
	for _, post := range posts {
		repo.posts[post.ID] = post
		repo.order = append(repo.order, post.ID)
	}
	return repo
}

func (r *memPostRepository) InsertPost(_ context.Context, post domain.Post) error {
	r.posts[post.ID] = post
	r.order = append(r.order, post.ID)
	return nil
}

func (r *memPostRepository) GetPost(_ context.Context, postID string) (domain.Post, error) {
	post, ok := r.posts[postID]
	if !ok {
		return domain.Post{}, domain.ErrPostNotFound
	}
	return clonePost(post), nil
}

// clonePost copies the slices so callers cannot mutate stored state in place.
func clonePost(post domain.Post) domain.Post {
	post.Likes = append([]string(nil), post.Likes...)
	post.Tags = append([]string(nil), post.Tags...)
	comments := make([]domain.Comment, len(post.Comments))
	for i, comment := range post.Comments {
		comment.Likes = append([]string(nil), comment.Likes...)
		comments[i] = comment
	}
	post.Comments = comments
	return post
}

func (r *memPostRepository) GetOwnedPost(ctx context.Context, ownerID, postID string) (domain.Post, error) {
	post, err := r.GetPost(ctx, postID)
	if err != nil {
		return domain.Post{}, err
	}
	if post.OwnerID != ownerID {
		return domain.Post{}, domain.ErrPostNotFound
	}
	return post, nil
}

func (r *memPostRepository) ListPublicPosts(_ context.Context, query domain.PageQuery) ([]domain.Post, error) {
	var public []domain.Post
	for _, id := range r.order {
		post, ok := r.posts[id]
		if ok && post.Visibility == domain.PostVisibilityPublic {
			public = append(public, post)
		}
	}
	start := query.Offset()
	if start >= len(public) {
		return []domain.Post{}, nil
	}
	end := start + query.Limit
	if end > len(public) {
		end = len(public)
	}
	return public[start:end], nil
}

func (r *memPostRepository) UpdatePost(_ context.Context, post domain.Post) error {
	if _, ok := r.posts[post.ID]; !ok {
		return domain.ErrPostNotFound
	}
	r.posts[post.ID] = post
	return nil
}

func (r *memPostRepository) DeletePost(_ context.Context, ownerID, postID string) (bool, error) {
	post, ok := r.posts[postID]
	if !ok || post.OwnerID != ownerID {
		return false, nil
	}
	delete(r.posts, postID)
	return true, nil
}

func (r *memPostRepository) WithinTx(_ context.Context, fn func(repo ports.PostRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make(map[string]domain.Post, len(r.posts))
	for id, post := range r.posts {
		snapshot[id] = post
	}
	if err := fn(r); err != nil {
		r.posts = snapshot
		return err
	}
	return nil
}

type fakeMediaStore struct {
	uploads   []string
	deletes   []string
	uploadErr error
	deleteErr error
}

func (m *fakeMediaStore) Upload(_ context.Context, payload, key string) (domain.Image, error) {
	if m.uploadErr != nil {
		return domain.Image{}, m.uploadErr
	}
	m.uploads = append(m.uploads, key)
	return domain.Image{
		URL:      "https://media.example.com/" + key + ".jpg",
		PublicID: key,
	}, nil
}

func (m *fakeMediaStore) Delete(_ context.Context, publicID string) error {
	m.deletes = append(m.deletes, publicID)
	return m.deleteErr
}

var errStoreDown = errors.New("store is down")
