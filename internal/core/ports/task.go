package ports

import (
	"context"

	"github.com/rahulserver/task-management-backend/internal/core/domain"
)

type TaskRepository interface {
	// MaxPosition returns the highest position among the owner's tasks in
	// status. found is false when the owner has no such task.
	MaxPosition(ctx context.Context, ownerID string, status domain.TaskStatus) (position float64, found bool, err error)
	InsertTask(ctx context.Context, task domain.Task) error
	// GetTask returns domain.ErrTaskNotFound unless a task with taskID is
	// owned by ownerID. Inside WithinTx the row is locked until commit.
	GetTask(ctx context.Context, ownerID, taskID string) (domain.Task, error)
	ListTasks(ctx context.Context, ownerID string, query domain.PageQuery) ([]domain.Task, error)
	UpdateTask(ctx context.Context, task domain.Task) error
	DeleteTask(ctx context.Context, ownerID, taskID string) (deleted bool, err error)
	// WithinTx runs fn against a repository bound to one transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(repo TaskRepository) error) error
}

type TaskService interface {
	CreateTask(ctx context.Context, ownerID string, input domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID string, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID string) error
	GetTask(ctx context.Context, ownerID, taskID string) (domain.Task, error)
	ListTasks(ctx context.Context, ownerID string, query domain.PageQuery) ([]domain.Task, error)
	UpdateTaskPositions(ctx context.Context, ownerID string, updates []domain.TaskPositionUpdate) error
}
