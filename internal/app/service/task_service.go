package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rahulserver/task-management-backend/internal/core/domain"
	"github.com/rahulserver/task-management-backend/internal/core/ports"
)

type TaskService struct {
	taskRepository ports.TaskRepository
	now            func() time.Time
	newID          func() string
}

func NewTaskService(taskRepository ports.TaskRepository) *TaskService {
	return &TaskService{
		taskRepository: taskRepository,
		now:            time.Now,
		newID:          uuid.NewString,
	}
}

var _ ports.TaskService = (*TaskService)(nil)

func (s *TaskService) CreateTask(ctx context.Context, ownerID string, input domain.CreateTaskInput) (domain.Task, error) {
	last, found, err := s.taskRepository.MaxPosition(ctx, ownerID, domain.TaskStatusPending)
	if err != nil {
		return domain.Task{}, err
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.TaskPriorityMedium
	}

	now := s.now().UTC()
	task := domain.Task{
		ID:          s.newID(),
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.TaskStatusPending,
		Priority:    priority,
		DueDate:     input.DueDate,
		Position:    domain.NextPosition(last, found),
		Column:      domain.TaskStatusPending,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.taskRepository.InsertTask(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, ownerID, taskID string, input domain.UpdateTaskInput) (domain.Task, error) {
	task, err := s.taskRepository.GetTask(ctx, ownerID, taskID)
	if err != nil {
		return domain.Task{}, err
	}

	applyTaskUpdate(&task, input)
	task.UpdatedAt = s.now().UTC()

	if err := s.taskRepository.UpdateTask(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// applyTaskUpdate copies the supplied fields onto task. Status and column
// always end up equal: a supplied status wins, otherwise a supplied column
// moves the status along with it.
func applyTaskUpdate(task *domain.Task, input domain.UpdateTaskInput) {
	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.DueDate != nil {
		value := *input.DueDate
		task.DueDate = &value
	}
	if input.Position != nil {
		task.Position = *input.Position
	}

	switch {
	case input.Status != nil:
		task.Status = *input.Status
		task.Column = *input.Status
	case input.Column != nil:
		task.Status = *input.Column
		task.Column = *input.Column
	}
}

func (s *TaskService) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	deleted, err := s.taskRepository.DeleteTask(ctx, ownerID, taskID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (s *TaskService) GetTask(ctx context.Context, ownerID, taskID string) (domain.Task, error) {
	return s.taskRepository.GetTask(ctx, ownerID, taskID)
}

func (s *TaskService) ListTasks(ctx context.Context, ownerID string, query domain.PageQuery) ([]domain.Task, error) {
	return s.taskRepository.ListTasks(ctx, ownerID, query.WithDefaults(domain.DefaultTaskPage).CapLimit(domain.MaxTaskPageLimit))
}

// UpdateTaskPositions applies a drag-and-drop reorder as one unit. Entries run
// in order inside a single transaction; if any task is missing or belongs to
// someone else nothing from the batch is kept.
func (s *TaskService) UpdateTaskPositions(ctx context.Context, ownerID string, updates []domain.TaskPositionUpdate) error {
	now := s.now().UTC()

	err := s.taskRepository.WithinTx(ctx, func(repo ports.TaskRepository) error {
		for _, update := range updates {
			task, err := repo.GetTask(ctx, ownerID, update.TaskID)
			if err != nil {
				if errors.Is(err, domain.ErrTaskNotFound) {
					return domain.TaskNotFoundError{TaskID: update.TaskID}
				}
				return fmt.Errorf("load task %s: %w", update.TaskID, err)
			}

			task.Position = update.NewPosition
			task.Column = update.Column
			task.Status = update.Column
			task.UpdatedAt = now

			if err := repo.UpdateTask(ctx, task); err != nil {
				return fmt.Errorf("update task %s: %w", update.TaskID, err)
			}
		}
		return nil
	})
	if err != nil {
		zap.L().Debug("task reorder aborted",
			zap.String("owner_id", ownerID),
			zap.Int("entries", len(updates)),
			zap.Error(err),
		)
		return err
	}
	return nil
}
