package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulserver/task-management-backend/internal/core/domain"
)

var fixedNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

func newTestTaskService(repo *memTaskRepository) *TaskService {
	svc := NewTaskService(repo)
	svc.now = func() time.Time { return fixedNow }
	seq := 0
	svc.newID = func() string {
		seq++
		return fmt.Sprintf("task-%d", seq)
	}
	return svc
}

func TestTaskService_CreateTask_SpacesPositionsByGap(t *testing.T) {
	repo := newMemTaskRepository()
	svc := newTestTaskService(repo)
	ctx := context.Background()

	var positions []float64
	for i := 0; i < 3; i++ {
		task, err := svc.CreateTask(ctx, "alice", domain.CreateTaskInput{
			Title:       fmt.Sprintf("Task %d", i),
			Description: "write the thing",
		})
		require.NoError(t, err)
		require.Equal(t, domain.TaskStatusPending, task.Status)
		require.Equal(t, domain.TaskStatusPending, task.Column)
		require.Equal(t, domain.TaskPriorityMedium, task.Priority)
		require.Equal(t, "alice", task.OwnerID)
		positions = append(positions, task.Position)
	}

	require.Equal(t, []float64{1000, 2000, 3000}, positions)
}

func TestTaskService_CreateTask_IgnoresOtherColumnsAndOwners(t *testing.T) {
	repo := newMemTaskRepository(
		domain.Task{ID: "a", OwnerID: "alice", Status: domain.TaskStatusInProgress, Column: domain.TaskStatusInProgress, Position: 9000},
		domain.Task{ID: "b", OwnerID: "bob", Status: domain.TaskStatusPending, Column: domain.TaskStatusPending, Position: 7000},
		domain.Task{ID: "c", OwnerID: "alice", Status: domain.TaskStatusPending, Column: domain.TaskStatusPending, Position: 1500},
	)
	svc := newTestTaskService(repo)

	task, err := svc.CreateTask(context.Background(), "alice", domain.CreateTaskInput{Title: "t", Description: "d"})
	require.NoError(t, err)
	require.Equal(t, float64(2500), task.Position)
}

func TestTaskService_UpdateTask_StatusDrivesColumn(t *testing.T) {
	repo := newMemTaskRepository(domain.Task{
		ID: "t1", OwnerID: "alice", Title: "old",
		Status: domain.TaskStatusPending, Column: domain.TaskStatusPending,
	})
	svc := newTestTaskService(repo)

	status := domain.TaskStatusCompleted
	column := domain.TaskStatusInProgress
	title := "new"
	task, err := svc.UpdateTask(context.Background(), "alice", "t1", domain.UpdateTaskInput{
		Title:  &title,
		Status: &status,
		Column: &column,
	})
	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusCompleted, task.Status)
	require.Equal(t, domain.TaskStatusCompleted, task.Column)

	stored := repo.tasks["t1"]
	require.Equal(t, "new", stored.Title)
	require.Equal(t, stored.Status, stored.Column)
	require.Equal(t, fixedNow, stored.UpdatedAt)
}

func TestTaskService_UpdateTask_ColumnOnlyMovesStatus(t *testing.T) {
	repo := newMemTaskRepository(domain.Task{
		ID: "t1", OwnerID: "alice",
		Status: domain.TaskStatusPending, Column: domain.TaskStatusPending,
	})
	svc := newTestTaskService(repo)

	column := domain.TaskStatusInProgress
	task, err := svc.UpdateTask(context.Background(), "alice", "t1", domain.UpdateTaskInput{Column: &column})
	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusInProgress, task.Status)
	require.Equal(t, domain.TaskStatusInProgress, task.Column)
}

func TestTaskService_UpdateTask_PartialLeavesOtherFields(t *testing.T) {
	due := fixedNow.Add(48 * time.Hour)
	repo := newMemTaskRepository(domain.Task{
		ID: "t1", OwnerID: "alice", Title: "keep", Description: "keep too",
		Priority: domain.TaskPriorityHigh, DueDate: &due, Position: 3000,
		Status: domain.TaskStatusPending, Column: domain.TaskStatusPending,
	})
	svc := newTestTaskService(repo)

	position := 1500.5
	task, err := svc.UpdateTask(context.Background(), "alice", "t1", domain.UpdateTaskInput{Position: &position})
	require.NoError(t, err)
	assert.Equal(t, "keep", task.Title)
	assert.Equal(t, "keep too", task.Description)
	assert.Equal(t, domain.TaskPriorityHigh, task.Priority)
	assert.Equal(t, due, *task.DueDate)
	assert.Equal(t, 1500.5, task.Position)
	assert.Equal(t, domain.TaskStatusPending, task.Column)
}

func TestTaskService_OwnerIsolation(t *testing.T) {
	repo := newMemTaskRepository(domain.Task{
		ID: "t1", OwnerID: "alice", Title: "private",
		Status: domain.TaskStatusPending, Column: domain.TaskStatusPending,
	})
	svc := newTestTaskService(repo)
	ctx := context.Background()

	_, err := svc.GetTask(ctx, "bob", "t1")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)

	title := "hijacked"
	_, err = svc.UpdateTask(ctx, "bob", "t1", domain.UpdateTaskInput{Title: &title})
	require.ErrorIs(t, err, domain.ErrTaskNotFound)

	err = svc.DeleteTask(ctx, "bob", "t1")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)

	require.Equal(t, "private", repo.tasks["t1"].Title)

	_, err = svc.GetTask(ctx, "bob", "does-not-exist")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskService_DeleteTask(t *testing.T) {
	repo := newMemTaskRepository(domain.Task{ID: "t1", OwnerID: "alice"})
	svc := newTestTaskService(repo)

	require.NoError(t, svc.DeleteTask(context.Background(), "alice", "t1"))
	require.Empty(t, repo.tasks)
	require.ErrorIs(t, svc.DeleteTask(context.Background(), "alice", "t1"), domain.ErrTaskNotFound)
}

func TestTaskService_ListTasks_PaginatesByPosition(t *testing.T) {
	var tasks []domain.Task
	for i := 1; i <= 5; i++ {
		tasks = append(tasks, domain.Task{
			ID:       fmt.Sprintf("t%d", i),
			OwnerID:  "alice",
			Position: float64(i * 1000),
		})
	}
	tasks = append(tasks, domain.Task{ID: "other", OwnerID: "bob", Position: 1})
	svc := newTestTaskService(newMemTaskRepository(tasks...))

	page, err := svc.ListTasks(context.Background(), "alice", domain.PageQuery{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, "t3", page[0].ID)
	require.Equal(t, "t4", page[1].ID)

	last, err := svc.ListTasks(context.Background(), "alice", domain.PageQuery{Page: 3, Limit: 2})
	require.NoError(t, err)
	require.Len(t, last, 1)
	require.Equal(t, "t5", last[0].ID)
}

func TestTaskService_UpdateTaskPositions_AppliesBatch(t *testing.T) {
	repo := newMemTaskRepository(
		domain.Task{ID: "t1", OwnerID: "alice", Position: 10, Status: domain.TaskStatusPending, Column: domain.TaskStatusPending},
		domain.Task{ID: "t2", OwnerID: "alice", Position: 20, Status: domain.TaskStatusPending, Column: domain.TaskStatusPending},
	)
	svc := newTestTaskService(repo)

	err := svc.UpdateTaskPositions(context.Background(), "alice", []domain.TaskPositionUpdate{
		{TaskID: "t2", Column: domain.TaskStatusInProgress, NewPosition: 500},
		{TaskID: "t1", Column: domain.TaskStatusPending, NewPosition: 1500},
	})
	require.NoError(t, err)

	t1, t2 := repo.tasks["t1"], repo.tasks["t2"]
	require.Equal(t, float64(1500), t1.Position)
	require.Equal(t, domain.TaskStatusPending, t1.Status)
	require.Equal(t, float64(500), t2.Position)
	require.Equal(t, domain.TaskStatusInProgress, t2.Column)
	require.Equal(t, domain.TaskStatusInProgress, t2.Status)
}

func TestTaskService_UpdateTaskPositions_AllOrNothing(t *testing.T) {
	repo := newMemTaskRepository(
		domain.Task{ID: "t1", OwnerID: "alice", Position: 10, Status: domain.TaskStatusPending, Column: domain.TaskStatusPending},
		domain.Task{ID: "t2", OwnerID: "alice", Position: 20, Status: domain.TaskStatusPending, Column: domain.TaskStatusPending},
	)
	svc := newTestTaskService(repo)

	err := svc.UpdateTaskPositions(context.Background(), "alice", []domain.TaskPositionUpdate{
		{TaskID: "t1", Column: domain.TaskStatusCompleted, NewPosition: 99},
		{TaskID: "bogus-id", Column: domain.TaskStatusPending, NewPosition: 50},
	})
	require.ErrorIs(t, err, domain.ErrTaskNotFound)

	var notFound domain.TaskNotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, "bogus-id", notFound.TaskID)

	require.Equal(t, float64(10), repo.tasks["t1"].Position)
	require.Equal(t, domain.TaskStatusPending, repo.tasks["t1"].Column)
	require.Equal(t, float64(20), repo.tasks["t2"].Position)
}

func TestTaskService_UpdateTaskPositions_RejectsForeignTask(t *testing.T) {
	repo := newMemTaskRepository(
		domain.Task{ID: "mine", OwnerID: "alice", Position: 10, Status: domain.TaskStatusPending, Column: domain.TaskStatusPending},
		domain.Task{ID: "theirs", OwnerID: "bob", Position: 20, Status: domain.TaskStatusPending, Column: domain.TaskStatusPending},
	)
	svc := newTestTaskService(repo)

	err := svc.UpdateTaskPositions(context.Background(), "alice", []domain.TaskPositionUpdate{
		{TaskID: "mine", Column: domain.TaskStatusPending, NewPosition: 30},
		{TaskID: "theirs", Column: domain.TaskStatusPending, NewPosition: 5},
	})
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
	require.Equal(t, float64(10), repo.tasks["mine"].Position)
	require.Equal(t, float64(20), repo.tasks["theirs"].Position)
}

func TestTaskService_UpdateTaskPositions_StoreFailureRollsBack(t *testing.T) {
	repo := newMemTaskRepository(
		domain.Task{ID: "t1", OwnerID: "alice", Position: 10, Status: domain.TaskStatusPending, Column: domain.TaskStatusPending},
	)
	repo.updateErr = errStoreDown
	svc := newTestTaskService(repo)

	err := svc.UpdateTaskPositions(context.Background(), "alice", []domain.TaskPositionUpdate{
		{TaskID: "t1", Column: domain.TaskStatusCompleted, NewPosition: 99},
	})
	require.ErrorIs(t, err, errStoreDown)
	require.False(t, errors.Is(err, domain.ErrTaskNotFound))
	require.Equal(t, float64(10), repo.tasks["t1"].Position)
}
