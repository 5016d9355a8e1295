package domain

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

// PositionGap is the spacing between consecutive tasks appended to a column.
// Leaving gaps lets a client drop a task between two others without
// renumbering the rest of the column.
const PositionGap float64 = 1000

type Task struct {
	ID          string
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     *time.Time
	Position    float64
	Column      TaskStatus
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateTaskInput struct {
	Title       string
	Description string
	Priority    TaskPriority
	DueDate     *time.Time
}

// UpdateTaskInput carries a partial update; nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Priority    *TaskPriority
	DueDate     *time.Time
	Position    *float64
	Column      *TaskStatus
}

type TaskPositionUpdate struct {
	TaskID      string
	Column      TaskStatus
	NewPosition float64
}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// NextPosition returns the position for a task appended after last.
func NextPosition(last float64, found bool) float64 {
	if !found {
		return PositionGap
	}
	return last + PositionGap
}
