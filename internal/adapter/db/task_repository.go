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

const taskColumns = `id, title, description, status, priority, due_date, position, board_column, created_by, created_at, updated_at`

const (
	maxPositionQuery = `SELECT MAX(position) FROM tasks WHERE created_by = ? AND status = ?`

	insertTaskQuery = `
INSERT INTO tasks (id, title, description, status, priority, due_date, position, board_column, created_by, created_at, updated_at)
VALUES (:id, :title, :description, :status, :priority, :due_date, :position, :board_column, :created_by, :created_at, :updated_at)`

	getTaskQuery = `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND created_by = ?`

	updateTaskQuery = `
UPDATE tasks SET
  title = :title,
  description = :description,
  status = :status,
  priority = :priority,
  due_date = :due_date,
  position = :position,
  board_column = :board_column,
  updated_at = :updated_at
WHERE id = :id AND created_by = :created_by`

	deleteTaskQuery = `DELETE FROM tasks WHERE id = ? AND created_by = ?`
)

var taskSortColumns = map[string]string{
	domain.SortByCreatedAt: "created_at",
	domain.SortByTitle:     "title",
	domain.SortByPriority:  "FIELD(priority, 'LOW', 'MEDIUM', 'HIGH')",
	domain.SortByDueDate:   "due_date",
	domain.SortByPosition:  "position",
}

type TaskRepository struct {
	db   *sqlx.DB
	ext  sqlx.ExtContext
	inTx bool
}

type taskRow struct {
	ID          string       `db:"id"`
	Title       string       `db:"title"`
	Description string       `db:"description"`
	Status      string       `db:"status"`
	Priority    string       `db:"priority"`
	DueDate     sql.NullTime `db:"due_date"`
	Position    float64      `db:"position"`
	Column      string       `db:"board_column"`
	CreatedBy   string       `db:"created_by"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db, ext: db}
}

func (r *TaskRepository) MaxPosition(ctx context.Context, ownerID string, status domain.TaskStatus) (float64, bool, error) {
	var position sql.NullFloat64
	if err := sqlx.GetContext(ctx, r.ext, &position, maxPositionQuery, ownerID, string(status)); err != nil {
		return 0, false, fmt.Errorf("max task position: %w", err)
	}
	return position.Float64, position.Valid, nil
}

func (r *TaskRepository) InsertTask(ctx context.Context, task domain.Task) error {
	if _, err := sqlx.NamedExecContext(ctx, r.ext, insertTaskQuery, mapDomainTaskToRow(task)); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepository) GetTask(ctx context.Context, ownerID, taskID string) (domain.Task, error) {
	query := getTaskQuery
	if r.inTx {
		query += " FOR UPDATE"
	}

	var row taskRow
	if err := sqlx.GetContext(ctx, r.ext, &row, query, taskID, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, fmt.Errorf("get task: %w", err)
	}
	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) ListTasks(ctx context.Context, ownerID string, query domain.PageQuery) ([]domain.Task, error) {
	orderBy, ok := taskSortColumns[query.SortBy]
	if !ok {
		orderBy = taskSortColumns[domain.SortByPosition]
	}
	direction := "ASC"
	if query.SortOrder == domain.SortDesc {
		direction = "DESC"
	}

	stmt := fmt.Sprintf(
		`SELECT %s FROM tasks WHERE created_by = ? ORDER BY %s %s, id ASC LIMIT ? OFFSET ?`,
		taskColumns, orderBy, direction,
	)

	var rows []taskRow
	if err := sqlx.SelectContext(ctx, r.ext, &rows, stmt, ownerID, query.Limit, query.Offset()); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}
	return tasks, nil
}

func (r *TaskRepository) UpdateTask(ctx context.Context, task domain.Task) error {
	result, err := sqlx.NamedExecContext(ctx, r.ext, updateTaskQuery, mapDomainTaskToRow(task))
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	// MySQL reports zero affected rows when nothing changed, so only a
	// missing row is treated as not found.
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		if _, err := r.GetTask(ctx, task.OwnerID, task.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *TaskRepository) DeleteTask(ctx context.Context, ownerID, taskID string) (bool, error) {
	result, err := r.ext.ExecContext(ctx, deleteTaskQuery, taskID, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return affected > 0, nil
}

func (r *TaskRepository) WithinTx(ctx context.Context, fn func(repo ports.TaskRepository) error) error {
	if r.inTx {
		return fn(r)
	}
	return withinTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return fn(&TaskRepository{db: r.db, ext: tx, inTx: true})
	})
}

func mapDomainTaskToRow(task domain.Task) taskRow {
	row := taskRow{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		Position:    task.Position,
		Column:      string(task.Column),
		CreatedBy:   task.OwnerID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.DueDate != nil {
		row.DueDate = sql.NullTime{Time: *task.DueDate, Valid: true}
	}
	return row
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Status:      domain.TaskStatus(row.Status),
		Priority:    domain.TaskPriority(row.Priority),
		Position:    row.Position,
		Column:      domain.TaskStatus(row.Column),
		OwnerID:     row.CreatedBy,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}

	if row.DueDate.Valid {
		value := row.DueDate.Time
		task.DueDate = &value
	}

	return task
}
