package handlers

import (
	"net/http"
	"time"

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

type TaskHandler struct {
	taskService ports.TaskService
	now         func() time.Time
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService, now: time.Now}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	input, violations := validation.BuildCreateTaskInput(req, h.now())
	if len(violations) > 0 {
		respondValidation(c, violations)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), middleware.GetUserID(c), input)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailCreateTask, "failed to create task")
		return
	}

	respond(c, http.StatusCreated, apierrors.MsgTaskCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	query, violations := validation.ParsePageQuery(listQuery(c), domain.DefaultTaskPage, domain.TaskSortFields, domain.MaxTaskPageLimit)
	if len(violations) > 0 {
		respondValidation(c, violations)
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), middleware.GetUserID(c), query)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailListTask, "failed to list tasks")
		return
	}

	respond(c, http.StatusOK, apierrors.MsgTasksFetched, dto.TaskList{
		Tasks: mapper.ToTaskItems(tasks),
		Page:  mapper.ToPageMeta(query),
	})
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := pathID(c, "id", apierrors.MsgInvalidTaskID)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), middleware.GetUserID(c), taskID)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgInternalError, "failed to get task", zap.String("task_id", taskID))
		return
	}

	respond(c, http.StatusOK, apierrors.MsgTaskFetched, mapper.ToTaskItem(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := pathID(c, "id", apierrors.MsgInvalidTaskID)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	input, violations := validation.BuildUpdateTaskInput(req, h.now())
	if len(violations) > 0 {
		respondValidation(c, violations)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), middleware.GetUserID(c), taskID, input)
	if err != nil {
		respondServiceError(c, err, apierrors.MsgFailUpdateTask, "failed to update task", zap.String("task_id", taskID))
		return
	}

	respond(c, http.StatusOK, apierrors.MsgTaskUpdated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := pathID(c, "id", apierrors.MsgInvalidTaskID)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), middleware.GetUserID(c), taskID); err != nil {
		respondServiceError(c, err, apierrors.MsgFailDeleteTask, "failed to delete task", zap.String("task_id", taskID))
		return
	}

	respond(c, http.StatusOK, apierrors.MsgTaskDeleted, nil)
}

func (h *TaskHandler) UpdateTaskPositions(c *gin.Context) {
	var req dto.UpdateTaskPositionsRequest
	if !bindJSON(c, &req) {
		return
	}

	updates, violations := validation.BuildTaskPositionUpdates(req)
	if len(violations) > 0 {
		respondValidation(c, violations)
		return
	}

	if err := h.taskService.UpdateTaskPositions(c.Request.Context(), middleware.GetUserID(c), updates); err != nil {
		respondServiceError(c, err, apierrors.MsgFailReorderTasks, "failed to update task positions", zap.Int("entries", len(updates)))
		return
	}

	respond(c, http.StatusOK, apierrors.MsgTaskPositionsUpdated, nil)
}
