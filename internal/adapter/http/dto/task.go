package dto

type TaskItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"dueDate,omitempty"`
	Position    float64 `json:"position"`
	Column      string  `json:"column"`
	CreatedBy   string  `json:"createdBy"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=100"`
	Description string  `json:"description" validate:"required,min=1,max=1000"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *string `json:"dueDate" validate:"omitempty,isodate"`
}

type UpdateTaskRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description" validate:"omitempty,min=1,max=1000"`
	Status      *string  `json:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
	Priority    *string  `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *string  `json:"dueDate" validate:"omitempty,isodate"`
	Position    *float64 `json:"position" validate:"omitempty,min=0"`
	Column      *string  `json:"column" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
}

type TaskPositionItem struct {
	TaskID      string   `json:"taskId" validate:"required"`
	Column      string   `json:"column" validate:"required,oneof=PENDING IN_PROGRESS COMPLETED"`
	NewPosition *float64 `json:"newPosition" validate:"required,min=0"`
}

type UpdateTaskPositionsRequest struct {
	Updates []TaskPositionItem `json:"updates" validate:"required,min=1,dive"`
}

type ListQuery struct {
	Page      string `form:"page"`
	Limit     string `form:"limit"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
}

type PageMeta struct {
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
}

type TaskList struct {
	Tasks []TaskItem `json:"tasks"`
	Page  PageMeta   `json:"pagination"`
}
