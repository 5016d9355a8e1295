package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrPostForbidden   = errors.New("access denied to this post")
)

// TaskNotFoundError names the task that could not be resolved for the caller.
type TaskNotFoundError struct {
	TaskID string
}

func (e TaskNotFoundError) Error() string {
	return fmt.Sprintf("task %s not found", e.TaskID)
}

func (e TaskNotFoundError) Unwrap() error {
	return ErrTaskNotFound
}
