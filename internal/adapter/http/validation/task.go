package validation

import (
	"slices"
	"strings"
	"time"

	"github.com/rahulserver/task-management-backend/internal/adapter/http/dto"
	"github.com/rahulserver/task-management-backend/internal/core/domain"
	"github.com/rahulserver/task-management-backend/pkg/apierrors"
)

func BuildCreateTaskInput(req dto.CreateTaskRequest, now time.Time) (domain.CreateTaskInput, []apierrors.FieldViolation) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	violations := check(req)

	input := domain.CreateTaskInput{Title: req.Title, Description: req.Description}
	if req.Priority != nil {
		input.Priority = domain.TaskPriority(*req.Priority)
	}
	if req.DueDate != nil {
		dueDate, dateViolation := futureDate("dueDate", *req.DueDate, now)
		if dateViolation != nil {
			violations = appendUnique(violations, *dateViolation)
		}
		input.DueDate = dueDate
	}

	return input, violations
}

func BuildUpdateTaskInput(req dto.UpdateTaskRequest, now time.Time) (domain.UpdateTaskInput, []apierrors.FieldViolation) {
	if req.Title == nil && req.Description == nil && req.Status == nil && req.Priority == nil &&
		req.DueDate == nil && req.Position == nil && req.Column == nil {
		return domain.UpdateTaskInput{}, []apierrors.FieldViolation{violation("body", apierrors.MsgFieldNoUpdate, "")}
	}

	req.Title = trimmed(req.Title)
	req.Description = trimmed(req.Description)
	violations := check(req)

	input := domain.UpdateTaskInput{Title: req.Title, Description: req.Description}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.Column != nil {
		column := domain.TaskStatus(*req.Column)
		input.Column = &column
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		input.Priority = &priority
	}
	if req.Position != nil {
		position := *req.Position
		input.Position = &position
	}
	if req.DueDate != nil {
		dueDate, dateViolation := futureDate("dueDate", *req.DueDate, now)
		if dateViolation != nil {
			violations = appendUnique(violations, *dateViolation)
		}
		input.DueDate = dueDate
	}

	return input, violations
}

func BuildTaskPositionUpdates(req dto.UpdateTaskPositionsRequest) ([]domain.TaskPositionUpdate, []apierrors.FieldViolation) {
	violations := check(req)
	if len(violations) > 0 {
		return nil, violations
	}

	updates := make([]domain.TaskPositionUpdate, 0, len(req.Updates))
	for _, item := range req.Updates {
		updates = append(updates, domain.TaskPositionUpdate{
			TaskID:      strings.TrimSpace(item.TaskID),
			Column:      domain.TaskStatus(item.Column),
			NewPosition: *item.NewPosition,
		})
	}
	return updates, nil
}

// trimmed returns a trimmed copy of value, keeping nil as nil.
func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	out := strings.TrimSpace(*value)
	return &out
}

// futureDate parses value and requires it to be after now. Format errors are
// already reported by the isodate rule.
func futureDate(field, value string, now time.Time) (*time.Time, *apierrors.FieldViolation) {
	parsed, err := parseDate(value)
	if err != nil {
		v := violation(field, apierrors.MsgFieldInvalidDate, "")
		return nil, &v
	}
	if !parsed.After(now) {
		v := violation(field, apierrors.MsgFieldFutureDate, "")
		return nil, &v
	}
	return &parsed, nil
}

// appendUnique keeps at most one violation per field, the first one reported.
func appendUnique(violations []apierrors.FieldViolation, extra ...apierrors.FieldViolation) []apierrors.FieldViolation {
	for _, v := range extra {
		if !slices.ContainsFunc(violations, func(existing apierrors.FieldViolation) bool {
			return existing.Field == v.Field
		}) {
			violations = append(violations, v)
		}
	}
	return violations
}
