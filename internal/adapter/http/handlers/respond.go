package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rahulserver/task-management-backend/internal/adapter/http/dto"
	"github.com/rahulserver/task-management-backend/internal/adapter/http/middleware"
	"github.com/rahulserver/task-management-backend/internal/core/domain"
	"github.com/rahulserver/task-management-backend/pkg/apierrors"
)

func respond(c *gin.Context, status int, msgKey string, data any) {
	c.JSON(status, dto.Envelope{
		Success: true,
		Data:    data,
		Message: apierrors.GetTransErrorMsg(msgKey, middleware.GetLang(c)),
	})
}

func respondError(c *gin.Context, status int, msgKey string) {
	c.JSON(status, apierrors.CreateError(status, msgKey, middleware.GetLang(c)))
}

func respondValidation(c *gin.Context, violations []apierrors.FieldViolation) {
	c.JSON(http.StatusBadRequest, apierrors.CreateValidationError(http.StatusBadRequest, violations, middleware.GetLang(c)))
}

// respondServiceError maps domain errors to their status codes. Anything
// unrecognised is logged and reported as failMsg with a 500.
func respondServiceError(c *gin.Context, err error, failMsg string, logMsg string, fields ...zap.Field) {
	lang := middleware.GetLang(c)

	var missingTask domain.TaskNotFoundError
	switch {
	case errors.As(err, &missingTask):
		c.JSON(http.StatusNotFound, apierrors.CreateErrorWithData(
			http.StatusNotFound, apierrors.MsgTaskNotFoundWithID, lang, map[string]any{"TaskID": missingTask.TaskID},
		))
	case errors.Is(err, domain.ErrTaskNotFound):
		respondError(c, http.StatusNotFound, apierrors.MsgTaskNotFound)
	case errors.Is(err, domain.ErrPostNotFound):
		respondError(c, http.StatusNotFound, apierrors.MsgPostNotFound)
	case errors.Is(err, domain.ErrCommentNotFound):
		respondError(c, http.StatusNotFound, apierrors.MsgCommentNotFound)
	case errors.Is(err, domain.ErrPostForbidden):
		respondError(c, http.StatusForbidden, apierrors.MsgForbiddenPost)
	default:
		fields = append(fields,
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("user_id", middleware.GetUserID(c)),
			zap.Error(err),
		)
		zap.L().Error(logMsg, fields...)
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, failMsg)
	}
}

// bindJSON decodes the body into req and answers 400 when it is malformed.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondError(c, http.StatusBadRequest, apierrors.MsgInvalidJSON)
		return false
	}
	return true
}

// pathID reads a UUID path parameter and answers 400 when it is malformed.
func pathID(c *gin.Context, name string, invalidMsg string) (string, bool) {
	id := c.Param(name)
	if err := uuid.Validate(id); err != nil {
		respondError(c, http.StatusBadRequest, invalidMsg)
		return "", false
	}
	return id, true
}

// listQuery reads the paging parameters as raw strings; ParsePageQuery
// reports anything malformed.
func listQuery(c *gin.Context) dto.ListQuery {
	return dto.ListQuery{
		Page:      c.Query("page"),
		Limit:     c.Query("limit"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
}
