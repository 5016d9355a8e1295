package validation

import (
	"slices"
	"strconv"
	"strings"

	"github.com/rahulserver/task-management-backend/internal/adapter/http/dto"
	"github.com/rahulserver/task-management-backend/internal/core/domain"
	"github.com/rahulserver/task-management-backend/pkg/apierrors"
)

// ParsePageQuery reads page, limit, sortBy and sortOrder from the query
// string. Missing values take the defaults in def.
func ParsePageQuery(q dto.ListQuery, def domain.PageQuery, sortFields []string, maxLimit int) (domain.PageQuery, []apierrors.FieldViolation) {
	var (
		query      domain.PageQuery
		violations []apierrors.FieldViolation
	)

	if raw := strings.TrimSpace(q.Page); raw != "" {
		page, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			violations = append(violations, violation("page", apierrors.MsgFieldInvalid, ""))
		case page < 1:
			violations = append(violations, violation("page", apierrors.MsgFieldMinValue, "1"))
		case page > domain.MaxPage:
			violations = append(violations, violation("page", apierrors.MsgFieldMaxValue, strconv.Itoa(domain.MaxPage)))
		default:
			query.Page = page
		}
	}

	if raw := strings.TrimSpace(q.Limit); raw != "" {
		limit, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			violations = append(violations, violation("limit", apierrors.MsgFieldInvalid, ""))
		case limit < 1:
			violations = append(violations, violation("limit", apierrors.MsgFieldMinValue, "1"))
		case limit > maxLimit:
			violations = append(violations, violation("limit", apierrors.MsgFieldMaxValue, strconv.Itoa(maxLimit)))
		default:
			query.Limit = limit
		}
	}

	if sortBy := strings.TrimSpace(q.SortBy); sortBy != "" {
		if !slices.Contains(sortFields, sortBy) {
			violations = append(violations, violation("sortBy", apierrors.MsgFieldOneOf, strings.Join(sortFields, ", ")))
		} else {
			query.SortBy = sortBy
		}
	}

	if order := strings.ToLower(strings.TrimSpace(q.SortOrder)); order != "" {
		if order != string(domain.SortAsc) && order != string(domain.SortDesc) {
			violations = append(violations, violation("sortOrder", apierrors.MsgFieldOneOf, "asc, desc"))
		} else {
			query.SortOrder = domain.SortOrder(order)
		}
	}

	return query.WithDefaults(def), violations
}
