package validation

import (
	"strings"

	"github.com/rahulserver/task-management-backend/internal/adapter/http/dto"
	"github.com/rahulserver/task-management-backend/internal/core/domain"
	"github.com/rahulserver/task-management-backend/pkg/apierrors"
)

func BuildCreatePostInput(req dto.CreatePostRequest) (domain.CreatePostInput, []apierrors.FieldViolation) {
	req.Caption = strings.TrimSpace(req.Caption)
	req.Tags = trimAll(req.Tags)
	violations := check(req)

	if req.Image != "" && !isImagePayload(req.Image) {
		violations = appendUnique(violations, violation("image", apierrors.MsgFieldInvalid, ""))
	}

	tags, tagViolations := normalizeTags(req.Tags)
	violations = appendUnique(violations, tagViolations...)

	input := domain.CreatePostInput{
		Caption:      req.Caption,
		ImagePayload: req.Image,
		Tags:         tags,
	}
	if req.Visibility != nil {
		input.Visibility = domain.PostVisibility(*req.Visibility)
	}
	return input, violations
}

func BuildUpdatePostInput(req dto.UpdatePostRequest) (domain.UpdatePostInput, []apierrors.FieldViolation) {
	if req.Caption == nil && req.Image == nil && req.Visibility == nil && req.Tags == nil {
		return domain.UpdatePostInput{}, []apierrors.FieldViolation{violation("body", apierrors.MsgFieldNoUpdate, "")}
	}

	req.Caption = trimmed(req.Caption)
	req.Tags = trimAll(req.Tags)
	violations := check(req)

	input := domain.UpdatePostInput{Caption: req.Caption}
	if req.Image != nil {
		if !isImagePayload(*req.Image) {
			violations = appendUnique(violations, violation("image", apierrors.MsgFieldInvalid, ""))
		}
		image := *req.Image
		input.ImagePayload = &image
	}
	if req.Visibility != nil {
		visibility := domain.PostVisibility(*req.Visibility)
		input.Visibility = &visibility
	}
	if req.Tags != nil {
		tags, tagViolations := normalizeTags(req.Tags)
		violations = appendUnique(violations, tagViolations...)
		input.Tags = tags
		input.TagsSet = true
	}
	return input, violations
}

func BuildCreateCommentInput(req dto.CreateCommentRequest) (domain.CreateCommentInput, []apierrors.FieldViolation) {
	req.Content = strings.TrimSpace(req.Content)
	return domain.CreateCommentInput{Content: req.Content}, check(req)
}

// trimAll trims every element into a new slice, keeping nil as nil.
func trimAll(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, value := range values {
		out[i] = strings.TrimSpace(value)
	}
	return out
}

// normalizeTags trims every tag and rejects blanks and duplicates that only
// differ by surrounding whitespace.
func normalizeTags(tags []string) ([]string, []apierrors.FieldViolation) {
	if tags == nil {
		return nil, nil
	}

	var violations []apierrors.FieldViolation
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			violations = appendUnique(violations, violation("tags", apierrors.MsgFieldInvalid, ""))
			continue
		}
		if _, dup := seen[trimmed]; dup {
			violations = appendUnique(violations, violation("tags", apierrors.MsgFieldUnique, ""))
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) > domain.MaxPostTags {
		violations = appendUnique(violations, violation("tags", apierrors.MsgFieldMaxItems, "10"))
	}
	return out, violations
}

// isImagePayload accepts base64 data URIs and remote http(s) URLs.
func isImagePayload(value string) bool {
	return strings.HasPrefix(value, "data:image/") ||
		strings.HasPrefix(value, "https://") ||
		strings.HasPrefix(value, "http://")
}
