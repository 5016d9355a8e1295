package validation

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rahulserver/task-management-backend/pkg/apierrors"
)

const dateOnly = "2006-01-02"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := parseDate(fl.Field().String())
		return err == nil
	})
	return v
}

// parseDate accepts an RFC 3339 timestamp or a plain calendar date.
func parseDate(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed.UTC(), nil
	}
	return time.Parse(dateOnly, value)
}

// check runs the struct rules on payload and converts failures into field
// violations keyed by their JSON path.
func check(payload any) []apierrors.FieldViolation {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []apierrors.FieldViolation{{Field: "body", MessageID: apierrors.MsgFieldInvalid}}
	}

	violations := make([]apierrors.FieldViolation, 0, len(validationErrors))
	for _, fe := range validationErrors {
		violations = append(violations, toViolation(fe))
	}
	return violations
}

func toViolation(fe validator.FieldError) apierrors.FieldViolation {
	field := fe.Namespace()
	if _, rest, found := strings.Cut(field, "."); found {
		field = rest
	}

	violation := apierrors.FieldViolation{Field: field, Param: fe.Param()}
	switch fe.Tag() {
	case "required":
		violation.MessageID = apierrors.MsgFieldRequired
	case "min":
		violation.MessageID = sizedMessage(fe.Kind(), apierrors.MsgFieldMin, apierrors.MsgFieldMinItems, apierrors.MsgFieldMinValue)
	case "max":
		violation.MessageID = sizedMessage(fe.Kind(), apierrors.MsgFieldMax, apierrors.MsgFieldMaxItems, apierrors.MsgFieldMaxValue)
	case "oneof":
		violation.MessageID = apierrors.MsgFieldOneOf
		violation.Param = strings.ReplaceAll(fe.Param(), " ", ", ")
	case "unique":
		violation.MessageID = apierrors.MsgFieldUnique
	case "isodate":
		violation.MessageID = apierrors.MsgFieldInvalidDate
	default:
		violation.MessageID = apierrors.MsgFieldInvalid
	}
	return violation
}

func sizedMessage(kind reflect.Kind, text, items, value string) string {
	switch kind {
	case reflect.String:
		return text
	case reflect.Slice, reflect.Array, reflect.Map:
		return items
	default:
		return value
	}
}

func violation(field, messageID, param string) apierrors.FieldViolation {
	return apierrors.FieldViolation{Field: field, MessageID: messageID, Param: param}
}
