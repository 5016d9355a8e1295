package apierrors

import (
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"

	"github.com/rahulserver/task-management-backend/pkg/translator"
)

// JsonErr is the error envelope returned by every endpoint.
type JsonErr struct {
	Success    bool         `json:"success"`
	Message    string       `json:"error"`
	StatusCode int          `json:"statusCode"`
	Errors     []FieldError `json:"errors,omitempty"`
}

// FieldError is one translated validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldViolation is an untranslated validation failure. MessageID is rendered
// with the Field and Param template values.
type FieldViolation struct {
	Field     string
	MessageID string
	Param     string
}

func (e JsonErr) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.StatusCode, e.Message)
}

// CreateError generates a JsonErr with a translated message.
func CreateError(code int, msgKey string, lang string) JsonErr {
	return CreateErrorWithData(code, msgKey, lang, nil)
}

func CreateErrorWithData(code int, msgKey string, lang string, data map[string]any) JsonErr {
	return JsonErr{
		Success:    false,
		Message:    Translate(msgKey, lang, data),
		StatusCode: code,
	}
}

// CreateValidationError builds a 400 envelope listing every field violation.
func CreateValidationError(code int, violations []FieldViolation, lang string) JsonErr {
	err := CreateError(code, MsgValidationFailed, lang)
	err.Errors = make([]FieldError, 0, len(violations))
	for _, violation := range violations {
		err.Errors = append(err.Errors, FieldError{
			Field: violation.Field,
			Message: Translate(violation.MessageID, lang, map[string]any{
				"Field": violation.Field,
				"Param": violation.Param,
			}),
		})
	}
	return err
}

// GetTransErrorMsg retrieves the translated error message.
func GetTransErrorMsg(msgKey string, lang string) string {
	return Translate(msgKey, lang, nil)
}

// Translate renders msgKey in lang, falling back to English and then to the
// key itself.
func Translate(msgKey string, lang string, data map[string]any) string {
	if translator.Translator == nil {
		return msgKey
	}
	l := i18n.NewLocalizer(translator.Translator, lang, translator.LanguageEn)
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: msgKey, TemplateData: data})
	if err != nil {
		zap.L().Warn("translation not found", zap.String("lang", lang), zap.String("message_id", msgKey), zap.Error(err))
		return msgKey
	}
	return msg
}
