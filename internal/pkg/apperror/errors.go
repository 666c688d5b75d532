package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound          ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized      ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden         ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest        ErrorCode = "BAD_REQUEST"
	ErrCodeConsistency       ErrorCode = "CONSISTENCY_ERROR"
	ErrCodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
	ErrCodeInternal          ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation        ErrorCode = "VALIDATION_ERROR"
	ErrCodeDatabaseError     ErrorCode = "DATABASE_ERROR"
)

// AppError — ошибка приложения с кодом, HTTP статусом и контекстом для клиента.
type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	// Details содержит идентификатор проблемной сущности и прочий контекст (например, from/to перехода).
	Details map[string]any
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetail возвращает копию ошибки с добавленным полем контекста.
// Копия нужна, чтобы не портить общие переменные вроде ErrSkillNotFound.
func (e *AppError) WithDetail(key string, value any) *AppError {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value

	cp := *e
	cp.Details = details
	return &cp
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeBadRequest, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeConsistency, ErrCodeInvalidTransition:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf возвращает код ошибки или пустую строку, если это не AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

func IsForbidden(err error) bool {
	return CodeOf(err) == ErrCodeForbidden
}

func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeValidation
}

func IsConsistency(err error) bool {
	return CodeOf(err) == ErrCodeConsistency
}

func IsInvalidTransition(err error) bool {
	return CodeOf(err) == ErrCodeInvalidTransition
}

var (
	ErrSkillNotFound   = New(ErrCodeNotFound, "навык не найден")
	ErrRequestNotFound = New(ErrCodeNotFound, "заявка не найдена")
	ErrUnauthorized    = New(ErrCodeUnauthorized, "требуется авторизация")
	ErrForbidden       = New(ErrCodeForbidden, "недостаточно прав")
)
