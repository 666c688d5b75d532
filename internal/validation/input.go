package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Ограничения пользовательского ввода.
const (
	MaxSkillNameLength        = 120
	MaxSkillDescriptionLength = 5000
	MaxRequestMessageLength   = 2000
	MaxReviewCommentLength    = 2000
	MaxSearchQueryLength      = 200
	MaxPrice                  = 1000000.0
)

// ValidateLength проверяет длину строки в символах.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// FieldErrors превращает ошибки validator в карту "поле -> правило".
// Для остальных ошибок (битый JSON и т.п.) возвращает nil.
func FieldErrors(err error) map[string]any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		fields[strings.ToLower(fe.Field())] = rule
	}
	return fields
}
