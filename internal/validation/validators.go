package validation

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
)

// RegisterValidators регистрирует доменные теги валидации.
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("skill_category", SkillCategory)
	_ = v.RegisterValidation("skill_level", SkillLevel)
	_ = v.RegisterValidation("request_status", RequestStatus)
}

// RegisterGinValidators подключает доменные теги к валидатору gin binding.
func RegisterGinValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterValidators(v)
	}
}

// SkillCategory пропускает пустое значение: обязательность задаётся тегом required.
func SkillCategory(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	return val == "" || valueobject.Category(val).IsValid()
}

func SkillLevel(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	return val == "" || valueobject.Level(val).IsValid()
}

func RequestStatus(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	return val == "" || valueobject.RequestStatus(val).IsValid()
}
