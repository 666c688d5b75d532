package repository

import (
	"strings"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

func (f SkillFilter) Validate() error {
	if f.PaidOnly && f.FreeOnly {
		return apperror.New(apperror.ErrCodeValidation, "фильтры paidOnly и freeOnly взаимоисключающие")
	}
	if f.Category != nil && !f.Category.IsValid() {
		return apperror.New(apperror.ErrCodeValidation, "некорректная категория навыка").WithDetail("category", string(*f.Category))
	}
	if f.Level != nil && !f.Level.IsValid() {
		return apperror.New(apperror.ErrCodeValidation, "некорректный уровень навыка").WithDetail("level", string(*f.Level))
	}
	return nil
}

// Matches проверяет навык на соответствие фильтру.
// Поиск — подстрока без учёта регистра в названии или описании.
func (f SkillFilter) Matches(skill *entity.Skill) bool {
	if f.OwnerID != nil && skill.OwnerID != *f.OwnerID {
		return false
	}
	if f.Category != nil && skill.Category != *f.Category {
		return false
	}
	if f.Level != nil && skill.Level != *f.Level {
		return false
	}
	if f.PaidOnly && !skill.Pricing.IsPaid() {
		return false
	}
	if f.FreeOnly && skill.Pricing.IsPaid() {
		return false
	}
	if query := strings.ToLower(strings.TrimSpace(f.SearchText)); query != "" {
		return strings.Contains(strings.ToLower(skill.Name), query) ||
			strings.Contains(strings.ToLower(skill.Description), query)
	}
	return true
}
