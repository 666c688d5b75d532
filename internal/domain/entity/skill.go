package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

type Skill struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	Category    valueobject.Category
	Level       valueobject.Level
	Pricing     valueobject.Pricing
	// Rating — среднее по отзывам, 0 пока отзывов нет.
	Rating      float64
	ReviewCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SkillPatch — частичное обновление навыка. nil означает "не менять".
type SkillPatch struct {
	Name        *string
	Description *string
	Category    *string
	Level       *string
	IsPaid      *bool
	Price       *float64
}

func (p SkillPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Category == nil &&
		p.Level == nil && p.IsPaid == nil && p.Price == nil
}

func NewSkill(ownerID uuid.UUID, name, description string, category valueobject.Category, level valueobject.Level, pricing valueobject.Pricing) (*Skill, error) {
	if ownerID == uuid.Nil {
		return nil, apperror.New(apperror.ErrCodeValidation, "владелец навыка обязателен")
	}

	now := time.Now().UTC()
	skill := &Skill{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Category:    category,
		Level:       level,
		Pricing:     pricing,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := skill.validate(); err != nil {
		return nil, err
	}
	return skill, nil
}

func (s *Skill) validate() error {
	if s.Name == "" {
		return apperror.New(apperror.ErrCodeValidation, "название навыка обязательно")
	}
	if s.Description == "" {
		return apperror.New(apperror.ErrCodeValidation, "описание навыка обязательно")
	}
	if !s.Category.IsValid() {
		return apperror.New(apperror.ErrCodeValidation, "некорректная категория навыка").WithDetail("category", string(s.Category))
	}
	if !s.Level.IsValid() {
		return apperror.New(apperror.ErrCodeValidation, "некорректный уровень навыка").WithDetail("level", string(s.Level))
	}
	return nil
}

// ApplyPatch применяет изменения владельца. Навык меняется только если все поля прошли проверку.
func (s *Skill) ApplyPatch(patch SkillPatch) error {
	next := *s

	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		next.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Category != nil {
		category, err := valueobject.NewCategory(*patch.Category)
		if err != nil {
			return err
		}
		next.Category = category
	}
	if patch.Level != nil {
		level, err := valueobject.NewLevel(*patch.Level)
		if err != nil {
			return err
		}
		next.Level = level
	}
	if patch.IsPaid != nil || patch.Price != nil {
		isPaid := s.Pricing.IsPaid()
		if patch.IsPaid != nil {
			isPaid = *patch.IsPaid
		}
		price := patch.Price
		if price == nil {
			price = s.Pricing.PricePtr()
		}
		pricing, err := valueobject.NewPricing(isPaid, price)
		if err != nil {
			return err
		}
		next.Pricing = pricing
	}

	if err := next.validate(); err != nil {
		return err
	}

	next.UpdatedAt = time.Now().UTC()
	*s = next
	return nil
}

// ApplyRating пересчитывает средний рейтинг с учётом нового отзыва.
func (s *Skill) ApplyRating(rating int) {
	total := s.Rating*float64(s.ReviewCount) + float64(rating)
	s.ReviewCount++
	s.Rating = total / float64(s.ReviewCount)
	s.UpdatedAt = time.Now().UTC()
}

func (s *Skill) IsOwnedBy(userID uuid.UUID) bool {
	return s.OwnerID == userID
}

// Clone возвращает независимую копию. Skill не содержит ссылочных полей.
func (s *Skill) Clone() *Skill {
	cp := *s
	return &cp
}
