package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
)

// SkillFilter — условия выборки каталога. Все заданные поля объединяются через AND.
type SkillFilter struct {
	SearchText string
	Category   *valueobject.Category
	Level      *valueobject.Level
	PaidOnly   bool
	FreeOnly   bool
	OwnerID    *uuid.UUID
}

type SkillRepository interface {
	Create(ctx context.Context, skill *entity.Skill) error
	Update(ctx context.Context, skill *entity.Skill) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Skill, error)
	// List возвращает снимок навыков, удовлетворяющих фильтру, в порядке вставки.
	List(ctx context.Context, filter SkillFilter) ([]*entity.Skill, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
}

type ReviewRepository interface {
	// Create сохраняет отзыв и обновлённый рейтинг навыка одной операцией.
	Create(ctx context.Context, review *entity.Review, skill *entity.Skill) error
	FindBySkillID(ctx context.Context, skillID uuid.UUID) ([]*entity.Review, error)
	// CountFiveStarByOwner считает отзывы с высшей оценкой на все навыки владельца.
	CountFiveStarByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
}
