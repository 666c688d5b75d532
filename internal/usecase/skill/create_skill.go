package skill

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

type CreateSkillInput struct {
	OwnerID     uuid.UUID
	Name        string
	Description string
	Category    string
	Level       string
	IsPaid      bool
	Price       *float64
}

type CreateSkillUseCase struct {
	skillRepo repository.SkillRepository
}

func NewCreateSkillUseCase(skillRepo repository.SkillRepository) *CreateSkillUseCase {
	return &CreateSkillUseCase{skillRepo: skillRepo}
}

func (uc *CreateSkillUseCase) Execute(ctx context.Context, input CreateSkillInput) (*entity.Skill, error) {
	category, err := valueobject.NewCategory(input.Category)
	if err != nil {
		return nil, err
	}

	level, err := valueobject.NewLevel(input.Level)
	if err != nil {
		return nil, err
	}

	pricing, err := valueobject.NewPricing(input.IsPaid, input.Price)
	if err != nil {
		return nil, err
	}

	skill, err := entity.NewSkill(input.OwnerID, input.Name, input.Description, category, level, pricing)
	if err != nil {
		return nil, err
	}

	if err := uc.skillRepo.Create(ctx, skill); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать навык")
	}

	return skill, nil
}
