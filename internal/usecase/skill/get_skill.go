package skill

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
)

type GetSkillUseCase struct {
	skillRepo repository.SkillRepository
}

func NewGetSkillUseCase(skillRepo repository.SkillRepository) *GetSkillUseCase {
	return &GetSkillUseCase{skillRepo: skillRepo}
}

func (uc *GetSkillUseCase) Execute(ctx context.Context, skillID uuid.UUID) (*entity.Skill, error) {
	return uc.skillRepo.FindByID(ctx, skillID)
}

type ListOwnerSkillsUseCase struct {
	skillRepo repository.SkillRepository
}

func NewListOwnerSkillsUseCase(skillRepo repository.SkillRepository) *ListOwnerSkillsUseCase {
	return &ListOwnerSkillsUseCase{skillRepo: skillRepo}
}

// Execute возвращает навыки владельца, новые первыми.
func (uc *ListOwnerSkillsUseCase) Execute(ctx context.Context, ownerID uuid.UUID) ([]*entity.Skill, error) {
	skills, err := uc.skillRepo.List(ctx, repository.SkillFilter{OwnerID: &ownerID})
	if err != nil {
		return nil, err
	}
	return SortSkills(skills, SortNewest), nil
}
