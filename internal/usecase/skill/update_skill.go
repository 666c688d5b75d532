package skill

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

type UpdateSkillUseCase struct {
	skillRepo repository.SkillRepository
}

func NewUpdateSkillUseCase(skillRepo repository.SkillRepository) *UpdateSkillUseCase {
	return &UpdateSkillUseCase{skillRepo: skillRepo}
}

func (uc *UpdateSkillUseCase) Execute(ctx context.Context, skillID, requesterID uuid.UUID, patch entity.SkillPatch) (*entity.Skill, error) {
	skill, err := uc.skillRepo.FindByID(ctx, skillID)
	if err != nil {
		return nil, err
	}

	if !skill.IsOwnedBy(requesterID) {
		return nil, apperror.ErrForbidden.WithDetail("skill_id", skillID.String())
	}

	if patch.IsEmpty() {
		return skill, nil
	}

	if err := skill.ApplyPatch(patch); err != nil {
		return nil, err
	}

	if err := uc.skillRepo.Update(ctx, skill); err != nil {
		return nil, err
	}

	return skill, nil
}

type DeleteSkillUseCase struct {
	skillRepo repository.SkillRepository
}

func NewDeleteSkillUseCase(skillRepo repository.SkillRepository) *DeleteSkillUseCase {
	return &DeleteSkillUseCase{skillRepo: skillRepo}
}

// Execute удаляет навык. Повторное удаление возвращает NOT_FOUND.
// Заявки по навыку остаются: их условия зафиксированы при создании.
func (uc *DeleteSkillUseCase) Execute(ctx context.Context, skillID, requesterID uuid.UUID) error {
	skill, err := uc.skillRepo.FindByID(ctx, skillID)
	if err != nil {
		return err
	}

	if !skill.IsOwnedBy(requesterID) {
		return apperror.ErrForbidden.WithDetail("skill_id", skillID.String())
	}

	return uc.skillRepo.Delete(ctx, skillID)
}
