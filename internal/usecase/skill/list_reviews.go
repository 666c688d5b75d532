package skill

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
)

type ListReviewsUseCase struct {
	skillRepo  repository.SkillRepository
	reviewRepo repository.ReviewRepository
}

func NewListReviewsUseCase(skillRepo repository.SkillRepository, reviewRepo repository.ReviewRepository) *ListReviewsUseCase {
	return &ListReviewsUseCase{
		skillRepo:  skillRepo,
		reviewRepo: reviewRepo,
	}
}

// Execute возвращает отзывы навыка, новые первыми. Для несуществующего навыка — NOT_FOUND.
func (uc *ListReviewsUseCase) Execute(ctx context.Context, skillID uuid.UUID) ([]*entity.Review, error) {
	if _, err := uc.skillRepo.FindByID(ctx, skillID); err != nil {
		return nil, err
	}
	return uc.reviewRepo.FindBySkillID(ctx, skillID)
}
