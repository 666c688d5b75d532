package skill

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
)

type AddReviewInput struct {
	SkillID  uuid.UUID
	AuthorID uuid.UUID
	Rating   int
	Comment  string
}

type AddReviewUseCase struct {
	skillRepo  repository.SkillRepository
	reviewRepo repository.ReviewRepository
}

func NewAddReviewUseCase(skillRepo repository.SkillRepository, reviewRepo repository.ReviewRepository) *AddReviewUseCase {
	return &AddReviewUseCase{
		skillRepo:  skillRepo,
		reviewRepo: reviewRepo,
	}
}

// Execute добавляет отзыв и пересчитывает средний рейтинг навыка.
func (uc *AddReviewUseCase) Execute(ctx context.Context, input AddReviewInput) (*entity.Review, *entity.Skill, error) {
	skill, err := uc.skillRepo.FindByID(ctx, input.SkillID)
	if err != nil {
		return nil, nil, err
	}

	review, err := entity.NewReview(skill, input.AuthorID, input.Rating, input.Comment)
	if err != nil {
		return nil, nil, err
	}

	skill.ApplyRating(review.Rating)

	if err := uc.reviewRepo.Create(ctx, review, skill); err != nil {
		return nil, nil, err
	}

	return review, skill, nil
}
