package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
)

type ReviewStore struct {
	mu      sync.RWMutex
	skills  *SkillStore
	reviews map[uuid.UUID][]*entity.Review
}

func NewReviewStore(skills *SkillStore) *ReviewStore {
	return &ReviewStore{
		skills:  skills,
		reviews: make(map[uuid.UUID][]*entity.Review),
	}
}

// Create сохраняет отзыв и обновляет рейтинг навыка. В skill записывается актуальная версия.
func (s *ReviewStore) Create(_ context.Context, review *entity.Review, skill *entity.Skill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := s.skills.applyReview(review.SkillID, review.Rating)
	if err != nil {
		return err
	}
	*skill = *updated

	cp := *review
	s.reviews[review.SkillID] = append(s.reviews[review.SkillID], &cp)
	return nil
}

// CountFiveStarByOwner учитывает только навыки, которые ещё есть в каталоге.
func (s *ReviewStore) CountFiveStarByOwner(_ context.Context, ownerID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for skillID, reviews := range s.reviews {
		if !s.skills.ownedBy(skillID, ownerID) {
			continue
		}
		for _, review := range reviews {
			if review.Rating == entity.MaxRating {
				count++
			}
		}
	}
	return count, nil
}

// FindBySkillID возвращает отзывы навыка, новые первыми.
func (s *ReviewStore) FindBySkillID(_ context.Context, skillID uuid.UUID) ([]*entity.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.reviews[skillID]
	result := make([]*entity.Review, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		cp := *stored[i]
		result = append(result, &cp)
	}
	return result, nil
}
