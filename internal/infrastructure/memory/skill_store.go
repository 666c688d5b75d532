package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

// SkillStore хранит навыки в памяти. Наружу отдаются только копии.
type SkillStore struct {
	mu     sync.RWMutex
	skills map[uuid.UUID]*entity.Skill
	order  []uuid.UUID
}

func NewSkillStore() *SkillStore {
	return &SkillStore{skills: make(map[uuid.UUID]*entity.Skill)}
}

func (s *SkillStore) Create(_ context.Context, skill *entity.Skill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.skills[skill.ID]; exists {
		return apperror.New(apperror.ErrCodeConsistency, "навык уже существует").WithDetail("skill_id", skill.ID.String())
	}
	s.skills[skill.ID] = skill.Clone()
	s.order = append(s.order, skill.ID)
	return nil
}

// Update переносит на сохранённый навык только поля, которые меняет владелец.
// Рейтинг и число отзывов ведёт ReviewStore; в skill возвращаются их текущие значения.
func (s *SkillStore) Update(_ context.Context, skill *entity.Skill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.skills[skill.ID]
	if !exists {
		return apperror.ErrSkillNotFound.WithDetail("skill_id", skill.ID.String())
	}
	stored.Name = skill.Name
	stored.Description = skill.Description
	stored.Category = skill.Category
	stored.Level = skill.Level
	stored.Pricing = skill.Pricing
	stored.UpdatedAt = skill.UpdatedAt

	skill.Rating = stored.Rating
	skill.ReviewCount = stored.ReviewCount
	return nil
}

func (s *SkillStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.skills[id]; !exists {
		return apperror.ErrSkillNotFound.WithDetail("skill_id", id.String())
	}
	delete(s.skills, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *SkillStore) FindByID(_ context.Context, id uuid.UUID) (*entity.Skill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	skill, ok := s.skills[id]
	if !ok {
		return nil, apperror.ErrSkillNotFound.WithDetail("skill_id", id.String())
	}
	return skill.Clone(), nil
}

// List возвращает копии подходящих навыков в порядке добавления.
func (s *SkillStore) List(_ context.Context, filter repository.SkillFilter) ([]*entity.Skill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*entity.Skill, 0, len(s.order))
	for _, id := range s.order {
		if skill := s.skills[id]; filter.Matches(skill) {
			result = append(result, skill.Clone())
		}
	}
	return result, nil
}

func (s *SkillStore) CountByOwner(_ context.Context, ownerID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, skill := range s.skills {
		if skill.IsOwnedBy(ownerID) {
			count++
		}
	}
	return count, nil
}

func (s *SkillStore) ownedBy(id, ownerID uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	skill, ok := s.skills[id]
	return ok && skill.IsOwnedBy(ownerID)
}

// applyReview пересчитывает рейтинг по текущей сохранённой версии навыка.
func (s *SkillStore) applyReview(id uuid.UUID, rating int) (*entity.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.skills[id]
	if !ok {
		return nil, apperror.ErrSkillNotFound.WithDetail("skill_id", id.String())
	}
	stored.ApplyRating(rating)
	return stored.Clone(), nil
}
