package skill

import (
	"context"
	"iter"
	"slices"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type ListSkillsInput struct {
	Filter repository.SkillFilter
	SortBy SortBy
	Limit  int
	Offset int
}

type ListSkillsUseCase struct {
	skillRepo repository.SkillRepository
}

func NewListSkillsUseCase(skillRepo repository.SkillRepository) *ListSkillsUseCase {
	return &ListSkillsUseCase{skillRepo: skillRepo}
}

// Execute возвращает ленивую последовательность навыков по фильтру.
// Снимок берётся в момент вызова, поэтому последовательность можно обходить повторно.
func (uc *ListSkillsUseCase) Execute(ctx context.Context, filter repository.SkillFilter) (iter.Seq[*entity.Skill], error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := uc.skillRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return slices.Values(snapshot), nil
}

// ExecutePage применяет фильтр, сортировку и пагинацию. Возвращает страницу и общее количество.
func (uc *ListSkillsUseCase) ExecutePage(ctx context.Context, input ListSkillsInput) ([]*entity.Skill, int, error) {
	seq, err := uc.Execute(ctx, input.Filter)
	if err != nil {
		return nil, 0, err
	}

	skills := slices.Collect(seq)
	if input.SortBy != "" {
		skills = SortSkills(skills, input.SortBy)
	}

	total := len(skills)
	limit, offset := NormalizePage(input.Limit, input.Offset)
	if offset >= total {
		return []*entity.Skill{}, total, nil
	}

	end := min(offset+limit, total)
	return skills[offset:end], total, nil
}

// NormalizePage приводит limit к (0, 100] (по умолчанию 20), а offset к неотрицательному.
func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
