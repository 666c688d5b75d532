package skill

import (
	"slices"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

type SortBy string

const (
	SortNewest SortBy = "newest"
	SortRating SortBy = "rating"
	SortPrice  SortBy = "price"
)

// ParseSortBy разбирает параметр сортировки. Пустая строка означает "без сортировки".
func ParseSortBy(value string) (SortBy, error) {
	switch s := SortBy(value); s {
	case "", SortNewest, SortRating, SortPrice:
		return s, nil
	}
	return "", apperror.New(apperror.ErrCodeValidation, "некорректный параметр сортировки").WithDetail("sort", value)
}

// SortSkills возвращает новый срез, упорядоченный по sortBy. Исходный срез не меняется.
//
//   - newest: по дате создания, новые первыми;
//   - rating: по рейтингу по убыванию, при равенстве новые первыми;
//   - price: бесплатные перед платными (между собой в исходном порядке), платные по возрастанию цены.
func SortSkills(skills []*entity.Skill, sortBy SortBy) []*entity.Skill {
	sorted := slices.Clone(skills)

	switch sortBy {
	case SortNewest:
		slices.SortStableFunc(sorted, compareNewest)
	case SortRating:
		slices.SortStableFunc(sorted, func(a, b *entity.Skill) int {
			switch {
			case a.Rating > b.Rating:
				return -1
			case a.Rating < b.Rating:
				return 1
			}
			return compareNewest(a, b)
		})
	case SortPrice:
		slices.SortStableFunc(sorted, comparePrice)
	}

	return sorted
}

func compareNewest(a, b *entity.Skill) int {
	return b.CreatedAt.Compare(a.CreatedAt)
}

func comparePrice(a, b *entity.Skill) int {
	priceA, paidA := a.Pricing.Price()
	priceB, paidB := b.Pricing.Price()

	switch {
	case !paidA && !paidB:
		return 0
	case !paidA:
		return -1
	case !paidB:
		return 1
	case priceA < priceB:
		return -1
	case priceA > priceB:
		return 1
	}
	return 0
}
