package valueobject

import "github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"

type Category string

const (
	CategoryProgramming Category = "programming"
	CategoryLanguages   Category = "languages"
	CategoryMusic       Category = "music"
	CategoryCooking     Category = "cooking"
	CategoryDesign      Category = "design"
	CategoryBusiness    Category = "business"
	CategoryFitness     Category = "fitness"
	CategoryArt         Category = "art"
	CategoryAcademic    Category = "academic"
	CategoryOther       Category = "other"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryProgramming, CategoryLanguages, CategoryMusic, CategoryCooking, CategoryDesign,
		CategoryBusiness, CategoryFitness, CategoryArt, CategoryAcademic, CategoryOther:
		return true
	}
	return false
}

func NewCategory(category string) (Category, error) {
	c := Category(category)
	if !c.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректная категория навыка").WithDetail("category", category)
	}
	return c, nil
}

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelExpert       Level = "expert"
)

func (l Level) IsValid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert:
		return true
	}
	return false
}

func NewLevel(level string) (Level, error) {
	l := Level(level)
	if !l.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный уровень навыка").WithDetail("level", level)
	}
	return l, nil
}
