package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

// MaxRating — высшая оценка отзыва.
const MaxRating = 5

type Review struct {
	ID        uuid.UUID
	SkillID   uuid.UUID
	AuthorID  uuid.UUID
	Rating    int
	Comment   string
	CreatedAt time.Time
}

func NewReview(skill *Skill, authorID uuid.UUID, rating int, comment string) (*Review, error) {
	if rating < 1 || rating > MaxRating {
		return nil, apperror.New(apperror.ErrCodeValidation, "оценка должна быть от 1 до 5").WithDetail("rating", rating)
	}
	if skill.IsOwnedBy(authorID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "нельзя оставить отзыв на собственный навык").
			WithDetail("skill_id", skill.ID.String())
	}

	return &Review{
		ID:        uuid.New(),
		SkillID:   skill.ID,
		AuthorID:  authorID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
		CreatedAt: time.Now().UTC(),
	}, nil
}
