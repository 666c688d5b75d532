package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
)

type CreateSkillRequest struct {
	Name        string   `json:"name" binding:"required,max=120"`
	Description string   `json:"description" binding:"required,max=5000"`
	Category    string   `json:"category" binding:"required,skill_category"`
	Level       string   `json:"level" binding:"required,skill_level"`
	IsPaid      bool     `json:"is_paid"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0,lte=1000000"`
}

// UpdateSkillRequest — частичное обновление: отсутствующие поля не меняются.
type UpdateSkillRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=120"`
	Description *string  `json:"description" binding:"omitempty,max=5000"`
	Category    *string  `json:"category" binding:"omitempty,skill_category"`
	Level       *string  `json:"level" binding:"omitempty,skill_level"`
	IsPaid      *bool    `json:"is_paid"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0,lte=1000000"`
}

func (r UpdateSkillRequest) ToPatch() entity.SkillPatch {
	return entity.SkillPatch{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Level:       r.Level,
		IsPaid:      r.IsPaid,
		Price:       r.Price,
	}
}

type AddReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

type SkillResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Level       string    `json:"level"`
	IsPaid      bool      `json:"is_paid"`
	Price       *float64  `json:"price"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToSkillResponse(skill *entity.Skill) SkillResponse {
	return SkillResponse{
		ID:          skill.ID,
		OwnerID:     skill.OwnerID,
		Name:        skill.Name,
		Description: skill.Description,
		Category:    string(skill.Category),
		Level:       string(skill.Level),
		IsPaid:      skill.Pricing.IsPaid(),
		Price:       skill.Pricing.PricePtr(),
		Rating:      skill.Rating,
		ReviewCount: skill.ReviewCount,
		CreatedAt:   skill.CreatedAt,
		UpdatedAt:   skill.UpdatedAt,
	}
}

func ToSkillResponses(skills []*entity.Skill) []SkillResponse {
	responses := make([]SkillResponse, 0, len(skills))
	for _, skill := range skills {
		responses = append(responses, ToSkillResponse(skill))
	}
	return responses
}

type ReviewResponse struct {
	ID        uuid.UUID      `json:"id"`
	SkillID   uuid.UUID      `json:"skill_id"`
	AuthorID  uuid.UUID      `json:"author_id"`
	Rating    int            `json:"rating"`
	Comment   string         `json:"comment"`
	CreatedAt time.Time      `json:"created_at"`
	Skill     *SkillResponse `json:"skill,omitempty"`
}

// ToReviewResponse прикладывает навык с пересчитанным рейтингом, если он передан.
func ToReviewResponse(review *entity.Review, skill *entity.Skill) ReviewResponse {
	resp := ReviewResponse{
		ID:        review.ID,
		SkillID:   review.SkillID,
		AuthorID:  review.AuthorID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
	if skill != nil {
		s := ToSkillResponse(skill)
		resp.Skill = &s
	}
	return resp
}

func ToReviewResponses(reviews []*entity.Review) []ReviewResponse {
	responses := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		responses = append(responses, ToReviewResponse(review, nil))
	}
	return responses
}
