package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
)

type CreateSkillRequestRequest struct {
	ToUserID          string `json:"to_user_id" binding:"omitempty,uuid"`
	Message           string `json:"message" binding:"max=2000"`
	PreferredSchedule string `json:"preferred_schedule" binding:"max=64"`
}

type UpdateRequestStatusRequest struct {
	Status string `json:"status" binding:"required,request_status"`
}

type SkillRequestResponse struct {
	ID                uuid.UUID  `json:"id"`
	FromUserID        uuid.UUID  `json:"from_user_id"`
	ToUserID          uuid.UUID  `json:"to_user_id"`
	SkillID           uuid.UUID  `json:"skill_id"`
	SkillName         string     `json:"skill_name"`
	Message           string     `json:"message"`
	IsPaid            bool       `json:"is_paid"`
	Price             *float64   `json:"price"`
	PreferredSchedule string     `json:"preferred_schedule,omitempty"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

func ToSkillRequestResponse(req *entity.SkillRequest) SkillRequestResponse {
	return SkillRequestResponse{
		ID:                req.ID,
		FromUserID:        req.FromUserID,
		ToUserID:          req.ToUserID,
		SkillID:           req.SkillID,
		SkillName:         req.SkillName,
		Message:           req.Message,
		IsPaid:            req.Terms.IsPaid(),
		Price:             req.Terms.PricePtr(),
		PreferredSchedule: string(req.PreferredSchedule),
		Status:            string(req.Status),
		CreatedAt:         req.CreatedAt,
		UpdatedAt:         req.UpdatedAt,
		CompletedAt:       req.CompletedAt,
	}
}

func ToSkillRequestResponses(reqs []*entity.SkillRequest) []SkillRequestResponse {
	responses := make([]SkillRequestResponse, 0, len(reqs))
	for _, req := range reqs {
		responses = append(responses, ToSkillRequestResponse(req))
	}
	return responses
}
