package request

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

type CreateRequestInput struct {
	FromUserID        uuid.UUID
	ToUserID          uuid.UUID
	SkillID           uuid.UUID
	Message           string
	PreferredSchedule string
}

type CreateRequestUseCase struct {
	requestRepo repository.SkillRequestRepository
	skillRepo   repository.SkillRepository
}

func NewCreateRequestUseCase(requestRepo repository.SkillRequestRepository, skillRepo repository.SkillRepository) *CreateRequestUseCase {
	return &CreateRequestUseCase{
		requestRepo: requestRepo,
		skillRepo:   skillRepo,
	}
}

func (uc *CreateRequestUseCase) Execute(ctx context.Context, input CreateRequestInput) (*entity.SkillRequest, error) {
	if input.ToUserID != uuid.Nil && input.FromUserID == input.ToUserID {
		return nil, selfRequestError(input.FromUserID)
	}

	schedule, err := valueobject.NewSchedule(input.PreferredSchedule)
	if err != nil {
		return nil, err
	}

	skill, err := uc.skillRepo.FindByID(ctx, input.SkillID)
	if err != nil {
		return nil, err
	}

	// Без явного получателя заявка уходит владельцу навыка.
	toUserID := input.ToUserID
	if toUserID == uuid.Nil {
		toUserID = skill.OwnerID
		if input.FromUserID == toUserID {
			return nil, selfRequestError(input.FromUserID)
		}
	}

	request, err := entity.NewSkillRequest(input.FromUserID, toUserID, skill, input.Message, schedule)
	if err != nil {
		return nil, err
	}

	if err := uc.requestRepo.Create(ctx, request); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать заявку")
	}

	return request, nil
}

func selfRequestError(userID uuid.UUID) error {
	return apperror.New(apperror.ErrCodeValidation, "нельзя отправить заявку самому себе").
		WithDetail("user_id", userID.String())
}
