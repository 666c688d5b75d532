package request

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

type ListRequestsUseCase struct {
	requestRepo repository.SkillRequestRepository
}

func NewListRequestsUseCase(requestRepo repository.SkillRequestRepository) *ListRequestsUseCase {
	return &ListRequestsUseCase{requestRepo: requestRepo}
}

// Sent возвращает исходящие заявки пользователя, новые первыми.
func (uc *ListRequestsUseCase) Sent(ctx context.Context, userID uuid.UUID) ([]*entity.SkillRequest, error) {
	return uc.requestRepo.FindBySender(ctx, userID)
}

// Received возвращает входящие заявки пользователя, новые первыми.
func (uc *ListRequestsUseCase) Received(ctx context.Context, userID uuid.UUID) ([]*entity.SkillRequest, error) {
	return uc.requestRepo.FindByReceiver(ctx, userID)
}

type GetRequestUseCase struct {
	requestRepo repository.SkillRequestRepository
}

func NewGetRequestUseCase(requestRepo repository.SkillRequestRepository) *GetRequestUseCase {
	return &GetRequestUseCase{requestRepo: requestRepo}
}

func (uc *GetRequestUseCase) Execute(ctx context.Context, requestID, viewerID uuid.UUID) (*entity.SkillRequest, error) {
	request, err := uc.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !request.IsParticipant(viewerID) {
		return nil, apperror.ErrForbidden.WithDetail("request_id", requestID.String())
	}

	return request, nil
}
