package request

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

type TransitionRequestUseCase struct {
	requestRepo repository.SkillRequestRepository
	policy      valueobject.CompletionPolicy
}

func NewTransitionRequestUseCase(requestRepo repository.SkillRequestRepository, policy valueobject.CompletionPolicy) *TransitionRequestUseCase {
	if policy == "" {
		policy = valueobject.CompletionByEither
	}
	return &TransitionRequestUseCase{
		requestRepo: requestRepo,
		policy:      policy,
	}
}

// Execute переводит заявку в новый статус от имени actorID.
// Запись выполняется через compare-and-set: из двух одновременных переходов побеждает один,
// второй получает INVALID_TRANSITION с фактическим статусом.
func (uc *TransitionRequestUseCase) Execute(ctx context.Context, requestID, actorID uuid.UUID, newStatus string) (*entity.SkillRequest, error) {
	target, err := valueobject.NewRequestStatus(newStatus)
	if err != nil {
		return nil, err
	}

	request, err := uc.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	expected := request.Status
	if err := request.Transition(actorID, target, uc.policy); err != nil {
		return nil, err
	}

	err = uc.requestRepo.UpdateStatus(ctx, request, expected)
	if errors.Is(err, repository.ErrStatusChanged) {
		current, findErr := uc.requestRepo.FindByID(ctx, requestID)
		if findErr != nil {
			return nil, findErr
		}
		return nil, request.InvalidTransitionFrom(current.Status, target)
	}
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить статус заявки")
	}

	return request, nil
}
