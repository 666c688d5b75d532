package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
)

// ErrStatusChanged возвращается UpdateStatus, если статус заявки в хранилище уже не равен ожидаемому.
var ErrStatusChanged = errors.New("request status changed concurrently")

type SkillRequestRepository interface {
	Create(ctx context.Context, request *entity.SkillRequest) error
	// UpdateStatus атомарно записывает новый статус, только если текущий равен expected (compare-and-set).
	UpdateStatus(ctx context.Context, request *entity.SkillRequest, expected valueobject.RequestStatus) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SkillRequest, error)
	FindBySender(ctx context.Context, fromUserID uuid.UUID) ([]*entity.SkillRequest, error)
	FindByReceiver(ctx context.Context, toUserID uuid.UUID) ([]*entity.SkillRequest, error)
	CountCompletedByParticipant(ctx context.Context, userID uuid.UUID) (int, error)
}
