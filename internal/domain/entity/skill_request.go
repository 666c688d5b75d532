package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

// SkillRequest — заявка на обмен навыком между отправителем (учеником) и получателем (владельцем навыка).
// Условия оплаты копируются из навыка при создании и дальше от него не зависят.
type SkillRequest struct {
	ID                uuid.UUID
	FromUserID        uuid.UUID
	ToUserID          uuid.UUID
	SkillID           uuid.UUID
	SkillName         string
	Message           string
	Terms             valueobject.Pricing
	PreferredSchedule valueobject.Schedule
	Status            valueobject.RequestStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CompletedAt       *time.Time
}

func NewSkillRequest(fromUserID, toUserID uuid.UUID, skill *Skill, message string, schedule valueobject.Schedule) (*SkillRequest, error) {
	if fromUserID == toUserID {
		return nil, apperror.New(apperror.ErrCodeValidation, "нельзя отправить заявку самому себе").
			WithDetail("user_id", fromUserID.String())
	}
	if !skill.IsOwnedBy(toUserID) {
		return nil, apperror.New(apperror.ErrCodeConsistency, "получатель заявки не является владельцем навыка").
			WithDetail("skill_id", skill.ID.String()).
			WithDetail("to_user_id", toUserID.String())
	}

	now := time.Now().UTC()
	return &SkillRequest{
		ID:                uuid.New(),
		FromUserID:        fromUserID,
		ToUserID:          toUserID,
		SkillID:           skill.ID,
		SkillName:         skill.Name,
		Message:           strings.TrimSpace(message),
		Terms:             skill.Pricing,
		PreferredSchedule: schedule,
		Status:            valueobject.RequestStatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// Transition переводит заявку в target от имени actorID.
// Сначала проверяется наличие ребра в графе, затем права участника.
func (r *SkillRequest) Transition(actorID uuid.UUID, target valueobject.RequestStatus, policy valueobject.CompletionPolicy) error {
	if !r.Status.CanTransitionTo(target) {
		return r.invalidTransition(target)
	}
	if !r.CanPerform(actorID, target, policy) {
		return apperror.New(apperror.ErrCodeForbidden, "недостаточно прав для изменения статуса заявки").
			WithDetail("request_id", r.ID.String()).
			WithDetail("from", string(r.Status)).
			WithDetail("to", string(target))
	}

	now := time.Now().UTC()
	r.Status = target
	r.UpdatedAt = now
	if target == valueobject.RequestStatusCompleted {
		r.CompletedAt = &now
	}
	return nil
}

// CanPerform сообщает, может ли actorID выполнить переход в target.
// Одобрить или отклонить может только получатель, завершить — в зависимости от политики.
func (r *SkillRequest) CanPerform(actorID uuid.UUID, target valueobject.RequestStatus, policy valueobject.CompletionPolicy) bool {
	switch target {
	case valueobject.RequestStatusApproved, valueobject.RequestStatusRejected:
		return actorID == r.ToUserID
	case valueobject.RequestStatusCompleted:
		if policy == valueobject.CompletionByReceiver {
			return actorID == r.ToUserID
		}
		return r.IsParticipant(actorID)
	}
	return false
}

func (r *SkillRequest) invalidTransition(target valueobject.RequestStatus) error {
	return apperror.New(apperror.ErrCodeInvalidTransition, "недопустимый переход статуса заявки").
		WithDetail("request_id", r.ID.String()).
		WithDetail("from", string(r.Status)).
		WithDetail("to", string(target))
}

// InvalidTransitionFrom формирует ошибку для проигравшего в гонке: статус уже сменился на current.
func (r *SkillRequest) InvalidTransitionFrom(current valueobject.RequestStatus, target valueobject.RequestStatus) error {
	cp := *r
	cp.Status = current
	return cp.invalidTransition(target)
}

func (r *SkillRequest) IsParticipant(userID uuid.UUID) bool {
	return r.FromUserID == userID || r.ToUserID == userID
}

func (r *SkillRequest) IsPending() bool {
	return r.Status == valueobject.RequestStatusPending
}

func (r *SkillRequest) Clone() *SkillRequest {
	cp := *r
	if r.CompletedAt != nil {
		completedAt := *r.CompletedAt
		cp.CompletedAt = &completedAt
	}
	return &cp
}
