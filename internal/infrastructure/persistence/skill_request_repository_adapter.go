package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/jmoiron/sqlx"
)

const requestColumns = `id, from_user_id, to_user_id, skill_id, skill_name, message, is_paid, price,
	preferred_schedule, status, created_at, updated_at, completed_at`

type SkillRequestRepositoryAdapter struct {
	db *sqlx.DB
}

func NewSkillRequestRepositoryAdapter(db *sqlx.DB) *SkillRequestRepositoryAdapter {
	return &SkillRequestRepositoryAdapter{db: db}
}

func (r *SkillRequestRepositoryAdapter) Create(ctx context.Context, request *entity.SkillRequest) error {
	query := `
		INSERT INTO skill_requests (id, from_user_id, to_user_id, skill_id, skill_name, message, is_paid, price,
			preferred_schedule, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		request.ID, request.FromUserID, request.ToUserID, request.SkillID, request.SkillName, request.Message,
		request.Terms.IsPaid(), request.Terms.PricePtr(), string(request.PreferredSchedule),
		string(request.Status), request.CreatedAt, request.UpdatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать заявку")
	}
	return nil
}

// UpdateStatus записывает статус условным UPDATE. 0 затронутых строк при существующей заявке
// означает, что статус уже сменил другой запрос.
func (r *SkillRequestRepositoryAdapter) UpdateStatus(ctx context.Context, request *entity.SkillRequest, expected valueobject.RequestStatus) error {
	query := `
		UPDATE skill_requests SET status = $2, updated_at = $3, completed_at = $4
		WHERE id = $1 AND status = $5
	`
	res, err := r.db.ExecContext(ctx, query,
		request.ID, string(request.Status), request.UpdatedAt, request.CompletedAt, string(expected),
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить статус заявки")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось проверить результат запроса")
	}
	if affected == 0 {
		var exists bool
		if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM skill_requests WHERE id = $1)`, request.ID); err != nil {
			return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить заявку")
		}
		if !exists {
			return apperror.ErrRequestNotFound.WithDetail("request_id", request.ID.String())
		}
		return repository.ErrStatusChanged
	}
	return nil
}

func (r *SkillRequestRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.SkillRequest, error) {
	var row skillRequestRow
	query := `SELECT ` + requestColumns + ` FROM skill_requests WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrRequestNotFound.WithDetail("request_id", id.String())
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить заявку")
	}
	return row.toEntity(), nil
}

func (r *SkillRequestRepositoryAdapter) FindBySender(ctx context.Context, fromUserID uuid.UUID) ([]*entity.SkillRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM skill_requests WHERE from_user_id = $1 ORDER BY created_at DESC, seq DESC`
	return r.selectRequests(ctx, query, fromUserID)
}

func (r *SkillRequestRepositoryAdapter) FindByReceiver(ctx context.Context, toUserID uuid.UUID) ([]*entity.SkillRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM skill_requests WHERE to_user_id = $1 ORDER BY created_at DESC, seq DESC`
	return r.selectRequests(ctx, query, toUserID)
}

func (r *SkillRequestRepositoryAdapter) CountCompletedByParticipant(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM skill_requests WHERE status = $2 AND (from_user_id = $1 OR to_user_id = $1)`
	if err := r.db.GetContext(ctx, &count, query, userID, string(valueobject.RequestStatusCompleted)); err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать обмены")
	}
	return count, nil
}

func (r *SkillRequestRepositoryAdapter) selectRequests(ctx context.Context, query string, args ...interface{}) ([]*entity.SkillRequest, error) {
	var rows []skillRequestRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить заявки")
	}
	result := make([]*entity.SkillRequest, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

type skillRequestRow struct {
	ID                uuid.UUID  `db:"id"`
	FromUserID        uuid.UUID  `db:"from_user_id"`
	ToUserID          uuid.UUID  `db:"to_user_id"`
	SkillID           uuid.UUID  `db:"skill_id"`
	SkillName         string     `db:"skill_name"`
	Message           string     `db:"message"`
	IsPaid            bool       `db:"is_paid"`
	Price             *float64   `db:"price"`
	PreferredSchedule string     `db:"preferred_schedule"`
	Status            string     `db:"status"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
	CompletedAt       *time.Time `db:"completed_at"`
}

func (r *skillRequestRow) toEntity() *entity.SkillRequest {
	terms, err := valueobject.NewPricing(r.IsPaid, r.Price)
	if err != nil {
		terms = valueobject.Free()
	}
	return &entity.SkillRequest{
		ID:                r.ID,
		FromUserID:        r.FromUserID,
		ToUserID:          r.ToUserID,
		SkillID:           r.SkillID,
		SkillName:         r.SkillName,
		Message:           r.Message,
		Terms:             terms,
		PreferredSchedule: valueobject.Schedule(r.PreferredSchedule),
		Status:            valueobject.RequestStatus(r.Status),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
		CompletedAt:       r.CompletedAt,
	}
}
