package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/domain/repository"
	"github.com/ignatzorin/skillswap-backend/internal/domain/valueobject"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/jmoiron/sqlx"
)

const skillColumns = `id, owner_id, name, description, category, level, is_paid, price, rating, review_count, created_at, updated_at`

type SkillRepositoryAdapter struct {
	db *sqlx.DB
}

func NewSkillRepositoryAdapter(db *sqlx.DB) *SkillRepositoryAdapter {
	return &SkillRepositoryAdapter{db: db}
}

func (r *SkillRepositoryAdapter) Create(ctx context.Context, skill *entity.Skill) error {
	query := `
		INSERT INTO skills (id, owner_id, name, description, category, level, is_paid, price, rating, review_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		skill.ID, skill.OwnerID, skill.Name, skill.Description,
		string(skill.Category), string(skill.Level), skill.Pricing.IsPaid(), skill.Pricing.PricePtr(),
		skill.Rating, skill.ReviewCount, skill.CreatedAt, skill.UpdatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать навык")
	}
	return nil
}

func (r *SkillRepositoryAdapter) Update(ctx context.Context, skill *entity.Skill) error {
	// rating и review_count пишет только ReviewRepositoryAdapter.
	query := `
		UPDATE skills SET name = $2, description = $3, category = $4, level = $5,
		is_paid = $6, price = $7, updated_at = $8
		WHERE id = $1
		RETURNING rating, review_count
	`
	err := r.db.QueryRowxContext(ctx, query,
		skill.ID, skill.Name, skill.Description, string(skill.Category), string(skill.Level),
		skill.Pricing.IsPaid(), skill.Pricing.PricePtr(), skill.UpdatedAt,
	).Scan(&skill.Rating, &skill.ReviewCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperror.ErrSkillNotFound.WithDetail("skill_id", skill.ID.String())
		}
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить навык")
	}
	return nil
}

func (r *SkillRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось удалить навык")
	}
	return requireAffected(res, apperror.ErrSkillNotFound)
}

func (r *SkillRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Skill, error) {
	var row skillRow
	query := `SELECT ` + skillColumns + ` FROM skills WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrSkillNotFound.WithDetail("skill_id", id.String())
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить навык")
	}
	return row.toEntity(), nil
}

func (r *SkillRepositoryAdapter) List(ctx context.Context, filter repository.SkillFilter) ([]*entity.Skill, error) {
	query := `SELECT ` + skillColumns + ` FROM skills WHERE 1=1`
	args := []interface{}{}
	argNum := 1

	if filter.OwnerID != nil {
		query += fmt.Sprintf(" AND owner_id = $%d", argNum)
		args = append(args, *filter.OwnerID)
		argNum++
	}

	if filter.Category != nil {
		query += fmt.Sprintf(" AND category = $%d", argNum)
		args = append(args, string(*filter.Category))
		argNum++
	}

	if filter.Level != nil {
		query += fmt.Sprintf(" AND level = $%d", argNum)
		args = append(args, string(*filter.Level))
		argNum++
	}

	if filter.PaidOnly {
		query += " AND is_paid"
	}
	if filter.FreeOnly {
		query += " AND NOT is_paid"
	}

	if search := strings.TrimSpace(filter.SearchText); search != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", argNum, argNum)
		args = append(args, containsPattern(search))
	}

	query += " ORDER BY seq"

	var rows []skillRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить навыки")
	}

	result := make([]*entity.Skill, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

func (r *SkillRepositoryAdapter) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM skills WHERE owner_id = $1`, ownerID); err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать навыки")
	}
	return count, nil
}

func requireAffected(res sql.Result, notFound *apperror.AppError) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось проверить результат запроса")
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

type skillRow struct {
	ID          uuid.UUID `db:"id"`
	OwnerID     uuid.UUID `db:"owner_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Category    string    `db:"category"`
	Level       string    `db:"level"`
	IsPaid      bool      `db:"is_paid"`
	Price       *float64  `db:"price"`
	Rating      float64   `db:"rating"`
	ReviewCount int       `db:"review_count"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (s *skillRow) toEntity() *entity.Skill {
	pricing, err := valueobject.NewPricing(s.IsPaid, s.Price)
	if err != nil {
		pricing = valueobject.Free()
	}
	return &entity.Skill{
		ID:          s.ID,
		OwnerID:     s.OwnerID,
		Name:        s.Name,
		Description: s.Description,
		Category:    valueobject.Category(s.Category),
		Level:       valueobject.Level(s.Level),
		Pricing:     pricing,
		Rating:      s.Rating,
		ReviewCount: s.ReviewCount,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
