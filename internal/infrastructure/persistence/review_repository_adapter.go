package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/skillswap-backend/internal/domain/entity"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/jmoiron/sqlx"
)

type ReviewRepositoryAdapter struct {
	db *sqlx.DB
}

func NewReviewRepositoryAdapter(db *sqlx.DB) *ReviewRepositoryAdapter {
	return &ReviewRepositoryAdapter{db: db}
}

// Create сохраняет отзыв и пересчитанный рейтинг навыка в одной транзакции.
func (r *ReviewRepositoryAdapter) Create(ctx context.Context, review *entity.Review, skill *entity.Skill) error {
	err := withTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO skill_reviews (id, skill_id, author_id, rating, comment, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, review.ID, review.SkillID, review.AuthorID, review.Rating, review.Comment, review.CreatedAt)
		if err != nil {
			return err
		}

		// Рейтинг пересчитывается атомарно на стороне БД.
		err = tx.QueryRowxContext(ctx, `
			UPDATE skills
			SET rating = (rating * review_count + $2) / (review_count + 1),
			    review_count = review_count + 1,
			    updated_at = $3
			WHERE id = $1
			RETURNING rating, review_count
		`, skill.ID, review.Rating, skill.UpdatedAt).Scan(&skill.Rating, &skill.ReviewCount)
		if errors.Is(err, sql.ErrNoRows) {
			return apperror.ErrSkillNotFound
		}
		return err
	})

	switch {
	case err == nil:
		return nil
	case apperror.IsNotFound(err), pqCode(err) == pqForeignKeyViolation:
		return apperror.ErrSkillNotFound.WithDetail("skill_id", skill.ID.String())
	case pqCode(err) == pqUniqueViolation:
		return apperror.New(apperror.ErrCodeConsistency, "отзыв уже существует").WithDetail("review_id", review.ID.String())
	}
	return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить отзыв")
}

func (r *ReviewRepositoryAdapter) FindBySkillID(ctx context.Context, skillID uuid.UUID) ([]*entity.Review, error) {
	var rows []reviewRow
	query := `
		SELECT id, skill_id, author_id, rating, comment, created_at
		FROM skill_reviews WHERE skill_id = $1 ORDER BY created_at DESC
	`
	if err := r.db.SelectContext(ctx, &rows, query, skillID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить отзывы")
	}
	result := make([]*entity.Review, len(rows))
	for i, row := range rows {
		result[i] = &entity.Review{
			ID:        row.ID,
			SkillID:   row.SkillID,
			AuthorID:  row.AuthorID,
			Rating:    row.Rating,
			Comment:   row.Comment,
			CreatedAt: row.CreatedAt,
		}
	}
	return result, nil
}

func (r *ReviewRepositoryAdapter) CountFiveStarByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM skill_reviews r
		JOIN skills s ON s.id = r.skill_id
		WHERE s.owner_id = $1 AND r.rating = $2
	`
	if err := r.db.GetContext(ctx, &count, query, ownerID, entity.MaxRating); err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать отзывы")
	}
	return count, nil
}

type reviewRow struct {
	ID        uuid.UUID `db:"id"`
	SkillID   uuid.UUID `db:"skill_id"`
	AuthorID  uuid.UUID `db:"author_id"`
	Rating    int       `db:"rating"`
	Comment   string    `db:"comment"`
	CreatedAt time.Time `db:"created_at"`
}
