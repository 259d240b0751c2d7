package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gram-seva/internal/domain"
)

type AchievementRepository interface {
	AwardCitizen(ctx context.Context, citizenID uuid.UUID, achType domain.AchievementType) (bool, error)
	AwardAdmin(ctx context.Context, adminID uuid.UUID, achType domain.AchievementType) (bool, error)
	ListByCitizen(ctx context.Context, citizenID uuid.UUID) ([]domain.Achievement, error)
	ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]domain.Achievement, error)
}

type achievementRepository struct {
	db *sqlx.DB
}

func NewAchievementRepository(db *sqlx.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

// AwardCitizen is idempotent: the UNIQUE(owner_id, achievement_type)
// constraint plus ON CONFLICT DO NOTHING closes the race a
// check-then-insert would leave open. Returns true only when the row was
// newly inserted.
func (r *achievementRepository) AwardCitizen(ctx context.Context, citizenID uuid.UUID, achType domain.AchievementType) (bool, error) {
	query := `
		INSERT INTO citizen_achievements (achievement_id, owner_id, achievement_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner_id, achievement_type) DO NOTHING`

	result, err := r.db.ExecContext(ctx, query, uuid.New(), citizenID, achType)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *achievementRepository) AwardAdmin(ctx context.Context, adminID uuid.UUID, achType domain.AchievementType) (bool, error) {
	query := `
		INSERT INTO admin_achievements (achievement_id, owner_id, achievement_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner_id, achievement_type) DO NOTHING`

	result, err := r.db.ExecContext(ctx, query, uuid.New(), adminID, achType)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *achievementRepository) ListByCitizen(ctx context.Context, citizenID uuid.UUID) ([]domain.Achievement, error) {
	var achievements []domain.Achievement
	query := `SELECT * FROM citizen_achievements WHERE owner_id = $1 ORDER BY awarded_at`
	err := r.db.SelectContext(ctx, &achievements, query, citizenID)
	return achievements, err
}

func (r *achievementRepository) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]domain.Achievement, error) {
	var achievements []domain.Achievement
	query := `SELECT * FROM admin_achievements WHERE owner_id = $1 ORDER BY awarded_at`
	err := r.db.SelectContext(ctx, &achievements, query, adminID)
	return achievements, err
}
