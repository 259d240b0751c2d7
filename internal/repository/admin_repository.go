package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gram-seva/internal/domain"
)

type AdminRepository interface {
	Create(ctx context.Context, admin *domain.PanchayatAdmin) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PanchayatAdmin, error)
	GetByUsername(ctx context.Context, username string) (*domain.PanchayatAdmin, error)
	ListActive(ctx context.Context) ([]domain.PanchayatAdmin, error)
	List(ctx context.Context, params domain.PaginationParams) ([]domain.PanchayatAdmin, int64, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

type adminRepository struct {
	db *sqlx.DB
}

func NewAdminRepository(db *sqlx.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, admin *domain.PanchayatAdmin) error {
	query := `
		INSERT INTO panchayat_admins (admin_id, username, password_hash, full_name, email, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		admin.ID, admin.Username, admin.PasswordHash, admin.FullName, admin.Email, admin.IsActive,
	).Scan(&admin.CreatedAt, &admin.UpdatedAt)
}

func (r *adminRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PanchayatAdmin, error) {
	var admin domain.PanchayatAdmin
	query := `SELECT * FROM panchayat_admins WHERE admin_id = $1`

	err := r.db.GetContext(ctx, &admin, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*domain.PanchayatAdmin, error) {
	var admin domain.PanchayatAdmin
	query := `SELECT * FROM panchayat_admins WHERE username = $1`

	err := r.db.GetContext(ctx, &admin, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) ListActive(ctx context.Context) ([]domain.PanchayatAdmin, error) {
	var admins []domain.PanchayatAdmin
	query := `SELECT * FROM panchayat_admins WHERE is_active = TRUE ORDER BY created_at`

	err := r.db.SelectContext(ctx, &admins, query)
	return admins, err
}

func (r *adminRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.PanchayatAdmin, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM panchayat_admins`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	var admins []domain.PanchayatAdmin
	query := `
		SELECT * FROM panchayat_admins
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &admins, query, params.PageSize, params.Offset())
	return admins, total, err
}

func (r *adminRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE panchayat_admins SET is_active = $2, updated_at = NOW() WHERE admin_id = $1`
	result, err := r.db.ExecContext(ctx, query, id, active)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("admin not found")
	}
	return nil
}

func (r *adminRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM panchayat_admins WHERE username = $1)`
	err := r.db.GetContext(ctx, &exists, query, username)
	return exists, err
}
