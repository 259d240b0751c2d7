package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gram-seva/internal/domain"
)

// Super admin accounts are seeded out of band; the repository only reads.
type SuperAdminRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SuperAdmin, error)
	GetByUsername(ctx context.Context, username string) (*domain.SuperAdmin, error)
}

type superAdminRepository struct {
	db *sqlx.DB
}

func NewSuperAdminRepository(db *sqlx.DB) SuperAdminRepository {
	return &superAdminRepository{db: db}
}

func (r *superAdminRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SuperAdmin, error) {
	var sa domain.SuperAdmin
	query := `SELECT * FROM super_admins WHERE super_admin_id = $1`

	err := r.db.GetContext(ctx, &sa, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sa, nil
}

func (r *superAdminRepository) GetByUsername(ctx context.Context, username string) (*domain.SuperAdmin, error) {
	var sa domain.SuperAdmin
	query := `SELECT * FROM super_admins WHERE username = $1`

	err := r.db.GetContext(ctx, &sa, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sa, nil
}
