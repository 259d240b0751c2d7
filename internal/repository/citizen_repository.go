package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gram-seva/internal/domain"
)

type CitizenRepository interface {
	UpsertWithCode(ctx context.Context, phone, name, code string) (*domain.Citizen, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Citizen, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Citizen, error)
	SetCode(ctx context.Context, id uuid.UUID, code string) error
	ClearCode(ctx context.Context, phone string) error
	MarkVerified(ctx context.Context, id uuid.UUID) error
	UpdateName(ctx context.Context, id uuid.UUID, fullName string) error
	SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error
}

type citizenRepository struct {
	db *sqlx.DB
}

func NewCitizenRepository(db *sqlx.DB) CitizenRepository {
	return &citizenRepository{db: db}
}

// UpsertWithCode inserts a new citizen row keyed by phone, or overwrites
// the pending code and name on an existing row. Verified rows keep their
// verified flag; the caller decides whether the phone is eligible first.
func (r *citizenRepository) UpsertWithCode(ctx context.Context, phone, name, code string) (*domain.Citizen, error) {
	var citizen domain.Citizen
	query := `
		INSERT INTO citizens (citizen_id, phone, full_name, otp_code)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (phone) DO UPDATE
		SET full_name = EXCLUDED.full_name, otp_code = EXCLUDED.otp_code, updated_at = NOW()
		RETURNING *`

	err := r.db.GetContext(ctx, &citizen, query, uuid.New(), phone, name, code)
	if err != nil {
		return nil, err
	}
	return &citizen, nil
}

func (r *citizenRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Citizen, error) {
	var citizen domain.Citizen
	query := `SELECT * FROM citizens WHERE citizen_id = $1`

	err := r.db.GetContext(ctx, &citizen, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &citizen, nil
}

func (r *citizenRepository) GetByPhone(ctx context.Context, phone string) (*domain.Citizen, error) {
	var citizen domain.Citizen
	query := `SELECT * FROM citizens WHERE phone = $1`

	err := r.db.GetContext(ctx, &citizen, query, phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &citizen, nil
}

func (r *citizenRepository) SetCode(ctx context.Context, id uuid.UUID, code string) error {
	query := `UPDATE citizens SET otp_code = $2, updated_at = NOW() WHERE citizen_id = $1`
	_, err := r.db.ExecContext(ctx, query, id, code)
	return err
}

// ClearCode nulls the stored code after a successful verification so the
// same code can never be replayed.
func (r *citizenRepository) ClearCode(ctx context.Context, phone string) error {
	query := `UPDATE citizens SET otp_code = NULL, updated_at = NOW() WHERE phone = $1`
	_, err := r.db.ExecContext(ctx, query, phone)
	return err
}

func (r *citizenRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE citizens SET is_verified = TRUE, updated_at = NOW() WHERE citizen_id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *citizenRepository) UpdateName(ctx context.Context, id uuid.UUID, fullName string) error {
	query := `UPDATE citizens SET full_name = $2, updated_at = NOW() WHERE citizen_id = $1`
	_, err := r.db.ExecContext(ctx, query, id, fullName)
	return err
}

func (r *citizenRepository) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error {
	query := `UPDATE citizens SET is_blocked = $2, updated_at = NOW() WHERE citizen_id = $1`
	_, err := r.db.ExecContext(ctx, query, id, blocked)
	return err
}
