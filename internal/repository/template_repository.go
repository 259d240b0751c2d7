package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"gram-seva/internal/domain"
)

type TemplateRepository interface {
	GetActiveByType(ctx context.Context, notifType domain.NotificationType) (*domain.NotificationTemplate, error)
}

type templateRepository struct {
	db *sqlx.DB
}

func NewTemplateRepository(db *sqlx.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) GetActiveByType(ctx context.Context, notifType domain.NotificationType) (*domain.NotificationTemplate, error) {
	var tmpl domain.NotificationTemplate
	query := `SELECT * FROM notification_templates WHERE type = $1 AND is_active = TRUE`

	err := r.db.GetContext(ctx, &tmpl, query, notifType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}
