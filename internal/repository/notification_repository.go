package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gram-seva/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	ListByRecipient(ctx context.Context, ref domain.RecipientRef, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error)
	MarkAsRead(ctx context.Context, id uuid.UUID, ref domain.RecipientRef) (bool, error)
	MarkAllAsRead(ctx context.Context, ref domain.RecipientRef) (int64, error)
	CountUnread(ctx context.Context, ref domain.RecipientRef) (int64, error)
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// recipientColumn maps a kind to its column. Typed switch, never built
// from strings, so an invalid kind cannot reach the SQL text.
func recipientColumn(kind domain.RecipientKind) (string, error) {
	switch kind {
	case domain.KindCitizen:
		return "citizen_id", nil
	case domain.KindAdmin:
		return "admin_id", nil
	case domain.KindSuperAdmin:
		return "super_admin_id", nil
	default:
		return "", domain.ErrInvalidRecipient
	}
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	query := `
		INSERT INTO notifications (notification_id, citizen_id, admin_id, super_admin_id, type, title, message, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		notif.ID, notif.CitizenID, notif.AdminID, notif.SuperAdminID,
		notif.Type, notif.Title, notif.Message, notif.Data,
	).Scan(&notif.CreatedAt)
}

func (r *notificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	var notif domain.Notification
	query := `SELECT * FROM notifications WHERE notification_id = $1`
	err := r.db.GetContext(ctx, &notif, query, id)
	return &notif, err
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, ref domain.RecipientRef, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	params.Validate()

	column, err := recipientColumn(ref.Kind)
	if err != nil {
		return nil, 0, err
	}

	where := fmt.Sprintf("WHERE %s = $1", column)
	if unreadOnly {
		where += " AND is_read = FALSE"
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM notifications %s", where)
	if err := r.db.GetContext(ctx, &total, countQuery, ref.ID); err != nil {
		return nil, 0, err
	}

	var notifications []domain.Notification
	query := fmt.Sprintf(`
		SELECT * FROM notifications %s
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, where)
	err = r.db.SelectContext(ctx, &notifications, query, ref.ID, params.PageSize, params.Offset())
	return notifications, total, err
}

// MarkAsRead scopes the update to the recipient so one account cannot
// flip another's notification. Returns false when nothing matched:
// already read, not found, or not owned.
func (r *notificationRepository) MarkAsRead(ctx context.Context, id uuid.UUID, ref domain.RecipientRef) (bool, error) {
	column, err := recipientColumn(ref.Kind)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(`
		UPDATE notifications SET is_read = TRUE, read_at = NOW()
		WHERE notification_id = $1 AND %s = $2 AND is_read = FALSE`, column)

	result, err := r.db.ExecContext(ctx, query, id, ref.ID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, ref domain.RecipientRef) (int64, error) {
	column, err := recipientColumn(ref.Kind)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
		UPDATE notifications SET is_read = TRUE, read_at = NOW()
		WHERE %s = $1 AND is_read = FALSE`, column)

	result, err := r.db.ExecContext(ctx, query, ref.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *notificationRepository) CountUnread(ctx context.Context, ref domain.RecipientRef) (int64, error) {
	column, err := recipientColumn(ref.Kind)
	if err != nil {
		return 0, err
	}

	var count int64
	query := fmt.Sprintf(`SELECT COUNT(*) FROM notifications WHERE %s = $1 AND is_read = FALSE`, column)
	err = r.db.GetContext(ctx, &count, query, ref.ID)
	return count, err
}

func (r *notificationRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	query := `DELETE FROM notifications WHERE created_at < NOW() - make_interval(days => $1)`
	result, err := r.db.ExecContext(ctx, query, days)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
