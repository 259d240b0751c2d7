package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gram-seva/internal/domain"
)

type IssueRepository interface {
	Create(ctx context.Context, issue *domain.Issue) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Issue, error)
	List(ctx context.Context, filter domain.IssueFilter, params domain.PaginationParams) ([]domain.Issue, int64, error)
	UpdateStatus(ctx context.Context, issue *domain.Issue) error
	Assign(ctx context.Context, id, adminID uuid.UUID) error
	CountByCitizen(ctx context.Context, citizenID uuid.UUID) (int64, error)
	CountWithPhotoByCitizen(ctx context.Context, citizenID uuid.UUID) (int64, error)
	AdminStats(ctx context.Context, adminID uuid.UUID) (*domain.AdminIssueStats, error)
}

type issueRepository struct {
	db *sqlx.DB
}

func NewIssueRepository(db *sqlx.DB) IssueRepository {
	return &issueRepository{db: db}
}

func (r *issueRepository) Create(ctx context.Context, issue *domain.Issue) error {
	query := `
		INSERT INTO issues (issue_id, citizen_id, title, description, category, location,
			latitude, longitude, accuracy, photo_path, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		issue.ID, issue.CitizenID, issue.Title, issue.Description, issue.Category,
		issue.Location, issue.Latitude, issue.Longitude, issue.Accuracy,
		issue.PhotoPath, issue.Status,
	).Scan(&issue.CreatedAt, &issue.UpdatedAt)
}

func (r *issueRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Issue, error) {
	var issue domain.Issue
	query := `SELECT * FROM issues WHERE issue_id = $1`

	err := r.db.GetContext(ctx, &issue, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

func (r *issueRepository) List(ctx context.Context, filter domain.IssueFilter, params domain.PaginationParams) ([]domain.Issue, int64, error) {
	params.Validate()

	conditions := []string{}
	args := []interface{}{}

	if filter.CitizenID != nil {
		args = append(args, *filter.CitizenID)
		conditions = append(conditions, fmt.Sprintf("citizen_id = $%d", len(args)))
	}
	if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		conditions = append(conditions, fmt.Sprintf("assigned_to = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM issues"+where, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, params.PageSize, params.Offset())
	query := fmt.Sprintf(
		"SELECT * FROM issues%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args),
	)

	var issues []domain.Issue
	err := r.db.SelectContext(ctx, &issues, query, args...)
	return issues, total, err
}

func (r *issueRepository) UpdateStatus(ctx context.Context, issue *domain.Issue) error {
	query := `
		UPDATE issues
		SET status = $2, admin_notes = $3, resolution_photo_path = $4, updated_at = NOW()
		WHERE issue_id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		issue.ID, issue.Status, issue.AdminNotes, issue.ResolutionPhotoPath,
	).Scan(&issue.UpdatedAt)
}

func (r *issueRepository) Assign(ctx context.Context, id, adminID uuid.UUID) error {
	query := `UPDATE issues SET assigned_to = $2, updated_at = NOW() WHERE issue_id = $1`
	result, err := r.db.ExecContext(ctx, query, id, adminID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("issue not found")
	}
	return nil
}

func (r *issueRepository) CountByCitizen(ctx context.Context, citizenID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM issues WHERE citizen_id = $1`
	err := r.db.GetContext(ctx, &count, query, citizenID)
	return count, err
}

func (r *issueRepository) CountWithPhotoByCitizen(ctx context.Context, citizenID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM issues WHERE citizen_id = $1 AND photo_path IS NOT NULL`
	err := r.db.GetContext(ctx, &count, query, citizenID)
	return count, err
}

// AdminStats aggregates the numbers the achievement evaluator needs in a
// single round trip. Resolution time is measured from creation to the
// last update of resolved issues.
func (r *issueRepository) AdminStats(ctx context.Context, adminID uuid.UUID) (*domain.AdminIssueStats, error) {
	var stats domain.AdminIssueStats
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'Resolved') AS resolved,
			AVG(EXTRACT(EPOCH FROM (updated_at - created_at)) / 3600)
				FILTER (WHERE status = 'Resolved') AS avg_resolution_hours
		FROM issues
		WHERE assigned_to = $1`

	err := r.db.GetContext(ctx, &stats, query, adminID)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
