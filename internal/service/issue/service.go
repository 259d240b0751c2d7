package issue

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"

	"gram-seva/internal/domain"
	"gram-seva/internal/repository"
	"gram-seva/internal/service/achievement"
	"gram-seva/internal/service/notification"
	"gram-seva/internal/service/photo"
)

var (
	ErrIssueNotFound     = errors.New("issue not found")
	ErrInvalidCategory   = errors.New("unknown issue category")
	ErrInvalidStatus     = errors.New("unknown issue status")
	ErrInvalidTransition = errors.New("issue status can only move forward")
	ErrNotAssigned       = errors.New("issue is not assigned to this admin")
	ErrAdminNotFound     = errors.New("admin not found or inactive")
)

// PhotoUpload carries an optional multipart photo into the service.
type PhotoUpload struct {
	MimeType string
	Size     int64
	Reader   io.Reader
}

type Service interface {
	Create(ctx context.Context, citizen *domain.Citizen, input domain.CreateIssueInput, upload *PhotoUpload) (*domain.Issue, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Issue, error)
	List(ctx context.Context, filter domain.IssueFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Issue], error)
	Assign(ctx context.Context, issueID, adminID uuid.UUID) (*domain.Issue, error)
	UpdateStatus(ctx context.Context, adminID, issueID uuid.UUID, input domain.UpdateIssueStatusInput, upload *PhotoUpload) (*domain.Issue, error)
}

type service struct {
	issueRepo repository.IssueRepository
	adminRepo repository.AdminRepository
	photoSvc  photo.Service
	notifSvc  notification.Service
	achSvc    achievement.Service
}

func NewService(
	issueRepo repository.IssueRepository,
	adminRepo repository.AdminRepository,
	photoSvc photo.Service,
	notifSvc notification.Service,
	achSvc achievement.Service,
) Service {
	return &service{
		issueRepo: issueRepo,
		adminRepo: adminRepo,
		photoSvc:  photoSvc,
		notifSvc:  notifSvc,
		achSvc:    achSvc,
	}
}

// Create persists the issue, then runs the side effects — admin
// fan-out and achievement evaluation. Both are non-fatal: the citizen's
// submission stands even if every side effect fails.
func (s *service) Create(ctx context.Context, citizen *domain.Citizen, input domain.CreateIssueInput, upload *PhotoUpload) (*domain.Issue, error) {
	if !input.Category.IsValid() {
		return nil, ErrInvalidCategory
	}

	issue := &domain.Issue{
		ID:          uuid.New(),
		CitizenID:   citizen.ID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Location:    input.Location,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Accuracy:    input.Accuracy,
		Status:      domain.StatusPending,
	}

	if upload != nil {
		storagePath, err := s.photoSvc.Upload(ctx, "issues", upload.MimeType, upload.Size, upload.Reader)
		if err != nil {
			return nil, err
		}
		issue.PhotoPath = &storagePath
	}

	if err := s.issueRepo.Create(ctx, issue); err != nil {
		if issue.PhotoPath != nil {
			s.photoSvc.Remove(ctx, *issue.PhotoPath)
		}
		return nil, err
	}

	s.notifSvc.NotifyNewIssue(ctx, issue, citizen)
	s.achSvc.EvaluateCitizen(ctx, citizen.ID)

	s.resolveURLs(issue)
	return issue, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Issue, error) {
	issue, err := s.issueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, ErrIssueNotFound
	}
	s.resolveURLs(issue)
	return issue, nil
}

func (s *service) List(ctx context.Context, filter domain.IssueFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Issue], error) {
	issues, total, err := s.issueRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Issue]{}, err
	}
	for i := range issues {
		s.resolveURLs(&issues[i])
	}
	return domain.NewPaginatedResponse(issues, params.Page, params.PageSize, total), nil
}

func (s *service) Assign(ctx context.Context, issueID, adminID uuid.UUID) (*domain.Issue, error) {
	issue, err := s.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, ErrIssueNotFound
	}

	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if admin == nil || !admin.IsActive {
		return nil, ErrAdminNotFound
	}

	if err := s.issueRepo.Assign(ctx, issueID, adminID); err != nil {
		return nil, err
	}
	issue.AssignedTo = &adminID

	s.notifSvc.NotifyIssueAssigned(ctx, issue, adminID)

	s.resolveURLs(issue)
	return issue, nil
}

// UpdateStatus applies a one-directional transition by the assigned
// admin. The owning citizen is notified; resolving an issue also
// re-evaluates the admin's achievements.
func (s *service) UpdateStatus(ctx context.Context, adminID, issueID uuid.UUID, input domain.UpdateIssueStatusInput, upload *PhotoUpload) (*domain.Issue, error) {
	if !input.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	issue, err := s.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, ErrIssueNotFound
	}
	if issue.AssignedTo == nil || *issue.AssignedTo != adminID {
		return nil, ErrNotAssigned
	}
	if !issue.Status.CanTransitionTo(input.Status) {
		return nil, ErrInvalidTransition
	}

	statusChanged := issue.Status != input.Status
	issue.Status = input.Status
	if input.AdminNotes != nil {
		issue.AdminNotes = input.AdminNotes
	}

	if upload != nil {
		storagePath, err := s.photoSvc.Upload(ctx, "resolutions", upload.MimeType, upload.Size, upload.Reader)
		if err != nil {
			return nil, err
		}
		issue.ResolutionPhotoPath = &storagePath
	}

	if err := s.issueRepo.UpdateStatus(ctx, issue); err != nil {
		if upload != nil && issue.ResolutionPhotoPath != nil {
			s.photoSvc.Remove(ctx, *issue.ResolutionPhotoPath)
		}
		return nil, err
	}

	if statusChanged {
		s.notifSvc.NotifyIssueStatus(ctx, issue)
	}
	if issue.Status == domain.StatusResolved {
		s.achSvc.EvaluateAdmin(ctx, adminID)
	}

	s.resolveURLs(issue)
	return issue, nil
}

func (s *service) resolveURLs(issue *domain.Issue) {
	if s.photoSvc == nil {
		return
	}
	if issue.PhotoPath != nil {
		issue.PhotoURL = s.photoSvc.URL(*issue.PhotoPath)
	}
	if issue.ResolutionPhotoPath != nil {
		issue.ResolutionPhotoURL = s.photoSvc.URL(*issue.ResolutionPhotoPath)
	}
}
