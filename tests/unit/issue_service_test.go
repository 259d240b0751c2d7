package unit_test

import (
	"context"
	"strings"
	"testing"

	"gram-seva/internal/domain"
	"gram-seva/internal/service/issue"
	"gram-seva/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newIssueService(issueRepo *mocks.IssueRepository, adminRepo *mocks.AdminRepository, photoSvc *mocks.PhotoService, notifSvc *mocks.NotificationService, achSvc *mocks.AchievementService) issue.Service {
	return issue.NewService(issueRepo, adminRepo, photoSvc, notifSvc, achSvc)
}

func TestIssueService_Create(t *testing.T) {
	ctx := context.Background()
	citizen := &domain.Citizen{ID: uuid.New(), Phone: "9876543210", FullName: "Ramesh Kumar"}

	input := domain.CreateIssueInput{
		Title:       "Broken streetlight",
		Description: "The light near the temple has been out for a week",
		Category:    domain.CategoryElectricity,
		Location:    "Temple road",
	}

	t.Run("Success Without Photo", func(t *testing.T) {
		mockIssues := new(mocks.IssueRepository)
		mockPhotos := new(mocks.PhotoService)
		mockNotif := new(mocks.NotificationService)
		mockAch := new(mocks.AchievementService)
		svc := newIssueService(mockIssues, new(mocks.AdminRepository), mockPhotos, mockNotif, mockAch)

		mockIssues.On("Create", ctx, mock.MatchedBy(func(i *domain.Issue) bool {
			return i.CitizenID == citizen.ID && i.Status == domain.StatusPending && i.Title == input.Title
		})).Return(nil).Once()
		mockNotif.On("NotifyNewIssue", ctx, mock.AnythingOfType("*domain.Issue"), citizen).Once()
		mockAch.On("EvaluateCitizen", ctx, citizen.ID).Once()

		created, err := svc.Create(ctx, citizen, input, nil)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusPending, created.Status)
		assert.Nil(t, created.PhotoPath)
		mockIssues.AssertExpectations(t)
		mockNotif.AssertExpectations(t)
		mockAch.AssertExpectations(t)
	})

	t.Run("Invalid Category", func(t *testing.T) {
		mockIssues := new(mocks.IssueRepository)
		svc := newIssueService(mockIssues, new(mocks.AdminRepository), new(mocks.PhotoService), new(mocks.NotificationService), new(mocks.AchievementService))

		badInput := input
		badInput.Category = "Potholes"

		_, err := svc.Create(ctx, citizen, badInput, nil)

		assert.ErrorIs(t, err, issue.ErrInvalidCategory)
		mockIssues.AssertNotCalled(t, "Create")
	})

	t.Run("Photo Is Removed When Insert Fails", func(t *testing.T) {
		mockIssues := new(mocks.IssueRepository)
		mockPhotos := new(mocks.PhotoService)
		svc := newIssueService(mockIssues, new(mocks.AdminRepository), mockPhotos, new(mocks.NotificationService), new(mocks.AchievementService))

		upload := &issue.PhotoUpload{
			MimeType: "image/jpeg",
			Size:     1024,
			Reader:   strings.NewReader("jpeg bytes"),
		}
		mockPhotos.On("Upload", ctx, "issues", "image/jpeg", int64(1024), upload.Reader).
			Return("issues/2026/09/abc.jpg", nil).Once()
		mockIssues.On("Create", ctx, mock.Anything).Return(assert.AnError).Once()
		mockPhotos.On("Remove", ctx, "issues/2026/09/abc.jpg").Once()

		_, err := svc.Create(ctx, citizen, input, upload)

		assert.Error(t, err)
		mockPhotos.AssertExpectations(t)
	})
}

func TestIssueService_Assign(t *testing.T) {
	ctx := context.Background()
	issueID := uuid.New()
	adminID := uuid.New()

	existing := func() *domain.Issue {
		return &domain.Issue{ID: issueID, CitizenID: uuid.New(), Status: domain.StatusPending, Title: "Water leak"}
	}

	t.Run("Success", func(t *testing.T) {
		mockIssues := new(mocks.IssueRepository)
		mockAdmins := new(mocks.AdminRepository)
		mockNotif := new(mocks.NotificationService)
		svc := newIssueService(mockIssues, mockAdmins, new(mocks.PhotoService), mockNotif, new(mocks.AchievementService))

		mockIssues.On("GetByID", ctx, issueID).Return(existing(), nil).Once()
		mockAdmins.On("GetByID", ctx, adminID).Return(&domain.PanchayatAdmin{ID: adminID, IsActive: true}, nil).Once()
		mockIssues.On("Assign", ctx, issueID, adminID).Return(nil).Once()
		mockNotif.On("NotifyIssueAssigned", ctx, mock.AnythingOfType("*domain.Issue"), adminID).Once()

		assigned, err := svc.Assign(ctx, issueID, adminID)

		assert.NoError(t, err)
		assert.Equal(t, adminID, *assigned.AssignedTo)
		mockIssues.AssertExpectations(t)
		mockNotif.AssertExpectations(t)
	})

	t.Run("Inactive Admin", func(t *testing.T) {
		mockIssues := new(mocks.IssueRepository)
		mockAdmins := new(mocks.AdminRepository)
		svc := newIssueService(mockIssues, mockAdmins, new(mocks.PhotoService), new(mocks.NotificationService), new(mocks.AchievementService))

		mockIssues.On("GetByID", ctx, issueID).Return(existing(), nil).Once()
		mockAdmins.On("GetByID", ctx, adminID).Return(&domain.PanchayatAdmin{ID: adminID, IsActive: false}, nil).Once()

		_, err := svc.Assign(ctx, issueID, adminID)

		assert.ErrorIs(t, err, issue.ErrAdminNotFound)
		mockIssues.AssertNotCalled(t, "Assign")
	})

	t.Run("Missing Issue", func(t *testing.T) {
		mockIssues := new(mocks.IssueRepository)
		svc := newIssueService(mockIssues, new(mocks.AdminRepository), new(mocks.PhotoService), new(mocks.NotificationService), new(mocks.AchievementService))

		mockIssues.On("GetByID", ctx, issueID).Return(nil, nil).Once()

		_, err := svc.Assign(ctx, issueID, adminID)

		assert.ErrorIs(t, err, issue.ErrIssueNotFound)
	})
}

func TestIssueService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	issueID := uuid.New()
	adminID := uuid.New()
	citizenID := uuid.New()

	assignedIssue := func(status domain.IssueStatus) *domain.Issue {
		id := adminID
		return &domain.Issue{
			ID:         issueID,
			CitizenID:  citizenID,
			Title:      "Water leak",
			Status:     status,
			AssignedTo: &id,
		}
	}

	t.Run("Forward Transition Notifies The Citizen", func(t *testing.T) {
		mockIssues := new(mocks.IssueRepository)
		mockNotif := new(mocks.NotificationService)
		mockAch := new(mocks.AchievementService)
		svc := newIssueService(mockIssues, new(mocks.AdminRepository), new(mocks.PhotoService), mockNotif, mockAch)

		mockIssues.On("GetByID", ctx, issueID).Return(assignedIssue(domain.StatusPending), nil).Once()
		mockIssues.On("UpdateStatus", ctx, mock.MatchedBy(func(i *domain.Issue) bool {
			return i.Status == domain.StatusInProgress
		})).Return(nil).Once()
		mockNotif.On("NotifyIssueStatus", ctx, mock.AnythingOfType("*domain.Issue")).Once()

		updated, err := svc.UpdateStatus(ctx, adminID, issueID, domain.UpdateIssueStatusInput{Status: domain.StatusInProgress}, nil)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusInProgress, updated.Status)
		mockNotif.AssertExpectations(t)
		mockAch.AssertNotCalled(t, "EvaluateAdmin", ctx, adminID)
	})

	t.Run("Resolving Re-Evaluates The Admin", func(t *testing.T) {
		mockIssues := new(mocks.IssueRepository)
		mockNotif := new(mocks.NotificationService)
		mockAch := new(mocks.AchievementService)
		svc := newIssueService(mockIssues, new(mocks.AdminRepository), new(mocks.PhotoService), mockNotif, mockAch)

		notes := "Pipe replaced"
		mockIssues.On("GetByID", ctx, issueID).Return(assignedIssue(domain.StatusInProgress), nil).Once()
		mockIssues.On("UpdateStatus", ctx, mock.MatchedBy(func(i *domain.Issue) bool {
			return i.Status == domain.StatusResolved && i.AdminNotes != nil && *i.AdminNotes == notes
		})).Return(nil).Once()
		mockNotif.On("NotifyIssueStatus", ctx, mock.AnythingOfType("*domain.Issue")).Once()
		mockAch.On("EvaluateAdmin", ctx, adminID).Once()

		_, err := svc.UpdateStatus(ctx, adminID, issueID, domain.UpdateIssueStatusInput{
			Status:     domain.StatusResolved,
			AdminNotes: &notes,
		}, nil)

		assert.NoError(t, err)
		mockAch.AssertExpectations(t)
	})

	t.Run("Backward Transition Is Rejected", func(t *testing.T) {
		mockIssues := new(mocks.IssueRepository)
		svc := newIssueService(mockIssues, new(mocks.AdminRepository), new(mocks.PhotoService), new(mocks.NotificationService), new(mocks.AchievementService))

		mockIssues.On("GetByID", ctx, issueID).Return(assignedIssue(domain.StatusResolved), nil).Once()

		_, err := svc.UpdateStatus(ctx, adminID, issueID, domain.UpdateIssueStatusInput{Status: domain.StatusPending}, nil)

		assert.ErrorIs(t, err, issue.ErrInvalidTransition)
		mockIssues.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("Unassigned Admin Is Rejected", func(t *testing.T) {
		mockIssues := new(mocks.IssueRepository)
		svc := newIssueService(mockIssues, new(mocks.AdminRepository), new(mocks.PhotoService), new(mocks.NotificationService), new(mocks.AchievementService))

		otherAdmin := uuid.New()
		mockIssues.On("GetByID", ctx, issueID).Return(assignedIssue(domain.StatusPending), nil).Once()

		_, err := svc.UpdateStatus(ctx, otherAdmin, issueID, domain.UpdateIssueStatusInput{Status: domain.StatusInProgress}, nil)

		assert.ErrorIs(t, err, issue.ErrNotAssigned)
	})

	t.Run("Same Status Skips The Notification", func(t *testing.T) {
		mockIssues := new(mocks.IssueRepository)
		mockNotif := new(mocks.NotificationService)
		svc := newIssueService(mockIssues, new(mocks.AdminRepository), new(mocks.PhotoService), mockNotif, new(mocks.AchievementService))

		notes := "Crew scheduled for Monday"
		mockIssues.On("GetByID", ctx, issueID).Return(assignedIssue(domain.StatusInProgress), nil).Once()
		mockIssues.On("UpdateStatus", ctx, mock.Anything).Return(nil).Once()

		_, err := svc.UpdateStatus(ctx, adminID, issueID, domain.UpdateIssueStatusInput{
			Status:     domain.StatusInProgress,
			AdminNotes: &notes,
		}, nil)

		assert.NoError(t, err)
		mockNotif.AssertNotCalled(t, "NotifyIssueStatus", mock.Anything, mock.Anything)
	})
}
