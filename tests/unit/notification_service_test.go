package unit_test

import (
	"context"
	"testing"

	"gram-seva/internal/domain"
	"gram-seva/internal/service/notification"
	"gram-seva/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newNotificationService(notifRepo *mocks.NotificationRepository, templateRepo *mocks.TemplateRepository, adminRepo *mocks.AdminRepository) notification.Service {
	return notification.NewService(notifRepo, templateRepo, adminRepo, nil)
}

func TestNotificationService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Citizen Recipient Sets Exactly One Column", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		svc := newNotificationService(mockRepo, new(mocks.TemplateRepository), new(mocks.AdminRepository))

		citizenID := uuid.New()
		ref := domain.RecipientRef{Kind: domain.KindCitizen, ID: citizenID}

		mockRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.CitizenID != nil && *n.CitizenID == citizenID &&
				n.AdminID == nil && n.SuperAdminID == nil &&
				n.Type == domain.NotifIssueStatus
		})).Return(nil).Once()

		id, err := svc.Create(ctx, ref, domain.NotifIssueStatus, "Status changed", "Your issue moved forward", nil)

		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Admin Recipient", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		svc := newNotificationService(mockRepo, new(mocks.TemplateRepository), new(mocks.AdminRepository))

		adminID := uuid.New()
		ref := domain.RecipientRef{Kind: domain.KindAdmin, ID: adminID}

		mockRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.AdminID != nil && *n.AdminID == adminID &&
				n.CitizenID == nil && n.SuperAdminID == nil
		})).Return(nil).Once()

		_, err := svc.Create(ctx, ref, domain.NotifNewIssue, "New issue", "A new issue was reported", nil)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Invalid Type", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		svc := newNotificationService(mockRepo, new(mocks.TemplateRepository), new(mocks.AdminRepository))

		ref := domain.RecipientRef{Kind: domain.KindCitizen, ID: uuid.New()}
		_, err := svc.Create(ctx, ref, "shouting", "t", "m", nil)

		assert.ErrorIs(t, err, notification.ErrInvalidType)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Invalid Recipient", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		svc := newNotificationService(mockRepo, new(mocks.TemplateRepository), new(mocks.AdminRepository))

		ref := domain.RecipientRef{Kind: "village", ID: uuid.New()}
		_, err := svc.Create(ctx, ref, domain.NotifSystemAlert, "t", "m", nil)

		assert.ErrorIs(t, err, domain.ErrInvalidRecipient)
		mockRepo.AssertNotCalled(t, "Create")
	})
}

func TestNotificationService_CreateFromTemplate(t *testing.T) {
	ctx := context.Background()

	t.Run("Placeholders Are Substituted", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		mockTemplates := new(mocks.TemplateRepository)
		svc := newNotificationService(mockRepo, mockTemplates, new(mocks.AdminRepository))

		mockTemplates.On("GetActiveByType", ctx, domain.NotifIssueResolved).Return(&domain.NotificationTemplate{
			Type:            domain.NotifIssueResolved,
			TitleTemplate:   "Issue Resolved",
			MessageTemplate: "Your issue {title} was resolved. Notes: {notes}",
		}, nil).Once()

		mockRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.Title == "Issue Resolved" &&
				n.Message == "Your issue Broken streetlight was resolved. Notes: replaced bulb"
		})).Return(nil).Once()

		ref := domain.RecipientRef{Kind: domain.KindCitizen, ID: uuid.New()}
		_, err := svc.CreateFromTemplate(ctx, domain.NotifIssueResolved, ref, map[string]string{
			"title": "Broken streetlight",
			"notes": "replaced bulb",
		})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
		mockTemplates.AssertExpectations(t)
	})

	t.Run("Missing Template", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		mockTemplates := new(mocks.TemplateRepository)
		svc := newNotificationService(mockRepo, mockTemplates, new(mocks.AdminRepository))

		mockTemplates.On("GetActiveByType", ctx, domain.NotifIssueStatus).Return(nil, nil).Once()

		ref := domain.RecipientRef{Kind: domain.KindCitizen, ID: uuid.New()}
		_, err := svc.CreateFromTemplate(ctx, domain.NotifIssueStatus, ref, nil)

		assert.ErrorIs(t, err, notification.ErrTemplateNotFound)
		mockRepo.AssertNotCalled(t, "Create")
	})
}

func TestNotificationService_BroadcastToAdmins(t *testing.T) {
	ctx := context.Background()

	t.Run("One Failure Does Not Stop The Fan-Out", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		mockAdmins := new(mocks.AdminRepository)
		svc := newNotificationService(mockRepo, new(mocks.TemplateRepository), mockAdmins)

		adminA := domain.PanchayatAdmin{ID: uuid.New(), FullName: "Admin A"}
		adminB := domain.PanchayatAdmin{ID: uuid.New(), FullName: "Admin B"}
		mockAdmins.On("ListActive", ctx).Return([]domain.PanchayatAdmin{adminA, adminB}, nil).Once()

		mockRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.AdminID != nil && *n.AdminID == adminA.ID
		})).Return(assert.AnError).Once()
		mockRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.AdminID != nil && *n.AdminID == adminB.ID
		})).Return(nil).Once()

		results, err := svc.BroadcastToAdmins(ctx, domain.NotifAdminMessage, "Maintenance", "Portal downtime tonight", nil)

		assert.NoError(t, err)
		assert.Len(t, results, 2)
		assert.Error(t, results[0].Err)
		assert.Nil(t, results[0].NotificationID)
		assert.NoError(t, results[1].Err)
		assert.NotNil(t, results[1].NotificationID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Listing Failure Is Fatal", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		mockAdmins := new(mocks.AdminRepository)
		svc := newNotificationService(mockRepo, new(mocks.TemplateRepository), mockAdmins)

		mockAdmins.On("ListActive", ctx).Return(nil, assert.AnError).Once()

		_, err := svc.BroadcastToAdmins(ctx, domain.NotifAdminMessage, "t", "m", nil)

		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "Create")
	})
}

func TestNotificationService_ReadState(t *testing.T) {
	ctx := context.Background()
	ref := domain.RecipientRef{Kind: domain.KindCitizen, ID: uuid.New()}

	t.Run("MarkAsRead Reports Match", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		svc := newNotificationService(mockRepo, new(mocks.TemplateRepository), new(mocks.AdminRepository))

		notifID := uuid.New()
		mockRepo.On("MarkAsRead", ctx, notifID, ref).Return(false, nil).Once()

		marked, err := svc.MarkAsRead(ctx, notifID, ref)

		assert.NoError(t, err)
		assert.False(t, marked)
	})

	t.Run("UnreadCount Fails Soft", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		svc := newNotificationService(mockRepo, new(mocks.TemplateRepository), new(mocks.AdminRepository))

		mockRepo.On("CountUnread", ctx, ref).Return(int64(0), assert.AnError).Once()

		assert.Equal(t, int64(0), svc.UnreadCount(ctx, ref))
	})

	t.Run("MarkAllAsRead Returns Count", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		svc := newNotificationService(mockRepo, new(mocks.TemplateRepository), new(mocks.AdminRepository))

		mockRepo.On("MarkAllAsRead", ctx, ref).Return(int64(7), nil).Once()

		count, err := svc.MarkAllAsRead(ctx, ref)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), count)
	})
}

func TestNotificationService_Cleanup(t *testing.T) {
	ctx := context.Background()

	t.Run("Non-Positive Retention Falls Back To Default", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		svc := newNotificationService(mockRepo, new(mocks.TemplateRepository), new(mocks.AdminRepository))

		mockRepo.On("DeleteOlderThan", ctx, 30).Return(int64(12), nil).Once()

		deleted, err := svc.Cleanup(ctx, 0)

		assert.NoError(t, err)
		assert.Equal(t, int64(12), deleted)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Explicit Retention Is Used", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		svc := newNotificationService(mockRepo, new(mocks.TemplateRepository), new(mocks.AdminRepository))

		mockRepo.On("DeleteOlderThan", ctx, 90).Return(int64(0), nil).Once()

		_, err := svc.Cleanup(ctx, 90)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}
