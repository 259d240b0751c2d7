package mocks

import (
	"context"

	"gram-seva/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) Create(ctx context.Context, ref domain.RecipientRef, notifType domain.NotificationType, title, message string, data map[string]interface{}) (uuid.UUID, error) {
	args := m.Called(ctx, ref, notifType, title, message, data)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *NotificationService) CreateFromTemplate(ctx context.Context, notifType domain.NotificationType, ref domain.RecipientRef, templateData map[string]string) (uuid.UUID, error) {
	args := m.Called(ctx, notifType, ref, templateData)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *NotificationService) BroadcastToAdmins(ctx context.Context, notifType domain.NotificationType, title, message string, data map[string]interface{}) ([]domain.BroadcastResult, error) {
	args := m.Called(ctx, notifType, title, message, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BroadcastResult), args.Error(1)
}

func (m *NotificationService) List(ctx context.Context, ref domain.RecipientRef, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	args := m.Called(ctx, ref, unreadOnly, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Notification]), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID, ref domain.RecipientRef) (bool, error) {
	args := m.Called(ctx, id, ref)
	return args.Bool(0), args.Error(1)
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context, ref domain.RecipientRef) (int64, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) UnreadCount(ctx context.Context, ref domain.RecipientRef) int64 {
	args := m.Called(ctx, ref)
	return args.Get(0).(int64)
}

func (m *NotificationService) Cleanup(ctx context.Context, retentionDays int) (int64, error) {
	args := m.Called(ctx, retentionDays)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) NotifyNewIssue(ctx context.Context, issue *domain.Issue, citizen *domain.Citizen) {
	m.Called(ctx, issue, citizen)
}

func (m *NotificationService) NotifyIssueAssigned(ctx context.Context, issue *domain.Issue, adminID uuid.UUID) {
	m.Called(ctx, issue, adminID)
}

func (m *NotificationService) NotifyIssueStatus(ctx context.Context, issue *domain.Issue) {
	m.Called(ctx, issue)
}

func (m *NotificationService) NotifyAchievement(ctx context.Context, ref domain.RecipientRef, achType domain.AchievementType) {
	m.Called(ctx, ref, achType)
}
