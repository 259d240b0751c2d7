package mocks

import (
	"context"

	"gram-seva/internal/domain"

	"github.com/stretchr/testify/mock"
)

type TemplateRepository struct {
	mock.Mock
}

func (m *TemplateRepository) GetActiveByType(ctx context.Context, notifType domain.NotificationType) (*domain.NotificationTemplate, error) {
	args := m.Called(ctx, notifType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationTemplate), args.Error(1)
}
