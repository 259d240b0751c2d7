package mocks

import (
	"context"

	"gram-seva/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type AchievementService struct {
	mock.Mock
}

func (m *AchievementService) EvaluateCitizen(ctx context.Context, citizenID uuid.UUID) {
	m.Called(ctx, citizenID)
}

func (m *AchievementService) EvaluateAdmin(ctx context.Context, adminID uuid.UUID) {
	m.Called(ctx, adminID)
}

func (m *AchievementService) ListCitizen(ctx context.Context, citizenID uuid.UUID) ([]domain.Achievement, error) {
	args := m.Called(ctx, citizenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Achievement), args.Error(1)
}

func (m *AchievementService) ListAdmin(ctx context.Context, adminID uuid.UUID) ([]domain.Achievement, error) {
	args := m.Called(ctx, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Achievement), args.Error(1)
}
