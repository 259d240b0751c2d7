package mocks

import (
	"context"

	"gram-seva/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type AchievementRepository struct {
	mock.Mock
}

func (m *AchievementRepository) AwardCitizen(ctx context.Context, citizenID uuid.UUID, achType domain.AchievementType) (bool, error) {
	args := m.Called(ctx, citizenID, achType)
	return args.Bool(0), args.Error(1)
}

func (m *AchievementRepository) AwardAdmin(ctx context.Context, adminID uuid.UUID, achType domain.AchievementType) (bool, error) {
	args := m.Called(ctx, adminID, achType)
	return args.Bool(0), args.Error(1)
}

func (m *AchievementRepository) ListByCitizen(ctx context.Context, citizenID uuid.UUID) ([]domain.Achievement, error) {
	args := m.Called(ctx, citizenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Achievement), args.Error(1)
}

func (m *AchievementRepository) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]domain.Achievement, error) {
	args := m.Called(ctx, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Achievement), args.Error(1)
}
