package mocks

import (
	"context"

	"gram-seva/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type IssueRepository struct {
	mock.Mock
}

func (m *IssueRepository) Create(ctx context.Context, issue *domain.Issue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}

func (m *IssueRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Issue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Issue), args.Error(1)
}

func (m *IssueRepository) List(ctx context.Context, filter domain.IssueFilter, params domain.PaginationParams) ([]domain.Issue, int64, error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).([]domain.Issue), args.Get(1).(int64), args.Error(2)
}

func (m *IssueRepository) UpdateStatus(ctx context.Context, issue *domain.Issue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}

func (m *IssueRepository) Assign(ctx context.Context, id, adminID uuid.UUID) error {
	args := m.Called(ctx, id, adminID)
	return args.Error(0)
}

func (m *IssueRepository) CountByCitizen(ctx context.Context, citizenID uuid.UUID) (int64, error) {
	args := m.Called(ctx, citizenID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *IssueRepository) CountWithPhotoByCitizen(ctx context.Context, citizenID uuid.UUID) (int64, error) {
	args := m.Called(ctx, citizenID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *IssueRepository) AdminStats(ctx context.Context, adminID uuid.UUID) (*domain.AdminIssueStats, error) {
	args := m.Called(ctx, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminIssueStats), args.Error(1)
}
