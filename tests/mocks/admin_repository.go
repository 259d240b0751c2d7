package mocks

import (
	"context"

	"gram-seva/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type AdminRepository struct {
	mock.Mock
}

func (m *AdminRepository) Create(ctx context.Context, admin *domain.PanchayatAdmin) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *AdminRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PanchayatAdmin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PanchayatAdmin), args.Error(1)
}

func (m *AdminRepository) GetByUsername(ctx context.Context, username string) (*domain.PanchayatAdmin, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PanchayatAdmin), args.Error(1)
}

func (m *AdminRepository) ListActive(ctx context.Context) ([]domain.PanchayatAdmin, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PanchayatAdmin), args.Error(1)
}

func (m *AdminRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.PanchayatAdmin, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.PanchayatAdmin), args.Get(1).(int64), args.Error(2)
}

func (m *AdminRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *AdminRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}
