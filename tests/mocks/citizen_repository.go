package mocks

import (
	"context"

	"gram-seva/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type CitizenRepository struct {
	mock.Mock
}

func (m *CitizenRepository) UpsertWithCode(ctx context.Context, phone, name, code string) (*domain.Citizen, error) {
	args := m.Called(ctx, phone, name, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Citizen), args.Error(1)
}

func (m *CitizenRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Citizen, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Citizen), args.Error(1)
}

func (m *CitizenRepository) GetByPhone(ctx context.Context, phone string) (*domain.Citizen, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Citizen), args.Error(1)
}

func (m *CitizenRepository) SetCode(ctx context.Context, id uuid.UUID, code string) error {
	args := m.Called(ctx, id, code)
	return args.Error(0)
}

func (m *CitizenRepository) ClearCode(ctx context.Context, phone string) error {
	args := m.Called(ctx, phone)
	return args.Error(0)
}

func (m *CitizenRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CitizenRepository) UpdateName(ctx context.Context, id uuid.UUID, fullName string) error {
	args := m.Called(ctx, id, fullName)
	return args.Error(0)
}

func (m *CitizenRepository) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error {
	args := m.Called(ctx, id, blocked)
	return args.Error(0)
}
