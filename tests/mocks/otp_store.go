package mocks

import (
	"context"
	"time"

	"gram-seva/internal/domain"

	"github.com/stretchr/testify/mock"
)

type OTPStore struct {
	mock.Mock
}

func (m *OTPStore) SaveChallenge(ctx context.Context, challenge *domain.OTPChallenge, ttl time.Duration) error {
	args := m.Called(ctx, challenge, ttl)
	return args.Error(0)
}

func (m *OTPStore) GetChallenge(ctx context.Context, phone string) (*domain.OTPChallenge, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OTPChallenge), args.Error(1)
}

func (m *OTPStore) DeleteChallenge(ctx context.Context, phone string) error {
	args := m.Called(ctx, phone)
	return args.Error(0)
}

func (m *OTPStore) IncrAttempts(ctx context.Context, phone string, window time.Duration) (int64, error) {
	args := m.Called(ctx, phone, window)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OTPStore) ClearAttempts(ctx context.Context, phone string) error {
	args := m.Called(ctx, phone)
	return args.Error(0)
}
