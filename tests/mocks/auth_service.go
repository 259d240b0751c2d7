package mocks

import (
	"context"

	"gram-seva/internal/domain"
	"gram-seva/internal/service/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type AuthService struct {
	mock.Mock
}

func (m *AuthService) LoginAdmin(ctx context.Context, input domain.AdminLoginInput) (*domain.PanchayatAdmin, *domain.TokenPair, error) {
	args := m.Called(ctx, input)
	var admin *domain.PanchayatAdmin
	var tokens *domain.TokenPair
	if args.Get(0) != nil {
		admin = args.Get(0).(*domain.PanchayatAdmin)
	}
	if args.Get(1) != nil {
		tokens = args.Get(1).(*domain.TokenPair)
	}
	return admin, tokens, args.Error(2)
}

func (m *AuthService) LoginSuperAdmin(ctx context.Context, input domain.AdminLoginInput) (*domain.SuperAdmin, *domain.TokenPair, error) {
	args := m.Called(ctx, input)
	var superAdmin *domain.SuperAdmin
	var tokens *domain.TokenPair
	if args.Get(0) != nil {
		superAdmin = args.Get(0).(*domain.SuperAdmin)
	}
	if args.Get(1) != nil {
		tokens = args.Get(1).(*domain.TokenPair)
	}
	return superAdmin, tokens, args.Error(2)
}

func (m *AuthService) IssueTokens(ctx context.Context, accountID uuid.UUID, role domain.Role) (*domain.TokenPair, error) {
	args := m.Called(ctx, accountID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenPair), args.Error(1)
}

func (m *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenPair), args.Error(1)
}

func (m *AuthService) ValidateAccessToken(token string) (*auth.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

func (m *AuthService) GetCitizenByID(ctx context.Context, id uuid.UUID) (*domain.Citizen, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Citizen), args.Error(1)
}

func (m *AuthService) GetAdminByID(ctx context.Context, id uuid.UUID) (*domain.PanchayatAdmin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PanchayatAdmin), args.Error(1)
}

func (m *AuthService) GetSuperAdminByID(ctx context.Context, id uuid.UUID) (*domain.SuperAdmin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SuperAdmin), args.Error(1)
}
