package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gram-seva/internal/config"
	"gram-seva/internal/domain"
	"gram-seva/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAccountNotFound    = errors.New("account not found")
)

// Service issues and validates tokens for all three account variants.
// Citizens get their tokens through the OTP flow, which delegates to
// IssueTokens after a successful verification.
type Service interface {
	LoginAdmin(ctx context.Context, input domain.AdminLoginInput) (*domain.PanchayatAdmin, *domain.TokenPair, error)
	LoginSuperAdmin(ctx context.Context, input domain.AdminLoginInput) (*domain.SuperAdmin, *domain.TokenPair, error)
	IssueTokens(ctx context.Context, accountID uuid.UUID, role domain.Role) (*domain.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	ValidateAccessToken(token string) (*Claims, error)
	GetCitizenByID(ctx context.Context, id uuid.UUID) (*domain.Citizen, error)
	GetAdminByID(ctx context.Context, id uuid.UUID) (*domain.PanchayatAdmin, error)
	GetSuperAdminByID(ctx context.Context, id uuid.UUID) (*domain.SuperAdmin, error)
}

type Claims struct {
	AccountID uuid.UUID   `json:"account_id"`
	Role      domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type service struct {
	citizenRepo    repository.CitizenRepository
	adminRepo      repository.AdminRepository
	superAdminRepo repository.SuperAdminRepository
	sessionRepo    repository.SessionRepository
	cfg            *config.Config
}

func NewService(
	citizenRepo repository.CitizenRepository,
	adminRepo repository.AdminRepository,
	superAdminRepo repository.SuperAdminRepository,
	sessionRepo repository.SessionRepository,
	cfg *config.Config,
) Service {
	return &service{
		citizenRepo:    citizenRepo,
		adminRepo:      adminRepo,
		superAdminRepo: superAdminRepo,
		sessionRepo:    sessionRepo,
		cfg:            cfg,
	}
}

func (s *service) LoginAdmin(ctx context.Context, input domain.AdminLoginInput) (*domain.PanchayatAdmin, *domain.TokenPair, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, nil, err
	}
	if admin == nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !admin.IsActive {
		return nil, nil, ErrAccountDeactivated
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.IssueTokens(ctx, admin.ID, domain.RoleAdmin)
	if err != nil {
		return nil, nil, err
	}
	return admin, tokens, nil
}

func (s *service) LoginSuperAdmin(ctx context.Context, input domain.AdminLoginInput) (*domain.SuperAdmin, *domain.TokenPair, error) {
	superAdmin, err := s.superAdminRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, nil, err
	}
	if superAdmin == nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(superAdmin.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.IssueTokens(ctx, superAdmin.ID, domain.RoleSuperAdmin)
	if err != nil {
		return nil, nil, err
	}
	return superAdmin, tokens, nil
}

func (s *service) IssueTokens(ctx context.Context, accountID uuid.UUID, role domain.Role) (*domain.TokenPair, error) {
	accessClaims := &Claims{
		AccountID: accountID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.JWTAccessExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   accountID.String(),
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	refreshTokenRaw := uuid.New().String()
	session := &repository.Session{
		ID:        uuid.New(),
		AccountID: accountID,
		Role:      role,
		TokenHash: hashToken(refreshTokenRaw),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenRaw,
		ExpiresIn:    int64(s.cfg.JWTAccessExpiry.Seconds()),
	}, nil
}

// RefreshToken rotates the refresh token: the presented session is
// revoked and a fresh pair is issued for the same account and role.
func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	session, err := s.sessionRepo.GetByTokenHash(ctx, hashToken(refreshToken))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrInvalidToken
	}

	if err := s.sessionRepo.Revoke(ctx, session.ID); err != nil {
		return nil, err
	}

	return s.IssueTokens(ctx, session.AccountID, session.Role)
}

func (s *service) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *service) GetCitizenByID(ctx context.Context, id uuid.UUID) (*domain.Citizen, error) {
	return s.citizenRepo.GetByID(ctx, id)
}

func (s *service) GetAdminByID(ctx context.Context, id uuid.UUID) (*domain.PanchayatAdmin, error) {
	return s.adminRepo.GetByID(ctx, id)
}

func (s *service) GetSuperAdminByID(ctx context.Context, id uuid.UUID) (*domain.SuperAdmin, error) {
	return s.superAdminRepo.GetByID(ctx, id)
}

func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
