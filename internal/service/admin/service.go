package admin

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gram-seva/internal/domain"
	"gram-seva/internal/repository"
	"gram-seva/internal/service/email"
)

var ErrUsernameExists = errors.New("username already taken")

// Service covers super-admin management of panchayat admin accounts.
type Service interface {
	Create(ctx context.Context, input domain.CreateAdminInput) (*domain.PanchayatAdmin, error)
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.PanchayatAdmin], error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type service struct {
	adminRepo   repository.AdminRepository
	sessionRepo repository.SessionRepository
	emailSvc    email.Service
}

func NewService(adminRepo repository.AdminRepository, sessionRepo repository.SessionRepository, emailSvc email.Service) Service {
	return &service{
		adminRepo:   adminRepo,
		sessionRepo: sessionRepo,
		emailSvc:    emailSvc,
	}
}

func (s *service) Create(ctx context.Context, input domain.CreateAdminInput) (*domain.PanchayatAdmin, error) {
	exists, err := s.adminRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &domain.PanchayatAdmin{
		ID:           uuid.New(),
		Username:     input.Username,
		PasswordHash: string(hashedPassword),
		FullName:     input.FullName,
		Email:        input.Email,
		IsActive:     true,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	if s.emailSvc != nil && admin.Email != "" {
		go func(toEmail, name, username string) {
			ctx := context.Background()
			if err := s.emailSvc.SendAdminWelcome(ctx, toEmail, name, username); err != nil {
				log.Printf("admin: welcome email to %s failed: %v", toEmail, err)
			}
		}(admin.Email, admin.FullName, admin.Username)
	}

	return admin, nil
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.PanchayatAdmin], error) {
	admins, total, err := s.adminRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.PanchayatAdmin]{}, err
	}
	return domain.NewPaginatedResponse(admins, params.Page, params.PageSize, total), nil
}

// Deactivate turns off the account and revokes its refresh sessions so
// the admin is signed out everywhere once the access token expires.
func (s *service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.adminRepo.SetActive(ctx, id, false); err != nil {
		return err
	}
	return s.sessionRepo.RevokeAllForAccount(ctx, id)
}
