package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"regexp"

	"gram-seva/internal/config"
	"gram-seva/internal/domain"
	"gram-seva/internal/repository"
	"gram-seva/internal/service/auth"
)

var (
	ErrInvalidPhone     = errors.New("phone number must be exactly 10 digits")
	ErrPhoneExists      = errors.New("phone number already registered, please login")
	ErrAccountNotFound  = errors.New("no account registered for this phone number")
	ErrAccountBlocked   = errors.New("account is blocked")
	ErrInvalidCode      = errors.New("incorrect verification code")
	ErrChallengeExpired = errors.New("verification challenge not found or expired")
	ErrTooManyAttempts  = errors.New("too many verification attempts, request a new code")
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// Service runs the phone-ownership challenge. A challenge lives in two
// places at once: the Redis entry (with TTL) and the citizen row's
// otp_code column. Verification accepts either copy, which tolerates
// losing the Redis entry mid-flow, and nulls both on success so a code
// can never be replayed.
//
// There is no SMS gateway; the generated code is returned to the caller
// for display. Transport to the phone is out of scope.
type Service interface {
	RequestRegistration(ctx context.Context, phone, name string) (string, error)
	RequestLogin(ctx context.Context, phone string) (string, error)
	Verify(ctx context.Context, phone, code string) (*domain.Citizen, *domain.TokenPair, error)
}

type service struct {
	citizenRepo repository.CitizenRepository
	store       repository.OTPStore
	authService auth.Service
	cfg         *config.Config
}

func NewService(
	citizenRepo repository.CitizenRepository,
	store repository.OTPStore,
	authService auth.Service,
	cfg *config.Config,
) Service {
	return &service{
		citizenRepo: citizenRepo,
		store:       store,
		authService: authService,
		cfg:         cfg,
	}
}

func (s *service) RequestRegistration(ctx context.Context, phone, name string) (string, error) {
	if !phonePattern.MatchString(phone) {
		return "", ErrInvalidPhone
	}

	existing, err := s.citizenRepo.GetByPhone(ctx, phone)
	if err != nil {
		return "", err
	}
	if existing != nil && existing.IsVerified {
		return "", ErrPhoneExists
	}

	code, err := s.generateCode()
	if err != nil {
		return "", err
	}

	// Insert a new row or overwrite a stale unverified one; verified
	// rows were rejected above.
	if _, err := s.citizenRepo.UpsertWithCode(ctx, phone, name, code); err != nil {
		return "", err
	}

	challenge := &domain.OTPChallenge{Phone: phone, Name: name, Code: code}
	if err := s.store.SaveChallenge(ctx, challenge, s.cfg.OTPExpiry); err != nil {
		// The DB copy still lets the flow complete.
		log.Printf("otp: failed to store challenge for %s: %v", phone, err)
	}

	return code, nil
}

func (s *service) RequestLogin(ctx context.Context, phone string) (string, error) {
	if !phonePattern.MatchString(phone) {
		return "", ErrInvalidPhone
	}

	citizen, err := s.citizenRepo.GetByPhone(ctx, phone)
	if err != nil {
		return "", err
	}
	if citizen == nil || !citizen.IsVerified {
		return "", ErrAccountNotFound
	}
	if citizen.IsBlocked {
		return "", ErrAccountBlocked
	}

	code, err := s.generateCode()
	if err != nil {
		return "", err
	}

	if err := s.citizenRepo.SetCode(ctx, citizen.ID, code); err != nil {
		return "", err
	}

	challenge := &domain.OTPChallenge{Phone: phone, Name: citizen.FullName, Code: code}
	if err := s.store.SaveChallenge(ctx, challenge, s.cfg.OTPExpiry); err != nil {
		log.Printf("otp: failed to store challenge for %s: %v", phone, err)
	}

	return code, nil
}

// Verify consumes the pending challenge. The Redis copy is checked
// first; the DB copy serves as the second source of truth when the two
// diverge or the Redis entry is gone. On success the citizen is
// verified (registration) or simply logged in, and both copies of the
// code are destroyed.
func (s *service) Verify(ctx context.Context, phone, code string) (*domain.Citizen, *domain.TokenPair, error) {
	if !phonePattern.MatchString(phone) {
		return nil, nil, ErrInvalidPhone
	}

	attempts, err := s.store.IncrAttempts(ctx, phone, s.cfg.OTPExpiry)
	if err != nil {
		log.Printf("otp: attempt counter unavailable for %s: %v", phone, err)
	} else if attempts > int64(s.cfg.OTPMaxAttempts) {
		return nil, nil, ErrTooManyAttempts
	}

	challenge, err := s.store.GetChallenge(ctx, phone)
	if err != nil {
		// Fall through to the DB copy.
		log.Printf("otp: failed to load challenge for %s: %v", phone, err)
		challenge = nil
	}

	citizen, err := s.citizenRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, nil, err
	}

	hasDBCode := citizen != nil && citizen.OTPCode != nil && *citizen.OTPCode != ""
	if challenge == nil && !hasDBCode {
		return nil, nil, ErrChallengeExpired
	}

	matched := challenge != nil && challenge.Code == code
	if !matched && hasDBCode && *citizen.OTPCode == code {
		matched = true
	}
	if !matched {
		return nil, nil, ErrInvalidCode
	}

	if citizen == nil {
		// Redis challenge outlived the citizen row; nothing to log into.
		return nil, nil, ErrChallengeExpired
	}
	if citizen.IsBlocked {
		return nil, nil, ErrAccountBlocked
	}

	if !citizen.IsVerified {
		if err := s.citizenRepo.MarkVerified(ctx, citizen.ID); err != nil {
			return nil, nil, err
		}
		citizen.IsVerified = true
	}

	// Replay prevention: null the stored code whichever path was taken.
	if err := s.citizenRepo.ClearCode(ctx, phone); err != nil {
		return nil, nil, err
	}
	citizen.OTPCode = nil
	if err := s.store.DeleteChallenge(ctx, phone); err != nil {
		log.Printf("otp: failed to delete challenge for %s: %v", phone, err)
	}
	if err := s.store.ClearAttempts(ctx, phone); err != nil {
		log.Printf("otp: failed to clear attempts for %s: %v", phone, err)
	}

	tokens, err := s.authService.IssueTokens(ctx, citizen.ID, domain.RoleCitizen)
	if err != nil {
		return nil, nil, err
	}

	return citizen, tokens, nil
}

// generateCode draws a zero-padded numeric code of the configured
// length from crypto/rand, e.g. "0042" for length 4.
func (s *service) generateCode() (string, error) {
	length := s.cfg.OTPLength
	if length < 4 {
		length = 4
	}

	max := big.NewInt(1)
	for i := 0; i < length; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", length, n), nil
}
