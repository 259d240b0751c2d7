package unit_test

import (
	"context"
	"testing"
	"time"

	"gram-seva/internal/config"
	"gram-seva/internal/domain"
	"gram-seva/internal/service/otp"
	"gram-seva/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func otpTestConfig() *config.Config {
	return &config.Config{
		OTPLength:      4,
		OTPExpiry:      5 * time.Minute,
		OTPMaxAttempts: 5,
	}
}

func TestOTPService_RequestRegistration(t *testing.T) {
	ctx := context.Background()
	phone := "9876543210"
	name := "Ramesh Kumar"

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.CitizenRepository)
		mockStore := new(mocks.OTPStore)
		svc := otp.NewService(mockRepo, mockStore, nil, otpTestConfig())

		mockRepo.On("GetByPhone", ctx, phone).Return(nil, nil).Once()
		mockRepo.On("UpsertWithCode", ctx, phone, name, mock.AnythingOfType("string")).
			Return(&domain.Citizen{ID: uuid.New(), Phone: phone, FullName: name}, nil).Once()
		mockStore.On("SaveChallenge", ctx, mock.MatchedBy(func(c *domain.OTPChallenge) bool {
			return c.Phone == phone && c.Name == name && len(c.Code) == 4
		}), 5*time.Minute).Return(nil).Once()

		code, err := svc.RequestRegistration(ctx, phone, name)

		assert.NoError(t, err)
		assert.Len(t, code, 4)
		mockRepo.AssertExpectations(t)
		mockStore.AssertExpectations(t)
	})

	t.Run("Invalid Phone", func(t *testing.T) {
		mockRepo := new(mocks.CitizenRepository)
		mockStore := new(mocks.OTPStore)
		svc := otp.NewService(mockRepo, mockStore, nil, otpTestConfig())

		_, err := svc.RequestRegistration(ctx, "12345", name)

		assert.ErrorIs(t, err, otp.ErrInvalidPhone)
		mockRepo.AssertNotCalled(t, "GetByPhone")
	})

	t.Run("Phone Already Verified", func(t *testing.T) {
		mockRepo := new(mocks.CitizenRepository)
		mockStore := new(mocks.OTPStore)
		svc := otp.NewService(mockRepo, mockStore, nil, otpTestConfig())

		mockRepo.On("GetByPhone", ctx, phone).
			Return(&domain.Citizen{ID: uuid.New(), Phone: phone, IsVerified: true}, nil).Once()

		_, err := svc.RequestRegistration(ctx, phone, name)

		assert.ErrorIs(t, err, otp.ErrPhoneExists)
		mockRepo.AssertNotCalled(t, "UpsertWithCode")
	})

	t.Run("Stale Unverified Row Is Overwritten", func(t *testing.T) {
		mockRepo := new(mocks.CitizenRepository)
		mockStore := new(mocks.OTPStore)
		svc := otp.NewService(mockRepo, mockStore, nil, otpTestConfig())

		mockRepo.On("GetByPhone", ctx, phone).
			Return(&domain.Citizen{ID: uuid.New(), Phone: phone, IsVerified: false}, nil).Once()
		mockRepo.On("UpsertWithCode", ctx, phone, name, mock.AnythingOfType("string")).
			Return(&domain.Citizen{ID: uuid.New(), Phone: phone, FullName: name}, nil).Once()
		mockStore.On("SaveChallenge", ctx, mock.Anything, 5*time.Minute).Return(nil).Once()

		_, err := svc.RequestRegistration(ctx, phone, name)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestOTPService_RequestLogin(t *testing.T) {
	ctx := context.Background()
	phone := "9876543210"

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.CitizenRepository)
		mockStore := new(mocks.OTPStore)
		svc := otp.NewService(mockRepo, mockStore, nil, otpTestConfig())

		citizenID := uuid.New()
		mockRepo.On("GetByPhone", ctx, phone).
			Return(&domain.Citizen{ID: citizenID, Phone: phone, FullName: "Sita Devi", IsVerified: true}, nil).Once()
		mockRepo.On("SetCode", ctx, citizenID, mock.AnythingOfType("string")).Return(nil).Once()
		mockStore.On("SaveChallenge", ctx, mock.Anything, 5*time.Minute).Return(nil).Once()

		code, err := svc.RequestLogin(ctx, phone)

		assert.NoError(t, err)
		assert.Len(t, code, 4)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown Phone", func(t *testing.T) {
		mockRepo := new(mocks.CitizenRepository)
		mockStore := new(mocks.OTPStore)
		svc := otp.NewService(mockRepo, mockStore, nil, otpTestConfig())

		mockRepo.On("GetByPhone", ctx, phone).Return(nil, nil).Once()

		_, err := svc.RequestLogin(ctx, phone)

		assert.ErrorIs(t, err, otp.ErrAccountNotFound)
	})

	t.Run("Blocked Account", func(t *testing.T) {
		mockRepo := new(mocks.CitizenRepository)
		mockStore := new(mocks.OTPStore)
		svc := otp.NewService(mockRepo, mockStore, nil, otpTestConfig())

		mockRepo.On("GetByPhone", ctx, phone).
			Return(&domain.Citizen{ID: uuid.New(), Phone: phone, IsVerified: true, IsBlocked: true}, nil).Once()

		_, err := svc.RequestLogin(ctx, phone)

		assert.ErrorIs(t, err, otp.ErrAccountBlocked)
		mockRepo.AssertNotCalled(t, "SetCode")
	})
}

func TestOTPService_Verify(t *testing.T) {
	ctx := context.Background()
	phone := "9876543210"
	code := "4821"

	t.Run("Registration Success", func(t *testing.T) {
		mockRepo := new(mocks.CitizenRepository)
		mockStore := new(mocks.OTPStore)
		mockAuth := new(mocks.AuthService)
		svc := otp.NewService(mockRepo, mockStore, mockAuth, otpTestConfig())

		citizenID := uuid.New()
		dbCode := code
		mockStore.On("IncrAttempts", ctx, phone, 5*time.Minute).Return(int64(1), nil).Once()
		mockStore.On("GetChallenge", ctx, phone).
			Return(&domain.OTPChallenge{Phone: phone, Name: "Ramesh Kumar", Code: code}, nil).Once()
		mockRepo.On("GetByPhone", ctx, phone).
			Return(&domain.Citizen{ID: citizenID, Phone: phone, FullName: "Ramesh Kumar", OTPCode: &dbCode}, nil).Once()
		mockRepo.On("MarkVerified", ctx, citizenID).Return(nil).Once()
		mockRepo.On("ClearCode", ctx, phone).Return(nil).Once()
		mockStore.On("DeleteChallenge", ctx, phone).Return(nil).Once()
		mockStore.On("ClearAttempts", ctx, phone).Return(nil).Once()
		mockAuth.On("IssueTokens", ctx, citizenID, domain.RoleCitizen).
			Return(&domain.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil).Once()

		citizen, tokens, err := svc.Verify(ctx, phone, code)

		assert.NoError(t, err)
		assert.True(t, citizen.IsVerified)
		assert.Nil(t, citizen.OTPCode)
		assert.Equal(t, "access", tokens.AccessToken)
		mockRepo.AssertExpectations(t)
		mockStore.AssertExpectations(t)
	})

	t.Run("Wrong Code", func(t *testing.T) {
		mockRepo := new(mocks.CitizenRepository)
		mockStore := new(mocks.OTPStore)
		svc := otp.NewService(mockRepo, mockStore, nil, otpTestConfig())

		dbCode := code
		mockStore.On("IncrAttempts", ctx, phone, 5*time.Minute).Return(int64(2), nil).Once()
		mockStore.On("GetChallenge", ctx, phone).
			Return(&domain.OTPChallenge{Phone: phone, Code: code}, nil).Once()
		mockRepo.On("GetByPhone", ctx, phone).
			Return(&domain.Citizen{ID: uuid.New(), Phone: phone, OTPCode: &dbCode}, nil).Once()

		_, _, err := svc.Verify(ctx, phone, "0000")

		assert.ErrorIs(t, err, otp.ErrInvalidCode)
		mockRepo.AssertNotCalled(t, "ClearCode")
	})

	t.Run("Challenge Expired", func(t *testing.T) {
		mockRepo := new(mocks.CitizenRepository)
		mockStore := new(mocks.OTPStore)
		svc := otp.NewService(mockRepo, mockStore, nil, otpTestConfig())

		mockStore.On("IncrAttempts", ctx, phone, 5*time.Minute).Return(int64(1), nil).Once()
		mockStore.On("GetChallenge", ctx, phone).Return(nil, nil).Once()
		mockRepo.On("GetByPhone", ctx, phone).
			Return(&domain.Citizen{ID: uuid.New(), Phone: phone, IsVerified: true}, nil).Once()

		_, _, err := svc.Verify(ctx, phone, code)

		assert.ErrorIs(t, err, otp.ErrChallengeExpired)
	})

	t.Run("Too Many Attempts", func(t *testing.T) {
		mockRepo := new(mocks.CitizenRepository)
		mockStore := new(mocks.OTPStore)
		svc := otp.NewService(mockRepo, mockStore, nil, otpTestConfig())

		mockStore.On("IncrAttempts", ctx, phone, 5*time.Minute).Return(int64(6), nil).Once()

		_, _, err := svc.Verify(ctx, phone, code)

		assert.ErrorIs(t, err, otp.ErrTooManyAttempts)
		mockStore.AssertNotCalled(t, "GetChallenge")
	})

	t.Run("DB Code Fallback When Challenge Store Is Down", func(t *testing.T) {
		mockRepo := new(mocks.CitizenRepository)
		mockStore := new(mocks.OTPStore)
		mockAuth := new(mocks.AuthService)
		svc := otp.NewService(mockRepo, mockStore, mockAuth, otpTestConfig())

		citizenID := uuid.New()
		dbCode := code
		mockStore.On("IncrAttempts", ctx, phone, 5*time.Minute).Return(int64(1), nil).Once()
		mockStore.On("GetChallenge", ctx, phone).Return(nil, assert.AnError).Once()
		mockRepo.On("GetByPhone", ctx, phone).
			Return(&domain.Citizen{ID: citizenID, Phone: phone, IsVerified: true, OTPCode: &dbCode}, nil).Once()
		mockRepo.On("ClearCode", ctx, phone).Return(nil).Once()
		mockStore.On("DeleteChallenge", ctx, phone).Return(nil).Once()
		mockStore.On("ClearAttempts", ctx, phone).Return(nil).Once()
		mockAuth.On("IssueTokens", ctx, citizenID, domain.RoleCitizen).
			Return(&domain.TokenPair{AccessToken: "access"}, nil).Once()

		citizen, _, err := svc.Verify(ctx, phone, code)

		assert.NoError(t, err)
		assert.NotNil(t, citizen)
		mockRepo.AssertNotCalled(t, "MarkVerified")
	})

	t.Run("Blocked Account", func(t *testing.T) {
		mockRepo := new(mocks.CitizenRepository)
		mockStore := new(mocks.OTPStore)
		svc := otp.NewService(mockRepo, mockStore, nil, otpTestConfig())

		mockStore.On("IncrAttempts", ctx, phone, 5*time.Minute).Return(int64(1), nil).Once()
		mockStore.On("GetChallenge", ctx, phone).
			Return(&domain.OTPChallenge{Phone: phone, Code: code}, nil).Once()
		mockRepo.On("GetByPhone", ctx, phone).
			Return(&domain.Citizen{ID: uuid.New(), Phone: phone, IsVerified: true, IsBlocked: true}, nil).Once()

		_, _, err := svc.Verify(ctx, phone, code)

		assert.ErrorIs(t, err, otp.ErrAccountBlocked)
		mockRepo.AssertNotCalled(t, "ClearCode")
	})
}
