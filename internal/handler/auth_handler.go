package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"gram-seva/internal/domain"
	"gram-seva/internal/middleware"
	"gram-seva/internal/service/auth"
	"gram-seva/internal/service/otp"
)

type AuthHandler struct {
	otpService  otp.Service
	authService auth.Service
}

func NewAuthHandler(otpService otp.Service, authService auth.Service) *AuthHandler {
	return &AuthHandler{otpService: otpService, authService: authService}
}

// RequestRegistrationOTP starts the registration challenge. The code is
// returned in the response body: there is no SMS gateway, the demo
// channel is the page itself.
func (h *AuthHandler) RequestRegistrationOTP(c *fiber.Ctx) error {
	var input domain.RequestOTPInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Name == "" {
		return middleware.BadRequest("Name is required")
	}

	code, err := h.otpService.RequestRegistration(c.Context(), input.Phone, input.Name)
	if err != nil {
		switch {
		case errors.Is(err, otp.ErrInvalidPhone):
			return middleware.BadRequest(err.Error())
		case errors.Is(err, otp.ErrPhoneExists):
			return middleware.Conflict(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Verification code generated",
		"code":    code,
	})
}

func (h *AuthHandler) RequestLoginOTP(c *fiber.Ctx) error {
	var input domain.RequestLoginOTPInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	code, err := h.otpService.RequestLogin(c.Context(), input.Phone)
	if err != nil {
		switch {
		case errors.Is(err, otp.ErrInvalidPhone):
			return middleware.BadRequest(err.Error())
		case errors.Is(err, otp.ErrAccountNotFound):
			return middleware.NotFound(err.Error())
		case errors.Is(err, otp.ErrAccountBlocked):
			return middleware.Forbidden(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Verification code generated",
		"code":    code,
	})
}

func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var input domain.VerifyOTPInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	citizen, tokens, err := h.otpService.Verify(c.Context(), input.Phone, input.Code)
	if err != nil {
		switch {
		case errors.Is(err, otp.ErrInvalidPhone):
			return middleware.BadRequest(err.Error())
		case errors.Is(err, otp.ErrChallengeExpired):
			return middleware.Gone(err.Error())
		case errors.Is(err, otp.ErrInvalidCode):
			return middleware.Unauthorized(err.Error())
		case errors.Is(err, otp.ErrTooManyAttempts):
			return middleware.TooManyRequests(err.Error())
		case errors.Is(err, otp.ErrAccountBlocked):
			return middleware.Forbidden(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"citizen":       citizen,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_in":    tokens.ExpiresIn,
	})
}

func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var input domain.AdminLoginInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	admin, tokens, err := h.authService.LoginAdmin(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			return middleware.Unauthorized("Invalid username or password")
		case errors.Is(err, auth.ErrAccountDeactivated):
			return middleware.Forbidden("Account is deactivated")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"admin":         admin,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_in":    tokens.ExpiresIn,
	})
}

func (h *AuthHandler) SuperAdminLogin(c *fiber.Ctx) error {
	var input domain.AdminLoginInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	superAdmin, tokens, err := h.authService.LoginSuperAdmin(c.Context(), input)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return middleware.Unauthorized("Invalid username or password")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"super_admin":   superAdmin,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_in":    tokens.ExpiresIn,
	})
}

func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	tokens, err := h.authService.RefreshToken(c.Context(), input.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return middleware.Unauthorized("Invalid refresh token")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_in":    tokens.ExpiresIn,
	})
}
