package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gram-seva/internal/domain"
	"gram-seva/internal/service/auth"
)

const (
	RoleContextKey       = "role"
	AccountIDContextKey  = "account_id"
	CitizenContextKey    = "citizen"
	AdminContextKey      = "admin"
	SuperAdminContextKey = "super_admin"
)

// AuthRequired validates the bearer token and resolves the account from
// the repository matching the token's role. Blocked citizens and
// deactivated admins are rejected here, not in every handler.
func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return Unauthorized("Missing authorization header")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return Unauthorized("Invalid authorization header format")
		}

		claims, err := authService.ValidateAccessToken(parts[1])
		if err != nil {
			return Unauthorized("Invalid or expired token")
		}

		switch claims.Role {
		case domain.RoleCitizen:
			citizen, err := authService.GetCitizenByID(c.Context(), claims.AccountID)
			if err != nil || citizen == nil {
				return Unauthorized("Account not found")
			}
			if citizen.IsBlocked || !citizen.IsVerified {
				return Forbidden("Account is blocked or unverified")
			}
			c.Locals(CitizenContextKey, citizen)
		case domain.RoleAdmin:
			admin, err := authService.GetAdminByID(c.Context(), claims.AccountID)
			if err != nil || admin == nil {
				return Unauthorized("Account not found")
			}
			if !admin.IsActive {
				return Forbidden("Account is deactivated")
			}
			c.Locals(AdminContextKey, admin)
		case domain.RoleSuperAdmin:
			superAdmin, err := authService.GetSuperAdminByID(c.Context(), claims.AccountID)
			if err != nil || superAdmin == nil {
				return Unauthorized("Account not found")
			}
			c.Locals(SuperAdminContextKey, superAdmin)
		default:
			return Unauthorized("Unknown role")
		}

		c.Locals(RoleContextKey, claims.Role)
		c.Locals(AccountIDContextKey, claims.AccountID)

		return c.Next()
	}
}

func GetRole(c *fiber.Ctx) domain.Role {
	role, ok := c.Locals(RoleContextKey).(domain.Role)
	if !ok {
		return ""
	}
	return role
}

func GetAccountID(c *fiber.Ctx) uuid.UUID {
	id, ok := c.Locals(AccountIDContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

// GetRecipient builds the notification recipient ref for the current
// session. Every authenticated request has exactly one role.
func GetRecipient(c *fiber.Ctx) (domain.RecipientRef, error) {
	role := GetRole(c)
	id := GetAccountID(c)
	ref := domain.RecipientRef{Kind: role.Kind(), ID: id}
	if err := ref.Validate(); err != nil {
		return domain.RecipientRef{}, Unauthorized("Not authenticated")
	}
	return ref, nil
}

func GetCitizen(c *fiber.Ctx) *domain.Citizen {
	citizen, ok := c.Locals(CitizenContextKey).(*domain.Citizen)
	if !ok {
		return nil
	}
	return citizen
}

func GetAdmin(c *fiber.Ctx) *domain.PanchayatAdmin {
	admin, ok := c.Locals(AdminContextKey).(*domain.PanchayatAdmin)
	if !ok {
		return nil
	}
	return admin
}

func GetSuperAdmin(c *fiber.Ctx) *domain.SuperAdmin {
	superAdmin, ok := c.Locals(SuperAdminContextKey).(*domain.SuperAdmin)
	if !ok {
		return nil
	}
	return superAdmin
}
