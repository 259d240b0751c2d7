package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gram-seva/internal/domain"
	"gram-seva/internal/middleware"
	"gram-seva/internal/service/admin"
	"gram-seva/internal/service/issue"
	"gram-seva/internal/service/notification"
)

// AdminHandler covers the super-admin console: admin provisioning,
// issue assignment and broadcasts.
type AdminHandler struct {
	adminService admin.Service
	issueService issue.Service
	notifService notification.Service
}

func NewAdminHandler(adminService admin.Service, issueService issue.Service, notifService notification.Service) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		issueService: issueService,
		notifService: notifService,
	}
}

func (h *AdminHandler) CreateAdmin(c *fiber.Ctx) error {
	var input domain.CreateAdminInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Username == "" || input.Password == "" || input.FullName == "" {
		return middleware.BadRequest("Username, password and full name are required")
	}
	if len(input.Password) < 8 {
		return middleware.BadRequest("Password must be at least 8 characters")
	}

	created, err := h.adminService.Create(c.Context(), input)
	if err != nil {
		if errors.Is(err, admin.ErrUsernameExists) {
			return middleware.Conflict("Username already taken")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *AdminHandler) ListAdmins(c *fiber.Ctx) error {
	result, err := h.adminService.List(c.Context(), getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AdminHandler) DeactivateAdmin(c *fiber.Ctx) error {
	adminID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid admin ID")
	}

	if err := h.adminService.Deactivate(c.Context(), adminID); err != nil {
		return middleware.NotFound("Admin not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) AssignIssue(c *fiber.Ctx) error {
	issueID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid issue ID")
	}

	var input struct {
		AdminID uuid.UUID `json:"admin_id"`
	}
	if err := c.BodyParser(&input); err != nil || input.AdminID == uuid.Nil {
		return middleware.BadRequest("admin_id is required")
	}

	assigned, err := h.issueService.Assign(c.Context(), issueID, input.AdminID)
	if err != nil {
		switch {
		case errors.Is(err, issue.ErrIssueNotFound):
			return middleware.NotFound("Issue not found")
		case errors.Is(err, issue.ErrAdminNotFound):
			return middleware.NotFound("Admin not found or inactive")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(assigned)
}

// Broadcast sends an admin_message notification to every active admin.
// Per-admin failures are reported, not fatal.
func (h *AdminHandler) Broadcast(c *fiber.Ctx) error {
	var input domain.BroadcastInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Title == "" || input.Message == "" {
		return middleware.BadRequest("Title and message are required")
	}

	results, err := h.notifService.BroadcastToAdmins(c.Context(), domain.NotifAdminMessage, input.Title, input.Message, nil)
	if err != nil {
		return err
	}

	delivered := 0
	failed := 0
	for _, result := range results {
		if result.Err == nil {
			delivered++
		} else {
			failed++
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"delivered": delivered,
		"failed":    failed,
	})
}
