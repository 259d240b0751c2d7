package handler

import (
	"github.com/gofiber/fiber/v2"

	"gram-seva/internal/domain"
	"gram-seva/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	Issue        *IssueHandler
	Notification *NotificationHandler
	Achievement  *AchievementHandler
	Admin        *AdminHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.OTP, services.Auth),
		Issue:        NewIssueHandler(services.Issue),
		Notification: NewNotificationHandler(services.Notification),
		Achievement:  NewAchievementHandler(services.Achievement),
		Admin:        NewAdminHandler(services.Admin, services.Issue, services.Notification),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()
	if err := c.QueryParser(&params); err != nil {
		return domain.DefaultPagination()
	}
	params.Validate()
	return params
}
