package handler

import (
	"github.com/gofiber/fiber/v2"

	"gram-seva/internal/middleware"
	"gram-seva/internal/service/achievement"
)

type AchievementHandler struct {
	achService achievement.Service
}

func NewAchievementHandler(achService achievement.Service) *AchievementHandler {
	return &AchievementHandler{achService: achService}
}

func (h *AchievementHandler) ListMine(c *fiber.Ctx) error {
	citizen := middleware.GetCitizen(c)
	if citizen == nil {
		return middleware.Unauthorized("Not authenticated")
	}

	achievements, err := h.achService.ListCitizen(c.Context(), citizen.ID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"achievements": achievements,
	})
}

func (h *AchievementHandler) ListMineAdmin(c *fiber.Ctx) error {
	admin := middleware.GetAdmin(c)
	if admin == nil {
		return middleware.Unauthorized("Not authenticated")
	}

	achievements, err := h.achService.ListAdmin(c.Context(), admin.ID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"achievements": achievements,
	})
}
