package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/projectecho/server/internal/services"
)

type progressInput struct {
	UserCoins     *int64         `json:"userCoins"`
	UserTheme     string         `json:"userTheme"`
	Level         *int           `json:"level"`
	SessionActive *bool          `json:"sessionActive"`
	Telemetry     map[string]any `json:"telemetry"`
}

func (handler *Handler) SaveProgress(c *fiber.Ctx) error {
	input := progressInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	snapshot, err := handler.progress.Save(c.Context(), currentUser(c).ID, services.SnapshotInput{
		Coins:         input.UserCoins,
		Theme:         input.UserTheme,
		Level:         input.Level,
		SessionActive: input.SessionActive,
		Telemetry:     input.Telemetry,
	})
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":    "Progress saved successfully",
		"lastSync":   snapshot.LastSyncAt,
		"persistent": true,
	})
}

func (handler *Handler) LoadProgress(c *fiber.Ctx) error {
	view, err := handler.progress.LoadComplete(c.Context(), currentUser(c).ID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  "Progress loaded successfully",
		"progress": view,
		"restored": true,
	})
}

func (handler *Handler) EndSession(c *fiber.Ctx) error {
	if err := handler.progress.EndSession(c.Context(), currentUser(c).ID); err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":   "Session ended and progress saved",
		"loggedOut": true,
	})
}
