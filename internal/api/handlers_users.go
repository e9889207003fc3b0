package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/projectecho/server/internal/models"
)

func (handler *Handler) UpdateTheme(c *fiber.Ctx) error {
	input := struct {
		Theme string `json:"theme"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validateThemeChoice(input.Theme); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := handler.inventory.Activate(c.Context(), currentUser(c).ID, input.Theme); err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Theme updated successfully",
		"theme":   input.Theme,
	})
}

func (handler *Handler) ActivateTheme(c *fiber.Ctx) error {
	input := struct {
		ThemeID string `json:"themeId"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if input.ThemeID == "" {
		return apiError(c, fiber.StatusBadRequest, "theme ID is required")
	}

	if err := handler.inventory.Activate(c.Context(), currentUser(c).ID, input.ThemeID); err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":     "Theme activated and saved successfully",
		"activeTheme": input.ThemeID,
		"persistent":  true,
	})
}

func (handler *Handler) UpdateCoins(c *fiber.Ctx) error {
	input := struct {
		Amount    int64  `json:"amount"`
		Operation string `json:"operation"`
		Reason    string `json:"reason"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if input.Operation == "" {
		input.Operation = "add"
	}

	balance, err := handler.ledger.Adjust(c.Context(), currentUser(c).ID, input.Amount, input.Operation)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":   "Coins updated successfully",
		"coins":     balance,
		"operation": input.Operation,
		"amount":    input.Amount,
		"reason":    input.Reason,
	})
}

func (handler *Handler) UserStats(c *fiber.Ctx) error {
	userID := currentUser(c).ID
	ctx := c.Context()

	taskStats, err := handler.tasks.Stats(ctx, userID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	plants, err := handler.plants.List(ctx, userID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	items, err := handler.inventory.List(ctx, userID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	balance, err := handler.ledger.Balance(ctx, userID)
	if err != nil {
		return handler.serviceError(c, err)
	}

	var grown int64
	for _, plant := range plants {
		grown += plant.TasksCompleted
	}
	byType := map[string]int{}
	for _, item := range items {
		byType[item.ItemType]++
	}

	user := currentUser(c)
	return c.JSON(fiber.Map{
		"stats": fiber.Map{
			"tasks": taskStats,
			"plants": fiber.Map{
				"total":               len(plants),
				"totalTasksCompleted": grown,
			},
			"inventory": fiber.Map{
				"totalItems":  len(items),
				"themes":      byType[models.ItemTypeTheme],
				"decorations": byType[models.ItemTypeDecoration],
				"plantSkins":  byType[models.ItemTypePlantSkin],
			},
			"user": fiber.Map{
				"coins":      balance,
				"theme":      user.UserTheme,
				"goalsCount": len(user.Goals),
			},
		},
	})
}

// ExportData returns the full flat export of a user's records, with the last
// 30 days of health records keyed by date.
func (handler *Handler) ExportData(c *fiber.Ctx) error {
	userID := currentUser(c).ID
	ctx := c.Context()

	tasks, err := handler.tasks.List(ctx, userID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	plants, err := handler.plants.List(ctx, userID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	items, err := handler.inventory.List(ctx, userID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	healthRecords, err := handler.health.Recent(ctx, userID, 30)
	if err != nil {
		return handler.serviceError(c, err)
	}

	healthByDate := make(map[string]models.HealthRecord, len(healthRecords))
	for _, record := range healthRecords {
		healthByDate[record.Date] = record
	}

	return c.JSON(fiber.Map{
		"user":          currentUser(c),
		"tasks":         tasks,
		"plants":        plants,
		"inventory":     items,
		"healthData":    healthByDate,
		"exportDate":    time.Now().UTC().Format(time.RFC3339),
		"exportVersion": "1.0",
	})
}
