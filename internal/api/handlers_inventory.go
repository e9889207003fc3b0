package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/projectecho/server/internal/services"
)

func (handler *Handler) GetInventory(c *fiber.Ctx) error {
	items, err := handler.inventory.List(c.Context(), currentUser(c).ID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"inventory": items})
}

func (handler *Handler) PurchaseItem(c *fiber.Ctx) error {
	input := struct {
		ItemID       string `json:"itemId"`
		ItemType     string `json:"itemType"`
		ItemName     string `json:"itemName"`
		Price        *int64 `json:"price"`
		AutoActivate bool   `json:"autoActivate"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if input.ItemID == "" || input.ItemType == "" || input.Price == nil || *input.Price < 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid purchase data")
	}

	result, err := handler.inventory.Purchase(c.Context(), currentUser(c).ID, services.PurchaseOrder{
		ItemID:       input.ItemID,
		ItemType:     input.ItemType,
		ItemName:     input.ItemName,
		Price:        *input.Price,
		AutoActivate: input.AutoActivate,
	})
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":        "Item purchased successfully",
		"itemId":         result.ItemID,
		"remainingCoins": result.RemainingCoins,
		"themeActivated": result.ThemeActivated,
	})
}
