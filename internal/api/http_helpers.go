package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/projectecho/server/internal/services"
	"github.com/projectecho/server/internal/store"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// serviceError translates service and store sentinels to HTTP statuses.
func (handler *Handler) serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return apiError(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, services.ErrProfileNotFound):
		return apiError(c, fiber.StatusNotFound, "user profile not found")
	case errors.Is(err, services.ErrInsufficientFunds):
		return apiError(c, fiber.StatusBadRequest, "insufficient coins")
	case errors.Is(err, services.ErrAlreadyOwned):
		return apiError(c, fiber.StatusBadRequest, "item already owned")
	case errors.Is(err, services.ErrNotOwned):
		return apiError(c, fiber.StatusForbidden, "theme not owned")
	case errors.Is(err, services.ErrInvalidInput):
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	case errors.Is(err, services.ErrEmailTaken):
		return apiError(c, fiber.StatusBadRequest, "user already exists with this email")
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrSessionRevoked):
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	case errors.Is(err, store.ErrConflict):
		return apiError(c, fiber.StatusConflict, "conflict")
	case errors.Is(err, store.ErrUnavailable):
		handler.logger.Error().Err(err).Str("path", c.Path()).Msg("storage unavailable")
		return apiError(c, fiber.StatusServiceUnavailable, "storage unavailable")
	}

	handler.logger.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	return apiError(c, fiber.StatusInternalServerError, "server error")
}
