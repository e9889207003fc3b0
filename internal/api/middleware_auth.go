package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/projectecho/server/internal/models"
)

// AuthRequired resolves the bearer token to a user and stashes both on the
// request context.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := handler.auth.Authenticate(c.Context(), token)
	if err != nil {
		return handler.serviceError(c, err)
	}

	c.Locals(contextUserKey, user)
	c.Locals(contextTokenKey, token)
	return c.Next()
}

func bearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func currentUser(c *fiber.Ctx) models.User {
	user, _ := c.Locals(contextUserKey).(models.User)
	return user
}

func currentToken(c *fiber.Ctx) string {
	token, _ := c.Locals(contextTokenKey).(string)
	return token
}
