package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/projectecho/server/internal/services"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	input, err := parseRegistration(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	user, token, err := handler.auth.Register(c.Context(), services.RegistrationInput{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
		Goals:    input.Goals,
	})
	if err != nil {
		return handler.serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"token":   token,
		"user":    user,
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input, err := parseLogin(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	user, token, err := handler.auth.Login(c.Context(), services.CredentialsInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return handler.serviceError(c, err)
	}

	response := fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	}
	if input.LoadProgress {
		view, err := handler.progress.LoadComplete(c.Context(), user.ID)
		if err != nil {
			return handler.serviceError(c, err)
		}
		response["progress"] = view
	}
	return c.JSON(response)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	if err := handler.auth.Logout(c.Context(), currentToken(c)); err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

func (handler *Handler) Profile(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"user": currentUser(c)})
}
