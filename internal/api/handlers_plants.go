package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) GetPlants(c *fiber.Ctx) error {
	plants, err := handler.plants.List(c.Context(), currentUser(c).ID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"plants": plants})
}

func (handler *Handler) CreatePlant(c *fiber.Ctx) error {
	input := struct {
		Name string `json:"name"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	name, err := validatePlantName(input.Name)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	plant, err := handler.plants.Create(c.Context(), currentUser(c).ID, name)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Plant added successfully",
		"plant":   plant,
	})
}
