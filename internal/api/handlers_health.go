package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/projectecho/server/internal/models"
)

func (handler *Handler) GetHealthData(c *fiber.Ctx) error {
	record, err := handler.health.Get(c.Context(), currentUser(c).ID, c.Params("date"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"healthData": record})
}

func (handler *Handler) UpsertHealthData(c *fiber.Ctx) error {
	input := healthInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := input.validate(); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	date := c.Params("date")
	userID := currentUser(c).ID

	// Start from what is already stored (or the defaults) so a partial body
	// only overwrites the fields it carries.
	record, err := handler.health.Get(c.Context(), userID, date)
	if err != nil {
		return handler.serviceError(c, err)
	}
	applyHealthInput(&record, input)

	saved, err := handler.health.Upsert(c.Context(), userID, record)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":    "Health data updated successfully",
		"healthData": saved,
	})
}

func applyHealthInput(record *models.HealthRecord, input healthInput) {
	if input.CaloriesConsumed != nil {
		record.CaloriesConsumed = *input.CaloriesConsumed
	}
	if input.CaloriesGoal != nil {
		record.CaloriesGoal = *input.CaloriesGoal
	}
	if input.WaterGlasses != nil {
		record.WaterGlasses = *input.WaterGlasses
	}
	if input.WaterGoal != nil {
		record.WaterGoal = *input.WaterGoal
	}
	if input.ExerciseMinutes != nil {
		record.ExerciseMinutes = *input.ExerciseMinutes
	}
	if input.ExerciseGoal != nil {
		record.ExerciseGoal = *input.ExerciseGoal
	}
	if input.SleepHours != nil {
		record.SleepHours = *input.SleepHours
	}
	if input.SleepGoal != nil {
		record.SleepGoal = *input.SleepGoal
	}
}
