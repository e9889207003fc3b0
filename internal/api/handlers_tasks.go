package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/projectecho/server/internal/services"
)

func (handler *Handler) ListTasks(c *fiber.Ctx) error {
	tasks, err := handler.tasks.List(c.Context(), currentUser(c).ID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"tasks": tasks})
}

func (handler *Handler) CreateTask(c *fiber.Ctx) error {
	draft, err := parseTaskDraft(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	task, err := handler.tasks.Create(c.Context(), currentUser(c).ID, draft)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Task created successfully",
		"task":    task,
	})
}

func (handler *Handler) UpdateTask(c *fiber.Ctx) error {
	patch, err := parseTaskPatch(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	task, err := handler.tasks.Update(c.Context(), currentUser(c).ID, c.Params("id"), patch)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Task updated successfully",
		"task":    task,
	})
}

func (handler *Handler) ToggleTask(c *fiber.Ctx) error {
	task, err := handler.tasks.Toggle(c.Context(), currentUser(c).ID, c.Params("id"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Task toggled successfully",
		"task":    task,
	})
}

func (handler *Handler) DeleteTask(c *fiber.Ctx) error {
	if err := handler.tasks.Delete(c.Context(), currentUser(c).ID, c.Params("id")); err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Task deleted successfully"})
}

func (handler *Handler) TaskStats(c *fiber.Ctx) error {
	stats, err := handler.tasks.Stats(c.Context(), currentUser(c).ID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"stats": stats})
}

func (handler *Handler) SearchTasks(c *fiber.Ctx) error {
	filter := services.TaskFilter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		Priority: c.Query("priority"),
		Limit:    50,
	}
	if raw := strings.TrimSpace(c.Query("completed")); raw != "" {
		completed := raw == "true"
		filter.Completed = &completed
	}
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			filter.Limit = parsed
		}
	}

	tasks, err := handler.tasks.Search(c.Context(), currentUser(c).ID, filter)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"tasks": tasks, "count": len(tasks)})
}

type bulkInput struct {
	Operation string          `json:"operation"`
	TaskIDs   []string        `json:"taskIds"`
	Updates   *taskPatchInput `json:"updates"`
}

func (handler *Handler) BulkTasks(c *fiber.Ctx) error {
	input := bulkInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(input.TaskIDs) == 0 {
		return apiError(c, fiber.StatusBadRequest, "taskIds must be a non-empty array")
	}

	var patch *services.TaskPatch
	if input.Updates != nil {
		validated, err := validateTaskPatch(*input.Updates)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, err.Error())
		}
		patch = &validated
	}

	result, err := handler.tasks.Bulk(c.Context(), currentUser(c).ID, input.Operation, input.TaskIDs, patch)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(result)
}
