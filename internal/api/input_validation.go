package api

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/projectecho/server/internal/models"
	"github.com/projectecho/server/internal/services"
)

type registerInput struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Name     string   `json:"name"`
	Goals    []string `json:"goals"`
}

type loginInput struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	LoadProgress bool   `json:"loadProgress"`
}

type taskInput struct {
	Text      string `json:"text"`
	Priority  string `json:"priority"`
	Category  string `json:"category"`
	DueDate   string `json:"dueDate"`
	Recurring string `json:"recurring"`
}

type taskPatchInput struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
	Priority  *string `json:"priority"`
	Category  *string `json:"category"`
	DueDate   *string `json:"dueDate"`
	Recurring *string `json:"recurring"`
}

func parseRegistration(c *fiber.Ctx) (registerInput, error) {
	input := registerInput{}
	if err := c.BodyParser(&input); err != nil {
		return registerInput{}, errors.New("invalid request body")
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Name = strings.TrimSpace(input.Name)

	if _, err := mail.ParseAddress(input.Email); err != nil {
		return registerInput{}, errors.New("please provide a valid email")
	}
	if len(input.Password) < 6 {
		return registerInput{}, errors.New("password must be at least 6 characters long")
	}
	if len(input.Name) < 2 || len(input.Name) > 50 {
		return registerInput{}, errors.New("name must be between 2 and 50 characters")
	}
	return input, nil
}

func parseLogin(c *fiber.Ctx) (loginInput, error) {
	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return loginInput{}, errors.New("invalid request body")
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" || input.Password == "" {
		return loginInput{}, errors.New("email and password are required")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return loginInput{}, errors.New("please provide a valid email")
	}
	return input, nil
}

func validateTaskFields(text string, priority string, category string, dueDate string, recurring string) error {
	text = strings.TrimSpace(text)
	if len(text) < 1 || len(text) > 500 {
		return errors.New("task text must be between 1 and 500 characters")
	}
	if priority != "" && !models.IsValidPriority(priority) {
		return errors.New("priority must be low, medium, or high")
	}
	if len(category) > 50 {
		return errors.New("category must be less than 50 characters")
	}
	if dueDate != "" {
		if _, err := time.Parse(models.DueDateLayout, dueDate); err != nil {
			return errors.New("due date must be a valid date")
		}
	}
	if recurring != "" && !models.IsValidRecurring(recurring) {
		return errors.New("recurring must be none, daily, weekly, or monthly")
	}
	return nil
}

func parseTaskDraft(c *fiber.Ctx) (services.TaskDraft, error) {
	input := taskInput{}
	if err := c.BodyParser(&input); err != nil {
		return services.TaskDraft{}, errors.New("invalid request body")
	}

	input.Text = strings.TrimSpace(input.Text)
	if err := validateTaskFields(input.Text, input.Priority, input.Category, input.DueDate, input.Recurring); err != nil {
		return services.TaskDraft{}, err
	}

	return services.TaskDraft{
		Text:      input.Text,
		Priority:  input.Priority,
		Category:  strings.TrimSpace(input.Category),
		DueDate:   input.DueDate,
		Recurring: input.Recurring,
	}, nil
}

func parseTaskPatch(c *fiber.Ctx) (services.TaskPatch, error) {
	input := taskPatchInput{}
	if err := c.BodyParser(&input); err != nil {
		return services.TaskPatch{}, errors.New("invalid request body")
	}
	return validateTaskPatch(input)
}

func validateTaskPatch(input taskPatchInput) (services.TaskPatch, error) {
	patch := services.TaskPatch{
		Text:      input.Text,
		Completed: input.Completed,
		Priority:  input.Priority,
		Category:  input.Category,
		DueDate:   input.DueDate,
		Recurring: input.Recurring,
	}

	if patch.Text != nil {
		trimmed := strings.TrimSpace(*patch.Text)
		if len(trimmed) < 1 || len(trimmed) > 500 {
			return services.TaskPatch{}, errors.New("task text must be between 1 and 500 characters")
		}
		patch.Text = &trimmed
	}
	if patch.Priority != nil && !models.IsValidPriority(*patch.Priority) {
		return services.TaskPatch{}, errors.New("priority must be low, medium, or high")
	}
	if patch.Category != nil && len(*patch.Category) > 50 {
		return services.TaskPatch{}, errors.New("category must be less than 50 characters")
	}
	if patch.DueDate != nil && *patch.DueDate != "" {
		if _, err := time.Parse(models.DueDateLayout, *patch.DueDate); err != nil {
			return services.TaskPatch{}, errors.New("due date must be a valid date")
		}
	}
	if patch.Recurring != nil && !models.IsValidRecurring(*patch.Recurring) {
		return services.TaskPatch{}, errors.New("recurring must be none, daily, weekly, or monthly")
	}
	return patch, nil
}

func validateThemeChoice(theme string) error {
	if !models.IsKnownTheme(theme) {
		return errors.New("invalid theme selection")
	}
	return nil
}

type healthInput struct {
	CaloriesConsumed *int     `json:"caloriesConsumed"`
	CaloriesGoal     *int     `json:"caloriesGoal"`
	WaterGlasses     *int     `json:"waterGlasses"`
	WaterGoal        *int     `json:"waterGoal"`
	ExerciseMinutes  *int     `json:"exerciseMinutes"`
	ExerciseGoal     *int     `json:"exerciseGoal"`
	SleepHours       *float64 `json:"sleepHours"`
	SleepGoal        *float64 `json:"sleepGoal"`
}

func (input healthInput) validate() error {
	checkInt := func(value *int, min int, max int, message string) error {
		if value != nil && (*value < min || *value > max) {
			return errors.New(message)
		}
		return nil
	}
	checkFloat := func(value *float64, min float64, max float64, message string) error {
		if value != nil && (*value < min || *value > max) {
			return errors.New(message)
		}
		return nil
	}

	if err := checkInt(input.CaloriesConsumed, 0, 10000, "calories consumed must be between 0 and 10000"); err != nil {
		return err
	}
	if err := checkInt(input.CaloriesGoal, 500, 5000, "calories goal must be between 500 and 5000"); err != nil {
		return err
	}
	if err := checkInt(input.WaterGlasses, 0, 50, "water glasses must be between 0 and 50"); err != nil {
		return err
	}
	if err := checkInt(input.WaterGoal, 1, 20, "water goal must be between 1 and 20"); err != nil {
		return err
	}
	if err := checkInt(input.ExerciseMinutes, 0, 600, "exercise minutes must be between 0 and 600"); err != nil {
		return err
	}
	if err := checkInt(input.ExerciseGoal, 1, 300, "exercise goal must be between 1 and 300"); err != nil {
		return err
	}
	if err := checkFloat(input.SleepHours, 0, 24, "sleep hours must be between 0 and 24"); err != nil {
		return err
	}
	return checkFloat(input.SleepGoal, 1, 12, "sleep goal must be between 1 and 12")
}

func validatePlantName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("plant name is required")
	}
	if len(name) > 50 {
		return "", errors.New("plant name must be less than 50 characters")
	}
	return name, nil
}
