package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Healthz)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/profile", handler.AuthRequired, handler.Profile)

	// Literal segments must register before /:id.
	tasks := api.Group("/tasks", handler.AuthRequired)
	tasks.Get("/stats", handler.TaskStats)
	tasks.Get("/search", handler.SearchTasks)
	tasks.Post("/bulk", handler.BulkTasks)
	tasks.Get("/", handler.ListTasks)
	tasks.Post("/", handler.CreateTask)
	tasks.Put("/:id", handler.UpdateTask)
	tasks.Patch("/:id/toggle", handler.ToggleTask)
	tasks.Delete("/:id", handler.DeleteTask)

	users := api.Group("/users", handler.AuthRequired)
	users.Patch("/theme", handler.UpdateTheme)
	users.Post("/theme/activate", handler.ActivateTheme)
	users.Get("/inventory", handler.GetInventory)
	users.Post("/inventory/purchase", handler.PurchaseItem)
	users.Get("/plants", handler.GetPlants)
	users.Post("/plants", handler.CreatePlant)
	users.Get("/health/:date", handler.GetHealthData)
	users.Put("/health/:date", handler.UpsertHealthData)
	users.Patch("/coins", handler.UpdateCoins)
	users.Get("/stats", handler.UserStats)
	users.Post("/progress/save", handler.SaveProgress)
	users.Get("/progress/load", handler.LoadProgress)
	users.Post("/session/end", handler.EndSession)
	users.Get("/export", handler.ExportData)
}
