package api

import (
	"github.com/projectecho/server/internal/services"
	"github.com/rs/zerolog"
)

// Handler carries the service graph behind every route.
type Handler struct {
	auth      *services.AuthService
	tasks     *services.TaskService
	ledger    *services.LedgerService
	inventory *services.InventoryService
	plants    *services.PlantService
	progress  *services.ProgressService
	health    *services.HealthService
	logger    zerolog.Logger
}

type HandlerDeps struct {
	Auth      *services.AuthService
	Tasks     *services.TaskService
	Ledger    *services.LedgerService
	Inventory *services.InventoryService
	Plants    *services.PlantService
	Progress  *services.ProgressService
	Health    *services.HealthService
	Logger    zerolog.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		auth:      deps.Auth,
		tasks:     deps.Tasks,
		ledger:    deps.Ledger,
		inventory: deps.Inventory,
		plants:    deps.Plants,
		progress:  deps.Progress,
		health:    deps.Health,
		logger:    deps.Logger,
	}
}

const contextUserKey = "current_user"
const contextTokenKey = "bearer_token"
