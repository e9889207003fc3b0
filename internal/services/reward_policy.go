package services

import "github.com/projectecho/server/internal/models"

// Coin rewards per completed-task priority.
const (
	RewardHigh   int64 = 10
	RewardMedium int64 = 5
	RewardLow    int64 = 2
)

// RewardCoins maps a task priority to the coins one completion earns. Unknown
// or empty priorities pay the medium reward, matching task-creation defaults.
// Pure by contract: never touches storage.
func RewardCoins(priority string) int64 {
	switch priority {
	case models.PriorityHigh:
		return RewardHigh
	case models.PriorityLow:
		return RewardLow
	default:
		return RewardMedium
	}
}
