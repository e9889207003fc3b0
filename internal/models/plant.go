package models

import "time"

// StarterPlantName is given to the plant seeded at registration. Being the
// earliest-created plant makes it the one task completions grow.
const StarterPlantName = "My First Plant"

type Plant struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	UserID         string    `gorm:"not null;index" json:"userId"`
	Name           string    `gorm:"not null" json:"name"`
	TasksCompleted int64     `gorm:"not null;default:0" json:"tasksCompleted"`
	CreatedAt      time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"not null" json:"updatedAt"`
}
