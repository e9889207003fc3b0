package models

import "time"

// ProgressSnapshot is the per-user "current" session snapshot. It caches the
// last known session shape for login-time rehydration; the user row stays the
// source of truth for coins and theme.
type ProgressSnapshot struct {
	UserID         string         `gorm:"primaryKey" json:"userId"`
	Coins          *int64         `json:"userCoins,omitempty"`
	Theme          string         `json:"userTheme,omitempty"`
	Level          *int           `json:"level,omitempty"`
	SessionActive  bool           `gorm:"not null;default:false" json:"sessionActive"`
	Telemetry      map[string]any `gorm:"serializer:json" json:"telemetry,omitempty"`
	LastSyncAt     *time.Time     `json:"lastSyncAt,omitempty"`
	SessionEndedAt *time.Time     `json:"sessionEndedAt,omitempty"`
}
