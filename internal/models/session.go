package models

import "time"

// Session records an issued bearer token by its SHA-256 hash so logout can
// invalidate it before the JWT itself expires.
type Session struct {
	ID        string    `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"not null;index" json:"userId"`
	TokenHash string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expiresAt"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (session Session) Expired(now time.Time) bool {
	return !session.ExpiresAt.After(now)
}
