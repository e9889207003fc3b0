package models

import "time"

const (
	// DefaultTheme is the built-in theme every account starts on. It has no
	// inventory row and can always be activated.
	DefaultTheme = "default"

	// StartingCoins is the balance granted at registration.
	StartingCoins = 10
)

// KnownThemes lists every theme id the API accepts, including the built-in one.
var KnownThemes = []string{
	DefaultTheme,
	"theme_dark",
	"theme_forest",
	"theme_ocean",
	"theme_sunset",
	"theme_space",
}

func IsKnownTheme(theme string) bool {
	for _, known := range KnownThemes {
		if theme == known {
			return true
		}
	}
	return false
}

type User struct {
	ID           string     `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Name         string     `gorm:"not null" json:"name"`
	UserTheme    string     `gorm:"not null;default:default" json:"userTheme"`
	UserCoins    int64      `gorm:"not null;default:10" json:"userCoins"`
	Goals        []string   `gorm:"serializer:json" json:"goals"`
	CreatedAt    time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updatedAt"`
	LastActiveAt *time.Time `json:"lastActiveAt,omitempty"`
	LastLogoutAt *time.Time `json:"lastLogoutAt,omitempty"`
}
