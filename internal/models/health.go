package models

import "time"

const (
	DefaultCaloriesGoal = 2000
	DefaultWaterGoal    = 8
	DefaultExerciseGoal = 30
	DefaultSleepGoal    = 8
)

// HealthRecord holds one user's goal/actual pairs for a single calendar date.
type HealthRecord struct {
	ID               string    `gorm:"primaryKey" json:"-"`
	UserID           string    `gorm:"not null;uniqueIndex:uidx_user_day" json:"userId"`
	Date             string    `gorm:"not null;uniqueIndex:uidx_user_day" json:"date"`
	CaloriesConsumed int       `gorm:"not null;default:0" json:"caloriesConsumed"`
	CaloriesGoal     int       `gorm:"not null;default:2000" json:"caloriesGoal"`
	WaterGlasses     int       `gorm:"not null;default:0" json:"waterGlasses"`
	WaterGoal        int       `gorm:"not null;default:8" json:"waterGoal"`
	ExerciseMinutes  int       `gorm:"not null;default:0" json:"exerciseMinutes"`
	ExerciseGoal     int       `gorm:"not null;default:30" json:"exerciseGoal"`
	SleepHours       float64   `gorm:"not null;default:0" json:"sleepHours"`
	SleepGoal        float64   `gorm:"not null;default:8" json:"sleepGoal"`
	UpdatedAt        time.Time `gorm:"not null" json:"-"`
}

// EmptyHealthRecord returns the defaults served when no record exists for a date.
func EmptyHealthRecord(userID string, date string) HealthRecord {
	return HealthRecord{
		UserID:       userID,
		Date:         date,
		CaloriesGoal: DefaultCaloriesGoal,
		WaterGoal:    DefaultWaterGoal,
		ExerciseGoal: DefaultExerciseGoal,
		SleepGoal:    DefaultSleepGoal,
	}
}
