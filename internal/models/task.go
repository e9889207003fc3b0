package models

import "time"

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

const (
	RecurringNone    = "none"
	RecurringDaily   = "daily"
	RecurringWeekly  = "weekly"
	RecurringMonthly = "monthly"
)

// DueDateLayout is the calendar-date format tasks carry. Due dates are plain
// UTC calendar dates compared as strings, never timezone-shifted instants.
const DueDateLayout = "2006-01-02"

func IsValidPriority(priority string) bool {
	return priority == PriorityLow || priority == PriorityMedium || priority == PriorityHigh
}

func IsValidRecurring(recurring string) bool {
	switch recurring {
	case RecurringNone, RecurringDaily, RecurringWeekly, RecurringMonthly:
		return true
	}
	return false
}

type Task struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	UserID        string    `gorm:"not null;index" json:"userId"`
	Text          string    `gorm:"not null" json:"text"`
	Completed     bool      `gorm:"not null;default:false" json:"completed"`
	Priority      string    `gorm:"not null;default:medium" json:"priority"`
	Category      string    `json:"category"`
	DueDate       string    `json:"dueDate"`
	Recurring     string    `gorm:"not null;default:none" json:"recurring"`
	IsStarterTask bool      `gorm:"not null;default:false" json:"isStarterTask"`
	CreatedAt     time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"not null" json:"updatedAt"`
}
