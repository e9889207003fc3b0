package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/projectecho/server/internal/models"
	"github.com/projectecho/server/internal/store"
)

// HealthService tracks per-day wellness records. Days are plain YYYY-MM-DD
// strings; a day with no record reads back as the defaults.
type HealthService struct {
	store store.Store
}

func NewHealthService(storage store.Store) *HealthService {
	return &HealthService{store: storage}
}

func (service *HealthService) Get(ctx context.Context, userID string, date string) (models.HealthRecord, error) {
	if _, err := time.Parse(models.DueDateLayout, date); err != nil {
		return models.HealthRecord{}, fmt.Errorf("%w: bad date %q", ErrInvalidInput, date)
	}

	record, found, err := service.store.Health().Get(ctx, userID, date)
	if err != nil {
		return models.HealthRecord{}, err
	}
	if !found {
		return models.EmptyHealthRecord(userID, date), nil
	}
	return record, nil
}

// Upsert replaces the whole record for the date.
func (service *HealthService) Upsert(ctx context.Context, userID string, record models.HealthRecord) (models.HealthRecord, error) {
	if _, err := time.Parse(models.DueDateLayout, record.Date); err != nil {
		return models.HealthRecord{}, fmt.Errorf("%w: bad date %q", ErrInvalidInput, record.Date)
	}

	record.UserID = userID
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.UpdatedAt = time.Now().UTC()

	if err := service.store.Health().Upsert(ctx, &record); err != nil {
		return models.HealthRecord{}, err
	}
	return record, nil
}

// Recent returns the records covering the last `days` calendar days, oldest
// first, skipping days with no record.
func (service *HealthService) Recent(ctx context.Context, userID string, days int) ([]models.HealthRecord, error) {
	if days <= 0 {
		days = 30
	}
	records := make([]models.HealthRecord, 0, days)
	today := time.Now().UTC()
	for offset := days - 1; offset >= 0; offset-- {
		date := today.AddDate(0, 0, -offset).Format(models.DueDateLayout)
		record, found, err := service.store.Health().Get(ctx, userID, date)
		if err != nil {
			return nil, err
		}
		if found {
			records = append(records, record)
		}
	}
	return records, nil
}
