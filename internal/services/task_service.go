package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/projectecho/server/internal/models"
	"github.com/projectecho/server/internal/store"
	"github.com/rs/zerolog"
)

// TaskDraft carries the caller-validated fields for a new task. Text length
// bounds are an API-layer precondition, not re-checked here.
type TaskDraft struct {
	Text          string
	Priority      string
	Category      string
	DueDate       string
	Recurring     string
	IsStarterTask bool
}

// TaskPatch updates only the fields that are set.
type TaskPatch struct {
	Text      *string
	Completed *bool
	Priority  *string
	Category  *string
	DueDate   *string
	Recurring *string
}

type TaskStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
	DueToday  int `json:"today"`
}

type TaskFilter struct {
	Query     string
	Category  string
	Priority  string
	Completed *bool
	Limit     int
}

type BulkItemResult struct {
	TaskID  string `json:"taskId"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type BulkResult struct {
	Results    []BulkItemResult `json:"results"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
}

const (
	BulkOperationComplete = "complete"
	BulkOperationDelete   = "delete"
	BulkOperationUpdate   = "update"
)

// TaskService owns task CRUD and the completion transition. A completion
// (completed flipping false→true) pays exactly one reward: policy coins to
// the ledger plus one growth tick on the primary plant, all inside the same
// atomic unit as the task write. Un-completing never claws anything back —
// rewards are per transition, by design.
type TaskService struct {
	store  store.Store
	logger zerolog.Logger
}

func NewTaskService(storage store.Store, logger zerolog.Logger) *TaskService {
	return &TaskService{store: storage, logger: logger}
}

func (service *TaskService) Create(ctx context.Context, userID string, draft TaskDraft) (models.Task, error) {
	now := time.Now().UTC()
	task := models.Task{
		ID:            uuid.NewString(),
		UserID:        userID,
		Text:          draft.Text,
		Completed:     false,
		Priority:      draft.Priority,
		Category:      draft.Category,
		DueDate:       draft.DueDate,
		Recurring:     draft.Recurring,
		IsStarterTask: draft.IsStarterTask,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if !models.IsValidPriority(task.Priority) {
		task.Priority = models.PriorityMedium
	}
	if !models.IsValidRecurring(task.Recurring) {
		task.Recurring = models.RecurringNone
	}

	if err := service.store.Tasks().Insert(ctx, &task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (service *TaskService) List(ctx context.Context, userID string) ([]models.Task, error) {
	return service.store.Tasks().ListByUser(ctx, userID)
}

func (service *TaskService) Get(ctx context.Context, userID string, taskID string) (models.Task, error) {
	return service.store.Tasks().GetByID(ctx, userID, taskID)
}

// Update applies a patch. When the patch flips completed false→true the
// reward writes ride in the same atomic unit as the task update.
func (service *TaskService) Update(ctx context.Context, userID string, taskID string, patch TaskPatch) (models.Task, error) {
	var updated models.Task
	err := service.store.Atomic(ctx, userID, func(tx store.Store) error {
		task, err := tx.Tasks().GetByID(ctx, userID, taskID)
		if err != nil {
			return err
		}

		next := task
		if patch.Text != nil {
			next.Text = *patch.Text
		}
		if patch.Completed != nil {
			next.Completed = *patch.Completed
		}
		if patch.Priority != nil && models.IsValidPriority(*patch.Priority) {
			next.Priority = *patch.Priority
		}
		if patch.Category != nil {
			next.Category = *patch.Category
		}
		if patch.DueDate != nil {
			next.DueDate = *patch.DueDate
		}
		if patch.Recurring != nil && models.IsValidRecurring(*patch.Recurring) {
			next.Recurring = *patch.Recurring
		}
		next.UpdatedAt = time.Now().UTC()

		rewarding := !task.Completed && next.Completed

		// All reads happen before the first write: the doc adapter buffers
		// writes until the unit commits.
		var primary models.Plant
		var hasPrimary bool
		if rewarding {
			plants, err := tx.Plants().ListByUser(ctx, userID)
			if err != nil {
				return err
			}
			primary, hasPrimary = PrimaryPlant(plants)
		}

		if err := tx.Tasks().Update(ctx, userID, taskID, map[string]any{
			"text":       next.Text,
			"completed":  next.Completed,
			"priority":   next.Priority,
			"category":   next.Category,
			"due_date":   next.DueDate,
			"recurring":  next.Recurring,
			"updated_at": next.UpdatedAt,
		}); err != nil {
			return err
		}

		if rewarding {
			if err := tx.Users().AddCoins(ctx, userID, RewardCoins(next.Priority)); err != nil {
				return err
			}
			if hasPrimary {
				if err := tx.Plants().AddTasksCompleted(ctx, userID, primary.ID, 1); err != nil {
					return err
				}
			} else {
				service.logger.Warn().
					Str("user_id", userID).
					Msg("task completed but user has no plants; skipping growth tick")
			}
		}

		updated = next
		return nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return updated, nil
}

// Toggle flips the completion flag; the false→true direction rewards, the
// true→false direction does not reverse anything.
func (service *TaskService) Toggle(ctx context.Context, userID string, taskID string) (models.Task, error) {
	task, err := service.store.Tasks().GetByID(ctx, userID, taskID)
	if err != nil {
		return models.Task{}, err
	}
	next := !task.Completed
	return service.Update(ctx, userID, taskID, TaskPatch{Completed: &next})
}

func (service *TaskService) Delete(ctx context.Context, userID string, taskID string) error {
	return service.store.Atomic(ctx, userID, func(tx store.Store) error {
		if _, err := tx.Tasks().GetByID(ctx, userID, taskID); err != nil {
			return err
		}
		return tx.Tasks().Delete(ctx, userID, taskID)
	})
}

// Stats compares due dates as UTC calendar-date strings (YYYY-MM-DD). Overdue
// means strictly before today and not completed.
func (service *TaskService) Stats(ctx context.Context, userID string) (TaskStats, error) {
	tasks, err := service.store.Tasks().ListByUser(ctx, userID)
	if err != nil {
		return TaskStats{}, err
	}

	today := time.Now().UTC().Format(models.DueDateLayout)
	stats := TaskStats{}
	for _, task := range tasks {
		stats.Total++
		if task.Completed {
			stats.Completed++
		}
		if task.DueDate == "" {
			continue
		}
		if task.DueDate == today {
			stats.DueToday++
		}
		if task.DueDate < today && !task.Completed {
			stats.Overdue++
		}
	}
	return stats, nil
}

// Search filters the full task list in memory: case-insensitive substring on
// text and category, exact match on the remaining filters, capped by Limit.
func (service *TaskService) Search(ctx context.Context, userID string, filter TaskFilter) ([]models.Task, error) {
	tasks, err := service.store.Tasks().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	matched := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if query != "" &&
			!strings.Contains(strings.ToLower(task.Text), query) &&
			!strings.Contains(strings.ToLower(task.Category), query) {
			continue
		}
		if filter.Category != "" && task.Category != filter.Category {
			continue
		}
		if filter.Priority != "" && task.Priority != filter.Priority {
			continue
		}
		if filter.Completed != nil && task.Completed != *filter.Completed {
			continue
		}
		matched = append(matched, task)
		if filter.Limit > 0 && len(matched) >= filter.Limit {
			break
		}
	}
	return matched, nil
}

// Bulk applies one operation to each id independently; a failing id never
// aborts the rest of the batch.
func (service *TaskService) Bulk(ctx context.Context, userID string, operation string, taskIDs []string, patch *TaskPatch) (BulkResult, error) {
	if operation != BulkOperationComplete && operation != BulkOperationDelete && operation != BulkOperationUpdate {
		return BulkResult{}, ErrInvalidInput
	}
	if operation == BulkOperationUpdate && patch == nil {
		return BulkResult{}, ErrInvalidInput
	}

	result := BulkResult{Results: make([]BulkItemResult, 0, len(taskIDs))}

	apply := func(taskID string) error {
		switch operation {
		case BulkOperationComplete:
			completed := true
			_, err := service.Update(ctx, userID, taskID, TaskPatch{Completed: &completed})
			return err
		case BulkOperationDelete:
			return service.Delete(ctx, userID, taskID)
		default:
			_, err := service.Update(ctx, userID, taskID, *patch)
			return err
		}
	}

	for _, taskID := range taskIDs {
		if err := apply(taskID); err != nil {
			result.Results = append(result.Results, BulkItemResult{TaskID: taskID, Success: false, Error: err.Error()})
			result.Failed++
			continue
		}
		result.Results = append(result.Results, BulkItemResult{TaskID: taskID, Success: true})
		result.Successful++
	}
	return result, nil
}
