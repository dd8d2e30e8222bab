package domain

import (
	"context"
	"time"
)

// ActionType описывает тип перехода в журнале активности.
type ActionType string

const (
	ActionActivated            ActionType = "activated"
	ActionDeactivatedImmediate ActionType = "deactivated_immediate"
	ActionDeactivatedScheduled ActionType = "deactivated_scheduled"
	ActionScheduleCancelled    ActionType = "schedule_cancelled"
	ActionAutoDeactivated      ActionType = "auto_deactivated"
	ActionReactivated          ActionType = "reactivated"
)

// ActivityRecord представляет одну запись журнала активности пользователя.
// Записи только добавляются; закрывается лишь открытый период (left_at/actual_left_at).
type ActivityRecord struct {
	ID     int64
	UserID int64

	JoinedAt time.Time
	LeftAt   *time.Time

	ScheduledLeftAt *time.Time
	ActualLeftAt    *time.Time

	ActionType    ActionType
	PerformedByID *int64
	Reason        *string

	CreatedAt time.Time
}

// IsCurrent сообщает, является ли запись текущим открытым периодом.
func (r *ActivityRecord) IsCurrent() bool {
	return r.LeftAt == nil
}

// DurationDays возвращает длительность периода в днях; для открытого
// периода верхней границей служит переданный момент времени.
func (r *ActivityRecord) DurationDays(now time.Time) float64 {
	end := now
	if r.LeftAt != nil {
		end = *r.LeftAt
	}
	return end.Sub(r.JoinedAt).Seconds() / 86400
}

// ActivityHistoryEntry дополняет запись журнала именем исполнителя.
type ActivityHistoryEntry struct {
	ActivityRecord
	PerformedByUsername *string
}

// ActivityRepository определяет контракт для чтения журнала активности.
type ActivityRepository interface {
	// ListByUser возвращает записи журнала от новых к старым;
	// limit <= 0 означает без ограничения.
	ListByUser(ctx context.Context, userID int64, limit int) ([]*ActivityRecord, error)
}
