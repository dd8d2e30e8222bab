package domain

import (
	"context"
	"time"
)

// ScheduledActionType описывает тип отложенного действия.
type ScheduledActionType string

const (
	ScheduledActionDeactivate ScheduledActionType = "deactivate"
)

// ScheduledActionStatus описывает статус отложенного действия.
// Переходы односторонние: pending -> executed | cancelled | failed.
type ScheduledActionStatus string

const (
	ScheduledActionPending   ScheduledActionStatus = "pending"
	ScheduledActionExecuted  ScheduledActionStatus = "executed"
	ScheduledActionCancelled ScheduledActionStatus = "cancelled"
	ScheduledActionFailed    ScheduledActionStatus = "failed"
)

// ScheduledAction представляет отложенное действие над пользователем.
type ScheduledAction struct {
	ID     int64
	UserID int64

	ActionType   ScheduledActionType
	ScheduledFor time.Time
	Reason       *string
	CreatedByID  *int64

	Status       ScheduledActionStatus
	ExecutedAt   *time.Time
	ErrorMessage *string

	CreatedAt time.Time
}

// IsOverdue сообщает, просрочено ли ожидающее действие.
func (a *ScheduledAction) IsOverdue(now time.Time) bool {
	if a.Status != ScheduledActionPending {
		return false
	}
	return !a.ScheduledFor.After(now)
}

// TimeUntilExecution возвращает секунды до исполнения; nil, если действие не ожидает.
func (a *ScheduledAction) TimeUntilExecution(now time.Time) *float64 {
	if a.Status != ScheduledActionPending {
		return nil
	}
	secs := a.ScheduledFor.Sub(now).Seconds()
	if secs < 0 {
		secs = 0
	}
	return &secs
}

// ScheduledActionRepository определяет контракт для чтения отложенных действий.
type ScheduledActionRepository interface {
	// ListByUser возвращает все действия пользователя по убыванию scheduled_for.
	ListByUser(ctx context.Context, userID int64) ([]*ScheduledAction, error)
	// ListPendingDeactivations возвращает ожидающие деактивации по возрастанию scheduled_for.
	ListPendingDeactivations(ctx context.Context) ([]*ScheduledAction, error)
	// ListOverdue возвращает ожидающие действия со scheduled_for <= now.
	ListOverdue(ctx context.Context, now time.Time) ([]*ScheduledAction, error)
}
