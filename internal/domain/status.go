package domain

import (
	"context"
	"time"
)

// StatusRepository определяет транзакционные переходы машины статусов.
// Каждый метод выполняется в одной транзакции: читает строку пользователя
// с блокировкой, проверяет предусловие и записывает все изменения атомарно.
// Момент времени now фиксируется вызывающей стороной один раз на операцию
// и используется для всех записываемых меток времени.
type StatusRepository interface {
	// Activate открывает первый период активности пользователя.
	// Предусловие: пользователь не активен.
	Activate(ctx context.Context, userID int64, performedBy *int64, reason *string, now time.Time) (*ActivityRecord, error)

	// DeactivateImmediately немедленно деактивирует пользователя,
	// отменяя все его ожидающие отложенные действия.
	// Предусловие: статус != inactive.
	DeactivateImmediately(ctx context.Context, userID int64, performedBy *int64, reason *string, now time.Time) (*ActivityRecord, error)

	// ScheduleDeactivation планирует деактивацию на будущий момент,
	// отменяя существующие ожидающие деактивации пользователя.
	// Предусловия: статус != inactive; scheduledFor > now.
	ScheduleDeactivation(ctx context.Context, userID int64, scheduledFor time.Time, performedBy *int64, reason *string, now time.Time) (*ScheduledAction, error)

	// CancelScheduledDeactivation отменяет запланированную деактивацию.
	// Предусловие: статус == scheduled_deactivation.
	CancelScheduledDeactivation(ctx context.Context, userID int64, performedBy *int64, reason *string, now time.Time) (*ActivityRecord, error)

	// Reactivate открывает новый период активности для неактивного пользователя.
	// Предусловие: статус == inactive.
	Reactivate(ctx context.Context, userID int64, performedBy *int64, reason *string, now time.Time) (*ActivityRecord, error)

	// ExecuteScheduledAction исполняет ожидающее отложенное действие.
	// Предусловие: action.status == pending. Если пользователь отсутствует,
	// действие помечается failed с сообщением об ошибке.
	ExecuteScheduledAction(ctx context.Context, actionID int64, now time.Time) error
}
