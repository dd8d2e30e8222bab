package domain

import (
	"context"
	"time"
)

// StatusUseCase определяет бизнес-логику жизненного цикла пользователя.
type StatusUseCase interface {
	ActivateUser(ctx context.Context, userID int64, performedBy *int64, reason *string) (*ActivityRecord, error)
	DeactivateUserImmediately(ctx context.Context, userID int64, performedBy *int64, reason *string) (*ActivityRecord, error)
	ScheduleUserDeactivation(ctx context.Context, userID int64, scheduledFor time.Time, performedBy *int64, reason *string) (*ScheduledAction, error)
	CancelScheduledDeactivation(ctx context.Context, userID int64, performedBy *int64, reason *string) (*ActivityRecord, error)
	ReactivateUser(ctx context.Context, userID int64, performedBy *int64, reason *string) (*ActivityRecord, error)
	ExecuteScheduledAction(ctx context.Context, actionID int64) error

	GetUserStatusInfo(ctx context.Context, userID int64) (*UserStatusInfo, error)
	GetUserActivityHistory(ctx context.Context, userID int64, limit int) ([]*ActivityHistoryEntry, error)
	GetUserScheduledActions(ctx context.Context, userID int64) ([]*ScheduledAction, error)
	GetPendingDeactivations(ctx context.Context) ([]*ScheduledAction, error)
	GetOverdueActions(ctx context.Context) ([]*ScheduledAction, error)
	GetSystemActivityStats(ctx context.Context) (*SystemActivityStats, error)
}

// SweeperInfo представляет состояние фонового обработчика отложенных действий.
type SweeperInfo struct {
	Running  bool
	NextTick *time.Time
}

// SweeperControl определяет управление фоновым обработчиком.
type SweeperControl interface {
	Start()
	Stop()
	Info() SweeperInfo
}
