package domain

import (
	"context"
	"time"
)

// SystemActivityStats представляет системную статистику активности пользователей.
type SystemActivityStats struct {
	TotalUsers              int64
	ActiveUsers             int64
	InactiveUsers           int64
	ScheduledDeactivations  int64
	PendingScheduledActions int64
	OverdueActions          int64
}

// StatsRepository определяет контракт для работы со статистическими данными.
type StatsRepository interface {
	GetSystemActivityStats(ctx context.Context, now time.Time) (*SystemActivityStats, error)
}
