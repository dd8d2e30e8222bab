package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"user-lifecycle-service/internal/domain"
)

// StatsRepository реализует domain.StatsRepository для работы со статистикой.
type StatsRepository struct {
	db *sql.DB
}

// NewStatsRepository создает новый экземпляр StatsRepository.
func NewStatsRepository(db *sql.DB) domain.StatsRepository {
	return &StatsRepository{
		db: db,
	}
}

// GetSystemActivityStats возвращает системную статистику активности одним запросом.
func (r *StatsRepository) GetSystemActivityStats(ctx context.Context, now time.Time) (*domain.SystemActivityStats, error) {
	var stats domain.SystemActivityStats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE status = $1),
			(SELECT COUNT(*) FROM users WHERE status = $2),
			(SELECT COUNT(*) FROM users WHERE status = $3),
			(SELECT COUNT(*) FROM scheduled_user_actions WHERE status = $4),
			(SELECT COUNT(*) FROM scheduled_user_actions WHERE status = $4 AND scheduled_for <= $5)
	`,
		domain.UserStatusActive,
		domain.UserStatusInactive,
		domain.UserStatusScheduledDeactivation,
		domain.ScheduledActionPending,
		now,
	).Scan(
		&stats.TotalUsers,
		&stats.ActiveUsers,
		&stats.InactiveUsers,
		&stats.ScheduledDeactivations,
		&stats.PendingScheduledActions,
		&stats.OverdueActions,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity stats: %w", err)
	}

	return &stats, nil
}
