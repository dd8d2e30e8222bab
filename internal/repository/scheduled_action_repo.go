package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"user-lifecycle-service/internal/domain"
)

const actionColumns = `id, user_id, action_type, scheduled_for, reason, created_by_id,
	status, executed_at, error_message, created_at`

// ScheduledActionRepository реализует чтение отложенных действий из PostgreSQL.
type ScheduledActionRepository struct {
	db *sql.DB
}

// NewScheduledActionRepository создает новый экземпляр ScheduledActionRepository.
func NewScheduledActionRepository(db *sql.DB) domain.ScheduledActionRepository {
	return &ScheduledActionRepository{
		db: db,
	}
}

// ListByUser возвращает все действия пользователя по убыванию scheduled_for.
func (r *ScheduledActionRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.ScheduledAction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+actionColumns+` FROM scheduled_user_actions
		WHERE user_id = $1 ORDER BY scheduled_for DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scheduled actions: %w", err)
	}
	defer rows.Close()

	return collectActions(rows)
}

// ListPendingDeactivations возвращает ожидающие деактивации по возрастанию scheduled_for.
func (r *ScheduledActionRepository) ListPendingDeactivations(ctx context.Context) ([]*domain.ScheduledAction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+actionColumns+` FROM scheduled_user_actions
		WHERE status = $1 AND action_type = $2 ORDER BY scheduled_for, id`,
		domain.ScheduledActionPending, domain.ScheduledActionDeactivate)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending deactivations: %w", err)
	}
	defer rows.Close()

	return collectActions(rows)
}

// ListOverdue возвращает ожидающие действия со scheduled_for <= now.
func (r *ScheduledActionRepository) ListOverdue(ctx context.Context, now time.Time) ([]*domain.ScheduledAction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+actionColumns+` FROM scheduled_user_actions
		WHERE status = $1 AND scheduled_for <= $2 ORDER BY scheduled_for, id`,
		domain.ScheduledActionPending, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get overdue actions: %w", err)
	}
	defer rows.Close()

	return collectActions(rows)
}

func collectActions(rows *sql.Rows) ([]*domain.ScheduledAction, error) {
	actions := make([]*domain.ScheduledAction, 0)
	for rows.Next() {
		action, err := scanScheduledAction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scheduled action: %w", err)
		}
		actions = append(actions, action)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read scheduled actions: %w", err)
	}
	return actions, nil
}

func scanScheduledAction(row rowScanner) (*domain.ScheduledAction, error) {
	var a domain.ScheduledAction
	err := row.Scan(
		&a.ID, &a.UserID, &a.ActionType, &a.ScheduledFor, &a.Reason, &a.CreatedByID,
		&a.Status, &a.ExecutedAt, &a.ErrorMessage, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
