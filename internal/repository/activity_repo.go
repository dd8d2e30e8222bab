package repository

import (
	"context"
	"database/sql"
	"fmt"

	"user-lifecycle-service/internal/domain"
)

const activityColumns = `id, user_id, joined_at, left_at, scheduled_left_at, actual_left_at,
	action_type, performed_by_id, reason, created_at`

// ActivityRepository реализует чтение журнала активности из PostgreSQL.
type ActivityRepository struct {
	db *sql.DB
}

// NewActivityRepository создает новый экземпляр ActivityRepository.
func NewActivityRepository(db *sql.DB) domain.ActivityRepository {
	return &ActivityRepository{
		db: db,
	}
}

// ListByUser возвращает записи журнала пользователя от новых к старым.
func (r *ActivityRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.ActivityRecord, error) {
	query := `SELECT ` + activityColumns + ` FROM user_activity_history
		WHERE user_id = $1 ORDER BY joined_at DESC, id DESC`
	args := []interface{}{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity history: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.ActivityRecord, 0)
	for rows.Next() {
		record, err := scanActivityRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activity history: %w", err)
	}

	return records, nil
}

func scanActivityRecord(row rowScanner) (*domain.ActivityRecord, error) {
	var rec domain.ActivityRecord
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.JoinedAt, &rec.LeftAt, &rec.ScheduledLeftAt, &rec.ActualLeftAt,
		&rec.ActionType, &rec.PerformedByID, &rec.Reason, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
