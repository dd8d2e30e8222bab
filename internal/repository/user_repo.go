package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"user-lifecycle-service/internal/domain"
)

const userColumns = `id, username, email, status, current_joined_at, current_left_at,
	scheduled_deactivation_at, scheduled_deactivation_reason, scheduled_deactivation_by_id,
	created_at, updated_at`

// UserRepository реализует чтение пользователей из PostgreSQL.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository создает новый экземпляр UserRepository.
func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &UserRepository{
		db: db,
	}
}

// GetByID возвращает пользователя по ID.
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetUsernames возвращает имена пользователей по списку ID.
func (r *UserRepository) GetUsernames(ctx context.Context, userIDs []int64) (map[int64]string, error) {
	usernames := make(map[int64]string, len(userIDs))
	if len(userIDs) == 0 {
		return usernames, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, username FROM users WHERE id = ANY($1)`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get usernames: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var username string
		if err := rows.Scan(&id, &username); err != nil {
			return nil, fmt.Errorf("failed to scan username: %w", err)
		}
		usernames[id] = username
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read usernames: %w", err)
	}

	return usernames, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.Status, &u.CurrentJoinedAt, &u.CurrentLeftAt,
		&u.ScheduledDeactivationAt, &u.ScheduledDeactivationReason, &u.ScheduledDeactivationByID,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
