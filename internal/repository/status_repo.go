package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"user-lifecycle-service/internal/domain"
)

// StatusRepository реализует транзакционные переходы машины статусов.
// Каждая операция: одна транзакция, блокировка строки пользователя через
// SELECT ... FOR UPDATE, проверка предусловия, атомарная запись изменений.
// Порядок блокировок везде одинаковый: сначала строка пользователя, затем
// строки отложенных действий.
type StatusRepository struct {
	db *sql.DB
}

// NewStatusRepository создает новый экземпляр StatusRepository.
func NewStatusRepository(db *sql.DB) domain.StatusRepository {
	return &StatusRepository{
		db: db,
	}
}

// Activate открывает первый период активности пользователя.
func (r *StatusRepository) Activate(ctx context.Context, userID int64, performedBy *int64, reason *string, now time.Time) (*domain.ActivityRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = lockUser(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	// Открытый период означает, что пользователь уже активирован
	var hasOpenPeriod bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_activity_history WHERE user_id = $1 AND left_at IS NULL)`,
		userID).Scan(&hasOpenPeriod)
	if err != nil {
		return nil, fmt.Errorf("failed to check open period: %w", err)
	}
	if hasOpenPeriod {
		err = domain.ErrUserAlreadyActive
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE users SET status = $2, current_joined_at = $3, current_left_at = NULL,
			scheduled_deactivation_at = NULL, scheduled_deactivation_reason = NULL,
			scheduled_deactivation_by_id = NULL, updated_at = $3
		WHERE id = $1`,
		userID, domain.UserStatusActive, now)
	if err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}

	record := &domain.ActivityRecord{
		UserID:        userID,
		JoinedAt:      now,
		ActionType:    domain.ActionActivated,
		PerformedByID: performedBy,
		Reason:        reason,
	}
	err = insertActivityRecord(ctx, tx, record)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return record, nil
}

// DeactivateImmediately немедленно деактивирует пользователя.
func (r *StatusRepository) DeactivateImmediately(ctx context.Context, userID int64, performedBy *int64, reason *string, now time.Time) (*domain.ActivityRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	user, err := lockUser(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	if user.Status == domain.UserStatusInactive {
		err = domain.ErrUserAlreadyInactive
		return nil, err
	}

	// Отменяем все ожидающие отложенные действия пользователя
	_, err = tx.ExecContext(ctx,
		`UPDATE scheduled_user_actions SET status = $2 WHERE user_id = $1 AND status = $3`,
		userID, domain.ScheduledActionCancelled, domain.ScheduledActionPending)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel pending actions: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE users SET status = $2, current_left_at = $3,
			scheduled_deactivation_at = NULL, scheduled_deactivation_reason = NULL,
			scheduled_deactivation_by_id = NULL, updated_at = $3
		WHERE id = $1`,
		userID, domain.UserStatusInactive, now)
	if err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}

	err = closeOpenPeriod(ctx, tx, userID, now)
	if err != nil {
		return nil, err
	}

	record := &domain.ActivityRecord{
		UserID:        userID,
		JoinedAt:      joinedAtOrNow(user, now),
		LeftAt:        &now,
		ActualLeftAt:  &now,
		ActionType:    domain.ActionDeactivatedImmediate,
		PerformedByID: performedBy,
		Reason:        reason,
	}
	err = insertActivityRecord(ctx, tx, record)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return record, nil
}

// ScheduleDeactivation планирует деактивацию на будущий момент.
func (r *StatusRepository) ScheduleDeactivation(ctx context.Context, userID int64, scheduledFor time.Time, performedBy *int64, reason *string, now time.Time) (*domain.ScheduledAction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	user, err := lockUser(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	if user.Status == domain.UserStatusInactive {
		err = domain.ErrUserAlreadyInactive
		return nil, err
	}

	if !scheduledFor.After(now) {
		err = domain.ErrScheduledTimeNotFuture
		return nil, err
	}

	// На пользователя может существовать максимум одна ожидающая деактивация
	_, err = tx.ExecContext(ctx,
		`UPDATE scheduled_user_actions SET status = $2
		WHERE user_id = $1 AND status = $3 AND action_type = $4`,
		userID, domain.ScheduledActionCancelled, domain.ScheduledActionPending,
		domain.ScheduledActionDeactivate)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel existing schedules: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE users SET status = $2, scheduled_deactivation_at = $3,
			scheduled_deactivation_reason = $4, scheduled_deactivation_by_id = $5, updated_at = $6
		WHERE id = $1`,
		userID, domain.UserStatusScheduledDeactivation, scheduledFor, reason, performedBy, now)
	if err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}

	action := &domain.ScheduledAction{
		UserID:       userID,
		ActionType:   domain.ScheduledActionDeactivate,
		ScheduledFor: scheduledFor,
		Reason:       reason,
		CreatedByID:  performedBy,
		Status:       domain.ScheduledActionPending,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO scheduled_user_actions (user_id, action_type, scheduled_for, reason, created_by_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		action.UserID, action.ActionType, action.ScheduledFor, action.Reason,
		action.CreatedByID, action.Status,
	).Scan(&action.ID, &action.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduled action: %w", err)
	}

	// Маркерная запись закрывается сразу: открытой остается только
	// запись периода активности
	record := &domain.ActivityRecord{
		UserID:          userID,
		JoinedAt:        joinedAtOrNow(user, now),
		LeftAt:          &now,
		ScheduledLeftAt: &scheduledFor,
		ActionType:      domain.ActionDeactivatedScheduled,
		PerformedByID:   performedBy,
		Reason:          reason,
	}
	err = insertActivityRecord(ctx, tx, record)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return action, nil
}

// CancelScheduledDeactivation отменяет запланированную деактивацию.
func (r *StatusRepository) CancelScheduledDeactivation(ctx context.Context, userID int64, performedBy *int64, reason *string, now time.Time) (*domain.ActivityRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	user, err := lockUser(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	if user.Status != domain.UserStatusScheduledDeactivation {
		err = domain.ErrNoScheduledDeactivation
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE scheduled_user_actions SET status = $2
		WHERE user_id = $1 AND status = $3 AND action_type = $4`,
		userID, domain.ScheduledActionCancelled, domain.ScheduledActionPending,
		domain.ScheduledActionDeactivate)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel pending actions: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE users SET status = $2, scheduled_deactivation_at = NULL,
			scheduled_deactivation_reason = NULL, scheduled_deactivation_by_id = NULL, updated_at = $3
		WHERE id = $1`,
		userID, domain.UserStatusActive, now)
	if err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}

	// Маркерная запись закрывается сразу, как и при планировании
	record := &domain.ActivityRecord{
		UserID:        userID,
		JoinedAt:      joinedAtOrNow(user, now),
		LeftAt:        &now,
		ActionType:    domain.ActionScheduleCancelled,
		PerformedByID: performedBy,
		Reason:        reason,
	}
	err = insertActivityRecord(ctx, tx, record)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return record, nil
}

// Reactivate открывает новый период активности для неактивного пользователя.
func (r *StatusRepository) Reactivate(ctx context.Context, userID int64, performedBy *int64, reason *string, now time.Time) (*domain.ActivityRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	user, err := lockUser(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	if user.Status != domain.UserStatusInactive {
		err = domain.ErrUserNotInactive
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE users SET status = $2, current_joined_at = $3, current_left_at = NULL, updated_at = $3
		WHERE id = $1`,
		userID, domain.UserStatusActive, now)
	if err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}

	record := &domain.ActivityRecord{
		UserID:        userID,
		JoinedAt:      now,
		ActionType:    domain.ActionReactivated,
		PerformedByID: performedBy,
		Reason:        reason,
	}
	err = insertActivityRecord(ctx, tx, record)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return record, nil
}

// ExecuteScheduledAction исполняет ожидающее отложенное действие.
// Отсутствие пользователя — семантический отказ: действие помечается failed,
// и эта пометка фиксируется. Предусловие status == pending перепроверяется
// после блокировки, чтобы гонка двух исполнителей разрешалась детерминированно.
func (r *StatusRepository) ExecuteScheduledAction(ctx context.Context, actionID int64, now time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Первое чтение без блокировки: нужен user_id, чтобы сохранить
	// порядок блокировок (пользователь раньше действия)
	var preliminary domain.ScheduledAction
	err = tx.QueryRowContext(ctx,
		`SELECT id, user_id, status FROM scheduled_user_actions WHERE id = $1`, actionID).
		Scan(&preliminary.ID, &preliminary.UserID, &preliminary.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrActionNotFound
		}
		return fmt.Errorf("failed to get scheduled action: %w", err)
	}
	if preliminary.Status != domain.ScheduledActionPending {
		return domain.ErrActionNotPending
	}

	user, err := lockUser(ctx, tx, preliminary.UserID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	userMissing := errors.Is(err, domain.ErrUserNotFound)

	action := &domain.ScheduledAction{}
	lockErr := tx.QueryRowContext(ctx,
		`SELECT `+actionColumns+` FROM scheduled_user_actions WHERE id = $1 FOR UPDATE`, actionID).
		Scan(
			&action.ID, &action.UserID, &action.ActionType, &action.ScheduledFor, &action.Reason,
			&action.CreatedByID, &action.Status, &action.ExecutedAt, &action.ErrorMessage, &action.CreatedAt,
		)
	if lockErr != nil {
		return fmt.Errorf("failed to lock scheduled action: %w", lockErr)
	}
	if action.Status != domain.ScheduledActionPending {
		return domain.ErrActionNotPending
	}

	if userMissing {
		_, execErr := tx.ExecContext(ctx,
			`UPDATE scheduled_user_actions SET status = $2, error_message = $3 WHERE id = $1`,
			actionID, domain.ScheduledActionFailed, "user not found")
		if execErr != nil {
			return fmt.Errorf("failed to mark action failed: %w", execErr)
		}
		if execErr = tx.Commit(); execErr != nil {
			return fmt.Errorf("failed to commit transaction: %w", execErr)
		}
		committed = true
		return domain.ErrUserNotFound
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE users SET status = $2, current_left_at = $3,
			scheduled_deactivation_at = NULL, scheduled_deactivation_reason = NULL,
			scheduled_deactivation_by_id = NULL, updated_at = $3
		WHERE id = $1`,
		user.ID, domain.UserStatusInactive, now)
	if err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}

	err = closeOpenPeriod(ctx, tx, user.ID, now)
	if err != nil {
		return err
	}

	record := &domain.ActivityRecord{
		UserID:          user.ID,
		JoinedAt:        joinedAtOrNow(user, now),
		LeftAt:          &now,
		ScheduledLeftAt: &action.ScheduledFor,
		ActualLeftAt:    &now,
		ActionType:      domain.ActionAutoDeactivated,
		PerformedByID:   action.CreatedByID,
		Reason:          action.Reason,
	}
	err = insertActivityRecord(ctx, tx, record)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE scheduled_user_actions SET status = $2, executed_at = $3 WHERE id = $1`,
		actionID, domain.ScheduledActionExecuted, now)
	if err != nil {
		return fmt.Errorf("failed to mark action executed: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true

	return nil
}

// lockUser читает строку пользователя с блокировкой FOR UPDATE.
func lockUser(ctx context.Context, tx *sql.Tx, userID int64) (*domain.User, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, userID)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to lock user: %w", err)
	}

	return user, nil
}

// closeOpenPeriod закрывает открытый период журнала активности.
func closeOpenPeriod(ctx context.Context, tx *sql.Tx, userID int64, now time.Time) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE user_activity_history SET left_at = $2, actual_left_at = $2
		WHERE user_id = $1 AND left_at IS NULL`,
		userID, now)
	if err != nil {
		return fmt.Errorf("failed to close open period: %w", err)
	}
	return nil
}

// insertActivityRecord вставляет запись журнала и заполняет ID и CreatedAt.
func insertActivityRecord(ctx context.Context, tx *sql.Tx, record *domain.ActivityRecord) error {
	err := tx.QueryRowContext(ctx, `
		INSERT INTO user_activity_history
			(user_id, joined_at, left_at, scheduled_left_at, actual_left_at, action_type, performed_by_id, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		record.UserID, record.JoinedAt, record.LeftAt, record.ScheduledLeftAt, record.ActualLeftAt,
		record.ActionType, record.PerformedByID, record.Reason,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create activity record: %w", err)
	}
	return nil
}

// joinedAtOrNow возвращает начало текущего периода активности пользователя.
func joinedAtOrNow(user *domain.User, now time.Time) time.Time {
	if user.CurrentJoinedAt != nil {
		return *user.CurrentJoinedAt
	}
	return now
}
