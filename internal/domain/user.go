package domain

import (
	"context"
	"time"
)

// UserStatus описывает статус жизненного цикла пользователя.
type UserStatus string

const (
	UserStatusActive                UserStatus = "active"
	UserStatusScheduledDeactivation UserStatus = "scheduled_deactivation"
	UserStatusInactive              UserStatus = "inactive"
)

// IsActive сообщает, может ли пользователь работать в системе.
// Пользователь с запланированной деактивацией считается активным до её исполнения.
func (s UserStatus) IsActive() bool {
	return s == UserStatusActive || s == UserStatusScheduledDeactivation
}

// User представляет пользователя с полями статуса и планирования.
type User struct {
	ID       int64
	Username string
	Email    string
	Status   UserStatus

	CurrentJoinedAt *time.Time
	CurrentLeftAt   *time.Time

	ScheduledDeactivationAt     *time.Time
	ScheduledDeactivationReason *string
	ScheduledDeactivationByID   *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasScheduledDeactivation сообщает, запланирована ли деактивация.
func (u *User) HasScheduledDeactivation() bool {
	return u.Status == UserStatusScheduledDeactivation && u.ScheduledDeactivationAt != nil
}

// DaysUntilDeactivation возвращает число дней до запланированной деактивации.
func (u *User) DaysUntilDeactivation(now time.Time) *float64 {
	if !u.HasScheduledDeactivation() {
		return nil
	}
	days := u.ScheduledDeactivationAt.Sub(now).Seconds() / 86400
	return &days
}

// HoursUntilDeactivation возвращает число часов до запланированной деактивации.
func (u *User) HoursUntilDeactivation(now time.Time) *float64 {
	if !u.HasScheduledDeactivation() {
		return nil
	}
	hours := u.ScheduledDeactivationAt.Sub(now).Seconds() / 3600
	return &hours
}

// UserStatusInfo представляет сводную информацию о статусе пользователя.
type UserStatusInfo struct {
	UserID                      int64
	Username                    string
	Status                      UserStatus
	IsActive                    bool
	CurrentJoinedAt             *time.Time
	CurrentLeftAt               *time.Time
	ScheduledDeactivationAt     *time.Time
	ScheduledDeactivationReason *string
	DaysUntilDeactivation       *float64
	HoursUntilDeactivation      *float64
}

// UserRepository определяет контракт для чтения пользователей.
type UserRepository interface {
	GetByID(ctx context.Context, userID int64) (*User, error)
	GetUsernames(ctx context.Context, userIDs []int64) (map[int64]string, error)
}
