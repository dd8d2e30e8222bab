package handler

import "time"

// Запросы и ответы API. Структуры написаны вручную; формат дат — RFC 3339.

// ActionRequest — тело запросов активации, отмены и реактивации.
type ActionRequest struct {
	Reason        *string `json:"reason,omitempty"`
	PerformedByID *int64  `json:"performed_by_id,omitempty"`
}

// DeactivateRequest — тело запроса деактивации.
type DeactivateRequest struct {
	DeactivationType string     `json:"deactivation_type"`
	ScheduledDate    *time.Time `json:"scheduled_date,omitempty"`
	Reason           *string    `json:"reason,omitempty"`
	PerformedByID    *int64     `json:"performed_by_id,omitempty"`
}

// UserStatusResponse — сводная информация о статусе пользователя.
type UserStatusResponse struct {
	UserID                      int64      `json:"user_id"`
	Username                    string     `json:"username"`
	Status                      string     `json:"status"`
	IsActive                    bool       `json:"is_active"`
	CurrentJoinedAt             *time.Time `json:"current_joined_at"`
	CurrentLeftAt               *time.Time `json:"current_left_at"`
	ScheduledDeactivationAt     *time.Time `json:"scheduled_deactivation_at"`
	ScheduledDeactivationReason *string    `json:"scheduled_deactivation_reason"`
	DaysUntilDeactivation       *float64   `json:"days_until_deactivation"`
	HoursUntilDeactivation      *float64   `json:"hours_until_deactivation"`
}

// ActivityRecordResponse — запись журнала активности.
type ActivityRecordResponse struct {
	ID                  int64      `json:"id"`
	UserID              int64      `json:"user_id"`
	JoinedAt            time.Time  `json:"joined_at"`
	LeftAt              *time.Time `json:"left_at"`
	ScheduledLeftAt     *time.Time `json:"scheduled_left_at"`
	ActualLeftAt        *time.Time `json:"actual_left_at"`
	ActionType          string     `json:"action_type"`
	PerformedByID       *int64     `json:"performed_by_id"`
	PerformedByUsername *string    `json:"performed_by_username"`
	Reason              *string    `json:"reason"`
	IsCurrent           bool       `json:"is_current"`
	DurationDays        float64    `json:"duration_days"`
	CreatedAt           time.Time  `json:"created_at"`
}

// ScheduledActionResponse — отложенное действие.
type ScheduledActionResponse struct {
	ID                 int64      `json:"id"`
	UserID             int64      `json:"user_id"`
	ActionType         string     `json:"action_type"`
	ScheduledFor       time.Time  `json:"scheduled_for"`
	Reason             *string    `json:"reason"`
	CreatedByID        *int64     `json:"created_by_id"`
	Status             string     `json:"status"`
	ExecutedAt         *time.Time `json:"executed_at"`
	ErrorMessage       *string    `json:"error_message"`
	IsOverdue          bool       `json:"is_overdue"`
	TimeUntilExecution *float64   `json:"time_until_execution"`
	CreatedAt          time.Time  `json:"created_at"`
}

// ActivityStatsResponse — сводная статистика по системе.
type ActivityStatsResponse struct {
	TotalUsers              int64 `json:"total_users"`
	ActiveUsers             int64 `json:"active_users"`
	InactiveUsers           int64 `json:"inactive_users"`
	ScheduledDeactivations  int64 `json:"scheduled_deactivations"`
	PendingScheduledActions int64 `json:"pending_scheduled_actions"`
	OverdueActions          int64 `json:"overdue_actions"`
}

// SchedulerStatusResponse — состояние фонового обработчика.
type SchedulerStatusResponse struct {
	Running  bool       `json:"running"`
	NextTick *time.Time `json:"next_tick"`
}
