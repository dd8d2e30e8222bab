package handler

import (
	"net/http"
	"time"

	"user-lifecycle-service/internal/domain"
)

// Вспомогательные функции преобразования доменных моделей в API модели.
// Вычисляемые поля считаются относительно переданного момента времени.

func toUserStatusResponse(info *domain.UserStatusInfo) UserStatusResponse {
	return UserStatusResponse{
		UserID:                      info.UserID,
		Username:                    info.Username,
		Status:                      string(info.Status),
		IsActive:                    info.IsActive,
		CurrentJoinedAt:             info.CurrentJoinedAt,
		CurrentLeftAt:               info.CurrentLeftAt,
		ScheduledDeactivationAt:     info.ScheduledDeactivationAt,
		ScheduledDeactivationReason: info.ScheduledDeactivationReason,
		DaysUntilDeactivation:       info.DaysUntilDeactivation,
		HoursUntilDeactivation:      info.HoursUntilDeactivation,
	}
}

func toActivityRecordResponse(record *domain.ActivityRecord, performedByUsername *string, now time.Time) ActivityRecordResponse {
	return ActivityRecordResponse{
		ID:                  record.ID,
		UserID:              record.UserID,
		JoinedAt:            record.JoinedAt,
		LeftAt:              record.LeftAt,
		ScheduledLeftAt:     record.ScheduledLeftAt,
		ActualLeftAt:        record.ActualLeftAt,
		ActionType:          string(record.ActionType),
		PerformedByID:       record.PerformedByID,
		PerformedByUsername: performedByUsername,
		Reason:              record.Reason,
		IsCurrent:           record.IsCurrent(),
		DurationDays:        record.DurationDays(now),
		CreatedAt:           record.CreatedAt,
	}
}

func toActivityHistoryResponses(entries []*domain.ActivityHistoryEntry, now time.Time) []ActivityRecordResponse {
	result := make([]ActivityRecordResponse, len(entries))
	for i, entry := range entries {
		result[i] = toActivityRecordResponse(&entry.ActivityRecord, entry.PerformedByUsername, now)
	}
	return result
}

func toScheduledActionResponse(action *domain.ScheduledAction, now time.Time) ScheduledActionResponse {
	return ScheduledActionResponse{
		ID:                 action.ID,
		UserID:             action.UserID,
		ActionType:         string(action.ActionType),
		ScheduledFor:       action.ScheduledFor,
		Reason:             action.Reason,
		CreatedByID:        action.CreatedByID,
		Status:             string(action.Status),
		ExecutedAt:         action.ExecutedAt,
		ErrorMessage:       action.ErrorMessage,
		IsOverdue:          action.IsOverdue(now),
		TimeUntilExecution: action.TimeUntilExecution(now),
		CreatedAt:          action.CreatedAt,
	}
}

func toScheduledActionResponses(actions []*domain.ScheduledAction, now time.Time) []ScheduledActionResponse {
	result := make([]ScheduledActionResponse, len(actions))
	for i, action := range actions {
		result[i] = toScheduledActionResponse(action, now)
	}
	return result
}

func toActivityStatsResponse(stats *domain.SystemActivityStats) ActivityStatsResponse {
	return ActivityStatsResponse{
		TotalUsers:              stats.TotalUsers,
		ActiveUsers:             stats.ActiveUsers,
		InactiveUsers:           stats.InactiveUsers,
		ScheduledDeactivations:  stats.ScheduledDeactivations,
		PendingScheduledActions: stats.PendingScheduledActions,
		OverdueActions:          stats.OverdueActions,
	}
}

func toErrorResponse(code, message string) domain.ErrorResponse {
	return domain.ErrorResponse{
		Error: domain.HTTPError{
			Code:    code,
			Message: message,
		},
	}
}

func getHTTPStatusCode(err error) int {
	switch err {
	// Conflict errors (409)
	case domain.ErrUserAlreadyActive, domain.ErrUserAlreadyInactive,
		domain.ErrUserNotInactive, domain.ErrNoScheduledDeactivation,
		domain.ErrActionNotPending:
		return http.StatusConflict

	// Not Found errors (404)
	case domain.ErrUserNotFound, domain.ErrActionNotFound:
		return http.StatusNotFound

	// Bad Request errors (400) - валидация
	case domain.ErrInvalidUserID, domain.ErrInvalidDeactivationType,
		domain.ErrScheduledDateRequired, domain.ErrScheduledTimeNotFuture:
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
