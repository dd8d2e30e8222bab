package handler

import (
	"net/http"
	"strconv"
	"time"

	"user-lifecycle-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// StatusHandler обрабатывает HTTP-запросы жизненного цикла пользователя.
// Момент времени для вычисляемых полей ответа фиксируется один раз на запрос.
type StatusHandler struct {
	*BaseHandler
	statusUseCase domain.StatusUseCase
	now           func() time.Time
}

// NewStatusHandler создает новый экземпляр StatusHandler.
// nowFn позволяет подменять часы в тестах; nil означает time.Now.
func NewStatusHandler(statusUseCase domain.StatusUseCase, logger *logrus.Logger, nowFn func() time.Time) *StatusHandler {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &StatusHandler{
		BaseHandler:   NewBaseHandler(logger),
		statusUseCase: statusUseCase,
		now:           nowFn,
	}
}

// PostUserActivate обрабатывает запрос активации пользователя.
func (h *StatusHandler) PostUserActivate(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return h.replyError(c, err)
	}

	var req ActionRequest
	if err := c.Bind(&req); err != nil {
		h.logger.WithError(err).Warn("Failed to bind activate request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	logEntry := h.logRequest(c, "activate_user").WithField("user_id", userID)
	logEntry.Info("Activating user")

	record, err := h.statusUseCase.ActivateUser(c.Request().Context(), userID, req.PerformedByID, req.Reason)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to activate user")
		return h.replyError(c, err)
	}

	logEntry.Info("User activated successfully")
	return c.JSON(http.StatusOK, map[string]interface{}{
		"activity_record": toActivityRecordResponse(record, nil, h.now().UTC()),
	})
}

// PostUserDeactivate обрабатывает запрос деактивации пользователя.
// Поле deactivation_type выбирает немедленную или отложенную деактивацию.
func (h *StatusHandler) PostUserDeactivate(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return h.replyError(c, err)
	}

	var req DeactivateRequest
	if err := c.Bind(&req); err != nil {
		h.logger.WithError(err).Warn("Failed to bind deactivate request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	logEntry := h.logRequest(c, "deactivate_user").WithFields(logrus.Fields{
		"user_id":           userID,
		"deactivation_type": req.DeactivationType,
	})
	logEntry.Info("Deactivating user")

	switch req.DeactivationType {
	case "immediate":
		record, err := h.statusUseCase.DeactivateUserImmediately(c.Request().Context(), userID, req.PerformedByID, req.Reason)
		if err != nil {
			logEntry.WithError(err).Warn("Failed to deactivate user")
			return h.replyError(c, err)
		}

		logEntry.Info("User deactivated immediately")
		return c.JSON(http.StatusOK, map[string]interface{}{
			"activity_record": toActivityRecordResponse(record, nil, h.now().UTC()),
		})

	case "scheduled":
		if req.ScheduledDate == nil {
			logEntry.Warn("Scheduled deactivation without scheduled_date")
			return h.replyError(c, domain.ErrScheduledDateRequired)
		}

		action, err := h.statusUseCase.ScheduleUserDeactivation(c.Request().Context(), userID, *req.ScheduledDate, req.PerformedByID, req.Reason)
		if err != nil {
			logEntry.WithError(err).Warn("Failed to schedule deactivation")
			return h.replyError(c, err)
		}

		logEntry.WithField("scheduled_for", action.ScheduledFor).Info("Deactivation scheduled")
		return c.JSON(http.StatusOK, map[string]interface{}{
			"scheduled_action": toScheduledActionResponse(action, h.now().UTC()),
		})

	default:
		logEntry.Warn("Unknown deactivation type")
		return h.replyError(c, domain.ErrInvalidDeactivationType)
	}
}

// PostUserCancelSchedule обрабатывает отмену запланированной деактивации.
func (h *StatusHandler) PostUserCancelSchedule(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return h.replyError(c, err)
	}

	var req ActionRequest
	if err := c.Bind(&req); err != nil {
		h.logger.WithError(err).Warn("Failed to bind cancel request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	logEntry := h.logRequest(c, "cancel_scheduled_deactivation").WithField("user_id", userID)
	logEntry.Info("Cancelling scheduled deactivation")

	record, err := h.statusUseCase.CancelScheduledDeactivation(c.Request().Context(), userID, req.PerformedByID, req.Reason)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to cancel scheduled deactivation")
		return h.replyError(c, err)
	}

	logEntry.Info("Scheduled deactivation cancelled")
	return c.JSON(http.StatusOK, map[string]interface{}{
		"activity_record": toActivityRecordResponse(record, nil, h.now().UTC()),
	})
}

// PostUserReactivate обрабатывает реактивацию неактивного пользователя.
func (h *StatusHandler) PostUserReactivate(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return h.replyError(c, err)
	}

	var req ActionRequest
	if err := c.Bind(&req); err != nil {
		h.logger.WithError(err).Warn("Failed to bind reactivate request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	logEntry := h.logRequest(c, "reactivate_user").WithField("user_id", userID)
	logEntry.Info("Reactivating user")

	record, err := h.statusUseCase.ReactivateUser(c.Request().Context(), userID, req.PerformedByID, req.Reason)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to reactivate user")
		return h.replyError(c, err)
	}

	logEntry.Info("User reactivated successfully")
	return c.JSON(http.StatusOK, map[string]interface{}{
		"activity_record": toActivityRecordResponse(record, nil, h.now().UTC()),
	})
}

// GetUserStatus возвращает сводную информацию о статусе пользователя.
func (h *StatusHandler) GetUserStatus(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return h.replyError(c, err)
	}

	info, err := h.statusUseCase.GetUserStatusInfo(c.Request().Context(), userID)
	if err != nil {
		h.logRequest(c, "get_user_status").WithError(err).Warn("Failed to get user status")
		return h.replyError(c, err)
	}

	return c.JSON(http.StatusOK, toUserStatusResponse(info))
}

// GetUserActivityHistory возвращает журнал активности пользователя.
// Параметр limit ограничивает число записей; без него возвращаются все.
func (h *StatusHandler) GetUserActivityHistory(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return h.replyError(c, err)
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", "limit must be a non-negative integer"))
		}
	}

	entries, err := h.statusUseCase.GetUserActivityHistory(c.Request().Context(), userID, limit)
	if err != nil {
		h.logRequest(c, "get_activity_history").WithError(err).Warn("Failed to get activity history")
		return h.replyError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user_id": userID,
		"history": toActivityHistoryResponses(entries, h.now().UTC()),
		"total":   len(entries),
	})
}

// GetUserScheduledActions возвращает отложенные действия пользователя.
func (h *StatusHandler) GetUserScheduledActions(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return h.replyError(c, err)
	}

	actions, err := h.statusUseCase.GetUserScheduledActions(c.Request().Context(), userID)
	if err != nil {
		h.logRequest(c, "get_scheduled_actions").WithError(err).Warn("Failed to get scheduled actions")
		return h.replyError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user_id":           userID,
		"scheduled_actions": toScheduledActionResponses(actions, h.now().UTC()),
		"total":             len(actions),
	})
}

// GetPendingDeactivations возвращает все ожидающие деактивации.
func (h *StatusHandler) GetPendingDeactivations(c echo.Context) error {
	actions, err := h.statusUseCase.GetPendingDeactivations(c.Request().Context())
	if err != nil {
		h.logRequest(c, "get_pending_deactivations").WithError(err).Error("Failed to get pending deactivations")
		return h.replyError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"pending_deactivations": toScheduledActionResponses(actions, h.now().UTC()),
		"total":                 len(actions),
	})
}

// replyError преобразует доменную ошибку в HTTP-ответ.
func (h *StatusHandler) replyError(c echo.Context, err error) error {
	if httpErr, exists := domain.ToHTTPError(err); exists {
		return c.JSON(getHTTPStatusCode(err), domain.ErrorResponse{Error: httpErr})
	}
	return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
}

// parseUserID читает идентификатор пользователя из пути запроса.
func parseUserID(c echo.Context) (int64, error) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		return 0, domain.ErrInvalidUserID
	}
	return userID, nil
}
