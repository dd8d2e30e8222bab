package handler

import (
	"user-lifecycle-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// RegisterRoutes регистрирует все маршруты сервиса.
func RegisterRoutes(e *echo.Echo, statusUC domain.StatusUseCase, sweeper domain.SweeperControl, logger *logrus.Logger) {
	statusHandler := NewStatusHandler(statusUC, logger, nil)
	statsHandler := NewStatsHandler(statusUC, logger)
	schedulerHandler := NewSchedulerHandler(sweeper, logger)

	e.POST("/users/:user_id/activate", statusHandler.PostUserActivate)
	e.POST("/users/:user_id/deactivate", statusHandler.PostUserDeactivate)
	e.POST("/users/:user_id/cancel-schedule", statusHandler.PostUserCancelSchedule)
	e.POST("/users/:user_id/reactivate", statusHandler.PostUserReactivate)

	e.GET("/users/:user_id/status", statusHandler.GetUserStatus)
	e.GET("/users/:user_id/activity-history", statusHandler.GetUserActivityHistory)
	e.GET("/users/:user_id/scheduled-actions", statusHandler.GetUserScheduledActions)

	e.GET("/users/pending-deactivations", statusHandler.GetPendingDeactivations)
	e.GET("/users/stats/activity", statsHandler.GetActivityStats)

	e.POST("/scheduler/start", schedulerHandler.PostSchedulerStart)
	e.POST("/scheduler/stop", schedulerHandler.PostSchedulerStop)
	e.GET("/scheduler/status", schedulerHandler.GetSchedulerStatus)
}
