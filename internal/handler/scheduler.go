package handler

import (
	"net/http"

	"user-lifecycle-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// SchedulerHandler обрабатывает запросы управления фоновым обработчиком.
type SchedulerHandler struct {
	*BaseHandler
	sweeper domain.SweeperControl
}

// NewSchedulerHandler создает новый экземпляр SchedulerHandler.
func NewSchedulerHandler(sweeper domain.SweeperControl, logger *logrus.Logger) *SchedulerHandler {
	return &SchedulerHandler{
		BaseHandler: NewBaseHandler(logger),
		sweeper:     sweeper,
	}
}

// PostSchedulerStart запускает фоновый обработчик.
func (h *SchedulerHandler) PostSchedulerStart(c echo.Context) error {
	h.logRequest(c, "scheduler_start").Info("Starting sweeper")
	h.sweeper.Start()
	return c.JSON(http.StatusOK, h.statusResponse())
}

// PostSchedulerStop останавливает фоновый обработчик, дождавшись
// завершения текущего прохода.
func (h *SchedulerHandler) PostSchedulerStop(c echo.Context) error {
	h.logRequest(c, "scheduler_stop").Info("Stopping sweeper")
	h.sweeper.Stop()
	return c.JSON(http.StatusOK, h.statusResponse())
}

// GetSchedulerStatus возвращает состояние фонового обработчика.
func (h *SchedulerHandler) GetSchedulerStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.statusResponse())
}

func (h *SchedulerHandler) statusResponse() SchedulerStatusResponse {
	info := h.sweeper.Info()
	return SchedulerStatusResponse{
		Running:  info.Running,
		NextTick: info.NextTick,
	}
}
