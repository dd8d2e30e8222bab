package handler

import (
	"net/http"

	"user-lifecycle-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// StatsHandler обрабатывает запросы статистики.
type StatsHandler struct {
	*BaseHandler
	statusUseCase domain.StatusUseCase
}

// NewStatsHandler создает новый экземпляр StatsHandler.
func NewStatsHandler(statusUseCase domain.StatusUseCase, logger *logrus.Logger) *StatsHandler {
	return &StatsHandler{
		BaseHandler:   NewBaseHandler(logger),
		statusUseCase: statusUseCase,
	}
}

// GetActivityStats возвращает сводную статистику по системе.
func (h *StatsHandler) GetActivityStats(c echo.Context) error {
	stats, err := h.statusUseCase.GetSystemActivityStats(c.Request().Context())
	if err != nil {
		h.logRequest(c, "get_activity_stats").WithError(err).Error("Failed to get activity stats")
		return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
	}

	return c.JSON(http.StatusOK, toActivityStatsResponse(stats))
}
