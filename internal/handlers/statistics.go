package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-app/inkwell/backend/internal/apierror"
	"github.com/inkwell-app/inkwell/backend/internal/logger"
	"github.com/inkwell-app/inkwell/backend/internal/middleware"
	"github.com/inkwell-app/inkwell/backend/internal/models"
	"github.com/inkwell-app/inkwell/backend/internal/service"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
}

// NewStatisticsHandler creates a new statistics handler.
func NewStatisticsHandler(statisticsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

// GetStatistics handles GET /api/v1/statistics?period=30d
func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return
	}

	raw := c.DefaultQuery("period", string(models.Period30Days))
	period, err := models.ParsePeriod(raw)
	if err != nil {
		choices := make([]string, len(models.Periods))
		for i, p := range models.Periods {
			choices[i] = string(p)
		}
		apierror.WriteProblem(c, apierror.NewInvalidPeriodError(apierror.GetRequestID(c), raw, choices))
		return
	}

	stats, err := h.statisticsService.GetStatistics(c.Request.Context(), ownerID, period)
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("failed to compute statistics", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, stats)
}
