package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-app/inkwell/backend/internal/apierror"
	"github.com/inkwell-app/inkwell/backend/internal/logger"
	"github.com/inkwell-app/inkwell/backend/internal/middleware"
	"github.com/inkwell-app/inkwell/backend/internal/models"
	"github.com/inkwell-app/inkwell/backend/internal/repository"
	"github.com/inkwell-app/inkwell/backend/internal/service"
)

type StreakHandler struct {
	streakService service.StreakService
}

// NewStreakHandler creates a new streak handler.
func NewStreakHandler(streakService service.StreakService) *StreakHandler {
	return &StreakHandler{streakService: streakService}
}

// Recalculate handles POST /api/v1/streaks/recalculate. The optional
// body {"apply": true} persists the recomputed values to the profile.
func (h *StreakHandler) Recalculate(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return
	}

	var req models.RecalculateStreakRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		apierror.WriteProblem(c, apierror.NewValidationError(apierror.GetRequestID(c), []apierror.FieldError{
			{Field: "body", Message: "must be a JSON object", Code: "invalid_json"},
		}))
		return
	}

	state, err := h.streakService.RecalculateStreak(c.Request.Context(), ownerID, req.Apply)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			apierror.WriteProblem(c, apierror.NewNotFoundError(apierror.GetRequestID(c), "writer profile", ownerID.String()))
			return
		}
		logger.FromContext(c.Request.Context()).Error("failed to recalculate streak", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, state)
}
