package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-app/inkwell/backend/internal/apierror"
	"github.com/inkwell-app/inkwell/backend/internal/logger"
	"github.com/inkwell-app/inkwell/backend/internal/middleware"
	"github.com/inkwell-app/inkwell/backend/internal/models"
	"github.com/inkwell-app/inkwell/backend/internal/repository"
	"github.com/inkwell-app/inkwell/backend/internal/service"
)

type EntriesHandler struct {
	streakService service.StreakService
}

// NewEntriesHandler creates a new entries handler.
func NewEntriesHandler(streakService service.StreakService) *EntriesHandler {
	return &EntriesHandler{streakService: streakService}
}

// RecordWritten handles POST /api/v1/entries/recorded. The entry
// authoring subsystem calls it exactly once per write that leaves an
// entry with content, passing the entry's creation instant.
func (h *EntriesHandler) RecordWritten(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		return
	}

	var req models.RecordEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.WriteProblem(c, apierror.NewValidationError(apierror.GetRequestID(c), []apierror.FieldError{
			{Field: "created_at", Message: "must be an RFC 3339 timestamp", Code: "required"},
		}))
		return
	}

	profile, err := h.streakService.RecordEntryWritten(c.Request.Context(), ownerID, req.CreatedAt)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			apierror.WriteProblem(c, apierror.NewNotFoundError(apierror.GetRequestID(c), "writer profile", ownerID.String()))
			return
		}
		logger.FromContext(c.Request.Context()).Error("failed to record entry", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"current_streak":   profile.CurrentStreak,
		"longest_streak":   profile.LongestStreak,
		"last_content_day": profile.LastContentDay,
	})
}
