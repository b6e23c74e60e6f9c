package apierror

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the MIME type for RFC 9457 Problem Details.
const ContentTypeProblemJSON = "application/problem+json"

// WriteProblem writes a ProblemDetails response to the gin context with
// the correct Content-Type header.
func WriteProblem(c *gin.Context, problem *ProblemDetails) {
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// GetRequestID extracts the request ID set by the request-id middleware.
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return c.GetHeader("X-Request-ID")
}

// NewInvalidPeriodError creates a 400 response for an unsupported
// period value, listing the accepted choices.
func NewInvalidPeriodError(requestID, value string, choices []string) *ProblemDetails {
	return &ProblemDetails{
		Type:      TypeInvalidPeriod,
		Title:     TitleInvalidPeriod,
		Status:    http.StatusBadRequest,
		Detail:    fmt.Sprintf("Unsupported period %q", value),
		RequestID: requestID,
		Choices:   choices,
		Errors: []FieldError{
			{Field: "period", Message: "must be one of the supported periods", Code: "invalid_choice"},
		},
	}
}

// NewValidationError creates a 400 response for request validation
// failures.
func NewValidationError(requestID string, errors []FieldError) *ProblemDetails {
	return &ProblemDetails{
		Type:      TypeValidation,
		Title:     TitleValidation,
		Status:    http.StatusBadRequest,
		Detail:    "One or more fields failed validation",
		RequestID: requestID,
		Errors:    errors,
	}
}

// NewNotFoundError creates a 404 response.
func NewNotFoundError(requestID, resource, id string) *ProblemDetails {
	return &ProblemDetails{
		Type:      TypeNotFound,
		Title:     TitleNotFound,
		Status:    http.StatusNotFound,
		Detail:    fmt.Sprintf("%s with ID '%s' was not found", resource, id),
		RequestID: requestID,
	}
}

// NewUnauthorizedError creates a 401 response.
func NewUnauthorizedError(requestID string) *ProblemDetails {
	return &ProblemDetails{
		Type:      TypeUnauthorized,
		Title:     TitleUnauthorized,
		Status:    http.StatusUnauthorized,
		Detail:    "Authentication is required to access this resource",
		RequestID: requestID,
	}
}

// NewRateLimitError creates a 429 response.
func NewRateLimitError(requestID string) *ProblemDetails {
	return &ProblemDetails{
		Type:      TypeRateLimit,
		Title:     TitleRateLimit,
		Status:    http.StatusTooManyRequests,
		Detail:    "Rate limit exceeded",
		RequestID: requestID,
	}
}

// NewInternalError creates a 500 response. Internal error details are
// logged server-side, never returned to the client.
func NewInternalError(requestID string) *ProblemDetails {
	return &ProblemDetails{
		Type:      TypeInternal,
		Title:     TitleInternal,
		Status:    http.StatusInternalServerError,
		Detail:    "An unexpected error occurred",
		RequestID: requestID,
	}
}
