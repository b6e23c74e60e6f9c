// Package apierror provides RFC 9457 Problem Details error responses
// for the inkwell API.
package apierror

// ProblemDetails is an RFC 9457 Problem Details response body.
// See https://www.rfc-editor.org/rfc/rfc9457.html
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// Extension fields
	RequestID string       `json:"request_id,omitempty"`
	Choices   []string     `json:"choices,omitempty"` // valid values for enumerated parameters
	Errors    []FieldError `json:"errors,omitempty"`
}

// FieldError describes a validation failure for one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Error implements the error interface.
func (p *ProblemDetails) Error() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.Title
}
