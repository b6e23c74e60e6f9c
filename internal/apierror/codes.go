package apierror

// Error type URIs used as the "type" field in Problem Details.
const (
	TypeValidation    = "urn:inkwell:error:validation"
	TypeInvalidPeriod = "urn:inkwell:error:invalid_period"
	TypeNotFound      = "urn:inkwell:error:not_found"
	TypeUnauthorized  = "urn:inkwell:error:unauthorized"
	TypeRateLimit     = "urn:inkwell:error:rate_limit"
	TypeInternal      = "urn:inkwell:error:internal"
)

// Human-readable titles for each error type.
const (
	TitleValidation    = "Validation Error"
	TitleInvalidPeriod = "Invalid Period"
	TitleNotFound      = "Resource Not Found"
	TitleUnauthorized  = "Authentication Required"
	TitleRateLimit     = "Rate Limit Exceeded"
	TitleInternal      = "Internal Server Error"
)
