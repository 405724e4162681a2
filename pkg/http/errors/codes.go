package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeMissingField     = "missing_field"

	// Resource errors
	ErrCodeNotFound      = "not_found"
	ErrCodeAlreadyExists = "already_exists"
	ErrCodeConflict      = "conflict"

	// Generation errors
	ErrCodeInsufficientContent = "insufficient_content"
	ErrCodeGenerationFailed    = "generation_failed"
	ErrCodeMalformedResponse   = "malformed_model_response"

	// Rate limiting
	ErrCodeRateLimited = "rate_limited"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
	ErrCodeUpstreamError      = "upstream_error"
)
