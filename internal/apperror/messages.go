package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	// General validation
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidFormat:   "Invalid data format",
	CodeInvalidState:    "Invalid state for this operation",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	// Configuration
	CodeConfigurationError: "Configuration error",

	// External service errors
	CodeExternalServiceError: "External service error",
	CodeServiceTimeout:       "Service request timeout",
	CodeServiceUnavailable:   "Service temporarily unavailable",
	CodeRateLimitExceeded:    "Rate limit exceeded",

	// System errors
	CodeInternalError: "Internal server error",
	CodeUnknownError:  "An unknown error occurred",

	// Provider adapter errors
	CodeProviderConnectionFailed: "Failed to connect to provider",
	CodeProviderAuthFailed:       "Provider authentication failed",
	CodeProviderAPIError:         "Provider API error",
	CodeProviderRateLimited:      "Provider rate limit exceeded",
	CodeProviderTimeout:          "Provider request timed out",
	CodeProviderParsingFailed:    "Failed to parse provider response",
	CodeUnsupportedCorridor:      "Corridor not supported by provider",

	// Normalization errors
	CodeInconsistentResponse: "Provider response failed internal consistency checks",

	// Catalog errors
	CodeUnknownCountry:  "Unknown or unsupported country code",
	CodeUnknownCurrency: "Unknown or unsupported currency code",

	// Cache errors
	CodeCacheMiss:    "Cache miss",
	CodeCacheExpired: "Cache entry expired",

	// Circuit breaker errors
	CodeCircuitOpen:     "Circuit breaker is open",
	CodeCircuitHalfOpen: "Circuit breaker is half-open",
}
