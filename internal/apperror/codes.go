package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	// General validation
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInvalidFormat   Code = "INVALID_FORMAT"
	CodeInvalidState    Code = "INVALID_STATE"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	// Configuration
	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	// External service errors
	CodeExternalServiceError Code = "EXTERNAL_SERVICE_ERROR"
	CodeServiceTimeout       Code = "SERVICE_TIMEOUT"
	CodeServiceUnavailable   Code = "SERVICE_UNAVAILABLE"
	CodeRateLimitExceeded    Code = "RATE_LIMIT_EXCEEDED"

	// System errors
	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Remittance-specific error codes
const (
	// Provider adapter errors
	CodeProviderConnectionFailed Code = "PROVIDER_CONNECTION_FAILED"
	CodeProviderAuthFailed       Code = "PROVIDER_AUTH_FAILED"
	CodeProviderAPIError         Code = "PROVIDER_API_ERROR"
	CodeProviderRateLimited      Code = "PROVIDER_RATE_LIMITED"
	CodeProviderTimeout          Code = "PROVIDER_TIMEOUT"
	CodeProviderParsingFailed    Code = "PROVIDER_PARSING_FAILED"
	CodeUnsupportedCorridor      Code = "UNSUPPORTED_CORRIDOR"

	// Normalization errors
	CodeInconsistentResponse Code = "INCONSISTENT_RESPONSE"

	// Catalog errors
	CodeUnknownCountry  Code = "UNKNOWN_COUNTRY"
	CodeUnknownCurrency Code = "UNKNOWN_CURRENCY"

	// Cache errors
	CodeCacheMiss    Code = "CACHE_MISS"
	CodeCacheExpired Code = "CACHE_EXPIRED"

	// Circuit breaker errors
	CodeCircuitOpen     Code = "CIRCUIT_OPEN"
	CodeCircuitHalfOpen Code = "CIRCUIT_HALF_OPEN"
)
