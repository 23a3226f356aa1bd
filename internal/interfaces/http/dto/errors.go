package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation and input error codes
const (
	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Order lifecycle error codes
const (
	// ErrCodeInvalidTransition is used when a status change violates the
	// production lifecycle
	ErrCodeInvalidTransition = "ERR_INVALID_TRANSITION"
	// ErrCodeUnknownState is used when a status value is not recognized
	ErrCodeUnknownState = "ERR_UNKNOWN_STATE"
	// ErrCodePartialCreate is used when an order was rolled back after a
	// failed line insert
	ErrCodePartialCreate = "ERR_PARTIAL_CREATE"
	// ErrCodePersistence is used when a write could not be completed
	ErrCodePersistence = "ERR_PERSISTENCE"
)

// Ledger integration error codes
const (
	ErrCodeCSRFMismatch        = "ERR_CSRF_MISMATCH"
	ErrCodeOAuthExchange       = "ERR_OAUTH_EXCHANGE"
	ErrCodeMetadataFetch       = "ERR_METADATA_FETCH"
	ErrCodeNetworkTimeout      = "ERR_NETWORK_TIMEOUT"
	ErrCodeProviderUnavailable = "ERR_PROVIDER_UNAVAILABLE"
	ErrCodeNoActiveConnection  = "ERR_NO_ACTIVE_CONNECTION"
	ErrCodeTokenRefresh        = "ERR_TOKEN_REFRESH"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidTransition: http.StatusUnprocessableEntity,
	ErrCodeUnknownState:      http.StatusBadRequest,
	ErrCodePartialCreate:     http.StatusInternalServerError,
	ErrCodePersistence:       http.StatusInternalServerError,

	ErrCodeCSRFMismatch:        http.StatusForbidden,
	ErrCodeOAuthExchange:       http.StatusBadGateway,
	ErrCodeMetadataFetch:       http.StatusBadGateway,
	ErrCodeNetworkTimeout:      http.StatusGatewayTimeout,
	ErrCodeProviderUnavailable: http.StatusBadGateway,
	ErrCodeNoActiveConnection:  http.StatusConflict,
	ErrCodeTokenRefresh:        http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodeMapping maps domain error codes to API error codes
var domainErrorCodeMapping = map[string]string{
	"NOT_FOUND":              ErrCodeNotFound,
	"ALREADY_EXISTS":         ErrCodeAlreadyExists,
	"INVALID_INPUT":          ErrCodeInvalidInput,
	"UNAUTHORIZED":           ErrCodeUnauthorized,
	"FORBIDDEN":              ErrCodeForbidden,
	"CONCURRENCY_CONFLICT":   ErrCodeConcurrencyConflict,
	"PERSISTENCE_FAILURE":    ErrCodePersistence,
	"PARTIAL_CREATE_FAILURE": ErrCodePartialCreate,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Unknown codes are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
