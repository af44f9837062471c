package dto

import "net/http"

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
)

// statusByCode maps generation error codes to HTTP status codes.
// Codes not listed here default to 422: the request was well-formed
// but the run could not proceed.
var statusByCode = map[string]int{
	ErrCodeInternal:         http.StatusInternalServerError,
	ErrCodeBadRequest:       http.StatusBadRequest,
	ErrCodeInvalidJSON:      http.StatusBadRequest,
	ErrCodeNotFound:         http.StatusNotFound,
	"NOT_FOUND":             http.StatusNotFound,
	"CUSTOMER_NOT_FOUND":    http.StatusNotFound,
	"ALREADY_EXISTS":        http.StatusConflict,
	"EMAIL_TAKEN":           http.StatusConflict,
	"MODULE_DISABLED":       http.StatusForbidden,
	"UNKNOWN_OVERRIDE":      http.StatusBadRequest,
	"INVALID_LOCALE":        http.StatusBadRequest,
	"INVALID_CUSTOMER_TYPE": http.StatusBadRequest,
	"INVALID_GROUP":         http.StatusBadRequest,
	"VALIDATION_FAILED":     http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code
func GetHTTPStatus(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusUnprocessableEntity
}
