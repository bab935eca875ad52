package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is used when a field fails domain validation
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used when a write violates a storage constraint
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeInvalidReference is used when a referenced resource does not exist
	ErrCodeInvalidReference = "ERR_INVALID_REFERENCE"
)

// Attachment error codes
const (
	// ErrCodeUnsupportedMedia is used when an upload content type is not allowed
	ErrCodeUnsupportedMedia = "ERR_UNSUPPORTED_MEDIA"
	// ErrCodeStorage is used when the object storage collaborator fails
	ErrCodeStorage = "ERR_STORAGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeAlreadyExists:    http.StatusConflict,
	ErrCodeConflict:         http.StatusConflict,
	ErrCodeInvalidReference: http.StatusBadRequest,

	ErrCodeUnsupportedMedia: http.StatusUnsupportedMediaType,
	ErrCodeStorage:          http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the HTTP-facing codes.
// Domain services name the missing collaborator (INVALID_ASSET, INVALID_USER,
// ...) so the API can keep one stable reference-error code.
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":      ErrCodeNotFound,
	"ALREADY_EXISTS": ErrCodeAlreadyExists,
	"VALIDATION":     ErrCodeValidation,
	"INVALID_INPUT":  ErrCodeInvalidInput,
	"INTEGRITY":      ErrCodeConflict,

	"INVALID_RELATION":   ErrCodeInvalidReference,
	"INVALID_USER":       ErrCodeInvalidReference,
	"INVALID_PROFILE":    ErrCodeInvalidReference,
	"INVALID_PARENT":     ErrCodeInvalidReference,
	"INVALID_CATEGORY":   ErrCodeInvalidReference,
	"INVALID_DEPARTMENT": ErrCodeInvalidReference,
	"INVALID_ASSET":      ErrCodeInvalidReference,
	"INVALID_PROJECT":    ErrCodeInvalidReference,
	"INVALID_TASK":       ErrCodeInvalidReference,

	"DISALLOWED_CONTENT_TYPE": ErrCodeUnsupportedMedia,
	"UPLOAD_URL_FAILED":       ErrCodeStorage,
}

// NormalizeErrorCode converts a domain error code to the HTTP-facing format.
// If the code is already in the ERR_ format or unknown, returns it as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
