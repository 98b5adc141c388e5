package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<DESCRIPTION>

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is used when request binding or validation fails
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeInvalidQuantity is used for negative or non-positive quantities
	ErrCodeInvalidQuantity = "ERR_INVALID_QUANTITY"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the caller lacks the required role
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	ErrCodeNotFound         = "ERR_NOT_FOUND"
	ErrCodeDuplicateRequest = "ERR_DUPLICATE_REQUEST"
	// ErrCodeConflict is used when a delete would orphan referencing rows
	ErrCodeConflict = "ERR_CONFLICT"
)

// Stock rule error codes
const (
	ErrCodeInsufficientStock        = "ERR_INSUFFICIENT_STOCK"
	ErrCodeAlreadyAssigned          = "ERR_ALREADY_ASSIGNED"
	ErrCodeNotAssigned              = "ERR_NOT_ASSIGNED"
	ErrCodeProductNotAssigned       = "ERR_PRODUCT_NOT_ASSIGNED"
	ErrCodeMerchantNotFound         = "ERR_MERCHANT_NOT_FOUND"
	ErrCodeMissingWarehouse         = "ERR_MISSING_WAREHOUSE"
	ErrCodeWarehouseProductNotFound = "ERR_WAREHOUSE_PRODUCT_NOT_FOUND"
	ErrCodeCategoryNotFound         = "ERR_CATEGORY_NOT_FOUND"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	// Malformed requests -> 400 Bad Request
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	// Resource errors
	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeDuplicateRequest: http.StatusConflict,
	ErrCodeConflict:         http.StatusConflict,

	// Stock rule violations -> 422 Unprocessable Entity
	ErrCodeInvalidQuantity:          http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock:        http.StatusUnprocessableEntity,
	ErrCodeAlreadyAssigned:          http.StatusUnprocessableEntity,
	ErrCodeNotAssigned:              http.StatusUnprocessableEntity,
	ErrCodeProductNotAssigned:       http.StatusUnprocessableEntity,
	ErrCodeMerchantNotFound:         http.StatusUnprocessableEntity,
	ErrCodeMissingWarehouse:         http.StatusUnprocessableEntity,
	ErrCodeWarehouseProductNotFound: http.StatusUnprocessableEntity,
	ErrCodeCategoryNotFound:         http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":                   ErrCodeNotFound,
	"INVALID_INPUT":               ErrCodeInvalidInput,
	"INVALID_QUANTITY":            ErrCodeInvalidQuantity,
	"INSUFFICIENT_STOCK":          ErrCodeInsufficientStock,
	"ALREADY_ASSIGNED":            ErrCodeAlreadyAssigned,
	"NOT_ASSIGNED":                ErrCodeNotAssigned,
	"PRODUCT_NOT_ASSIGNED":        ErrCodeProductNotAssigned,
	"MERCHANT_NOT_FOUND":          ErrCodeMerchantNotFound,
	"MISSING_WAREHOUSE":           ErrCodeMissingWarehouse,
	"WAREHOUSE_PRODUCT_NOT_FOUND": ErrCodeWarehouseProductNotFound,
	"CATEGORY_NOT_FOUND":          ErrCodeCategoryNotFound,
	"DUPLICATE_REQUEST":           ErrCodeDuplicateRequest,
	"IN_USE":                      ErrCodeConflict,
	"UNAUTHORIZED":                ErrCodeUnauthorized,
	"FORBIDDEN":                   ErrCodeForbidden,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes without a mapping become ERR_INVALID_INPUT when they come from the
// domain, since every domain error describes a rejected request.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	if _, ok := ErrorCodeHTTPStatus[code]; ok {
		return code
	}
	return ErrCodeInvalidInput
}
