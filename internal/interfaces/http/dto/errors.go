package dto

import "net/http"

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation = "ERR_VALIDATION"
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

// Business rule error codes
const (
	ErrCodeInvalidState      = "ERR_INVALID_STATE"
	ErrCodeBusinessRule      = "ERR_BUSINESS_RULE"
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"
	ErrCodeOutOfStock        = "ERR_OUT_OF_STOCK"
	ErrCodeEmptyCart         = "ERR_EMPTY_CART"
	ErrCodeInvalidCoupon     = "ERR_INVALID_COUPON"
	ErrCodeExpiredCoupon     = "ERR_EXPIRED_COUPON"
	ErrCodeCommitFailed      = "ERR_COMMIT_FAILED"
)

// Input error codes
const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:      http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock: http.StatusUnprocessableEntity,
	ErrCodeOutOfStock:        http.StatusConflict,
	ErrCodeEmptyCart:         http.StatusUnprocessableEntity,
	ErrCodeInvalidCoupon:     http.StatusUnprocessableEntity,
	ErrCodeExpiredCoupon:     http.StatusUnprocessableEntity,
	ErrCodeCommitFailed:      http.StatusInternalServerError,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the wire format
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"UNAUTHORIZED":         ErrCodeUnauthorized,
	"FORBIDDEN":            ErrCodeForbidden,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"INSUFFICIENT_STOCK":   ErrCodeInsufficientStock,
	"EMPTY_CART":           ErrCodeEmptyCart,
	"INVALID_COUPON":       ErrCodeInvalidCoupon,
	"EXPIRED_COUPON":       ErrCodeExpiredCoupon,
	"COMMIT_FAILED":        ErrCodeCommitFailed,
	"INVALID_ADDRESS":      ErrCodeValidation,
	"INVALID_SHIPPING":     ErrCodeValidation,
	"INVALID_QUANTITY":     ErrCodeInvalidInput,
	"INVALID_PRODUCT":      ErrCodeInvalidInput,
	"INVALID_PRICE":        ErrCodeInvalidInput,
	"INVALID_STOCK":        ErrCodeInvalidInput,
	"INVALID_TITLE":        ErrCodeInvalidInput,
	"INVALID_CODE":         ErrCodeInvalidInput,
	"INVALID_DISCOUNT":     ErrCodeInvalidInput,
	"INVALID_ACCOUNT":      ErrCodeInvalidInput,
	"INVALID_STATUS":       ErrCodeInvalidInput,
	"ITEM_NOT_FOUND":       ErrCodeNotFound,
	"INVALID_ORDER_NUMBER": ErrCodeInvalidInput,
	"INVALID_LOGIN_EVENT":  ErrCodeInvalidInput,
}

// NormalizeErrorCode converts a domain error code to the wire format.
// Unknown codes pass through as-is.
func NormalizeErrorCode(code string) string {
	if wireCode, ok := DomainErrorCodeMapping[code]; ok {
		return wireCode
	}
	return code
}
