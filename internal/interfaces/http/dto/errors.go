package dto

import (
	"net/http"
	"strings"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed fall through to the prefix rules in GetHTTPStatus.
var errorCodeHTTPStatus = map[string]int{
	// identity
	"UNAUTHENTICATED":     http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,
	"FORBIDDEN_ROLE":      http.StatusForbidden,
	"NOT_OWNER":           http.StatusForbidden,

	// resources
	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"EMAIL_TAKEN":          http.StatusConflict,
	"CNPJ_TAKEN":           http.StatusConflict,
	"CODIGO_TAKEN":         http.StatusConflict,
	"NFE_ALREADY_IMPORTED": http.StatusConflict,

	// lifecycle
	"INVALID_TRANSITION": http.StatusConflict,
	"TERMINAL_STATE":     http.StatusConflict,

	// business rules
	"DISCOUNT_REQUIRES_APPROVAL": http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":         http.StatusUnprocessableEntity,
	"NO_ITEMS":                   http.StatusUnprocessableEntity,
	"FORNECEDOR_INACTIVE":        http.StatusUnprocessableEntity,
	"CANNOT_DEACTIVATE_SELF":     http.StatusUnprocessableEntity,

	// outbound integrations
	"META_API_ERROR":       http.StatusBadGateway,
	"META_API_UNREACHABLE": http.StatusBadGateway,
	"META_CONFIG_INVALID":  http.StatusServiceUnavailable,

	// input
	"INVALID_INPUT":   http.StatusBadRequest,
	"INVALID_NFE_XML": http.StatusBadRequest,

	"INTERNAL": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for a domain error code. Codes
// named INVALID_* that carry no explicit mapping are treated as bad
// input; *_ALREADY_* codes as conflicts; every other business code as
// an unprocessable request.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	if strings.Contains(code, "ALREADY_") {
		return http.StatusConflict
	}
	return http.StatusUnprocessableEntity
}
