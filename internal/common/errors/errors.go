// Package errors provides standardized error handling for the advisor.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeMalformedTrip      ErrorCode = "MALFORMED_TRIP"
	ErrCodeTaxonomyLoadFailed ErrorCode = "TAXONOMY_LOAD_FAILED"
	ErrCodeTaxonomyInvalid    ErrorCode = "TAXONOMY_VALIDATION_FAILED"

	ErrCodeClaimsQueryFailed  ErrorCode = "CLAIMS_QUERY_FAILED"
	ErrCodeClaimsQueryTimeout ErrorCode = "CLAIMS_QUERY_TIMEOUT"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeSearchQueryFailed        ErrorCode = "SEARCH_QUERY_FAILED"

	ErrCodePricingUnavailable ErrorCode = "PRICING_UNAVAILABLE"
	ErrCodeScoringFault       ErrorCode = "SCORING_FAULT"

	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewMalformedTripError creates a non-retryable trip-shape error.
func NewMalformedTripError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedTrip,
		Message:   "Trip dates are missing, unparseable, or inverted",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTaxonomyLoadError marks a taxonomy source that could not be read.
// Callers fall back to the default catalog instead of surfacing this.
func NewTaxonomyLoadError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTaxonomyLoadFailed,
		Message:   "Taxonomy source could not be loaded",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTaxonomyInvalidError marks a taxonomy document that failed schema
// validation.
func NewTaxonomyInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTaxonomyInvalid,
		Message:   "Taxonomy document failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewClaimsQueryError creates a retryable claims-database error.
func NewClaimsQueryError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeClaimsQueryFailed,
		Message:   "Claims database query failed",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPricingUnavailableError marks a quote that could not be priced.
// The scorer treats a missing price as neutral rather than failing.
func NewPricingUnavailableError(productCode string) *StandardError {
	return &StandardError{
		Code:      ErrCodePricingUnavailable,
		Message:   "No price available for product",
		Details:   productCode,
		Retryable: true,
		Metadata:  map[string]interface{}{"productCode": productCode},
		Timestamp: time.Now().UTC(),
	}
}

// NewScoringFaultError records a per-item scoring failure that was replaced
// by a neutral fallback score.
func NewScoringFaultError(item string, cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeScoringFault,
		Message:   "Scoring failed for a single item; neutral fallback applied",
		Details:   fmt.Sprintf("%s: %v", item, cause),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError creates a non-retryable request validation error.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Request failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// CodeOf extracts the ErrorCode from err, or empty when err is not a
// StandardError.
func CodeOf(err error) ErrorCode {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsRetryable reports whether err is a retryable StandardError.
func IsRetryable(err error) bool {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Retryable
	}
	return false
}

// HTTPStatus maps a StandardError code to the HTTP status an API binding
// should answer with. Unrecognized errors map to 500.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case ErrCodeMalformedTrip, ErrCodeInvalidRequest:
		return 400
	case ErrCodeClaimsQueryTimeout:
		return 504
	case ErrCodeClaimsQueryFailed, ErrCodeDatabaseConnectionFailed,
		ErrCodeSearchQueryFailed, ErrCodePricingUnavailable:
		return 503
	default:
		return 500
	}
}
