package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardErrorCodes(t *testing.T) {
	tests := []struct {
		name      string
		err       *StandardError
		code      ErrorCode
		retryable bool
	}{
		{"malformed trip", NewMalformedTripError("return before departure"), ErrCodeMalformedTrip, false},
		{"taxonomy load", NewTaxonomyLoadError("file missing"), ErrCodeTaxonomyLoadFailed, true},
		{"taxonomy invalid", NewTaxonomyInvalidError("bad class"), ErrCodeTaxonomyInvalid, false},
		{"claims query", NewClaimsQueryError("connection refused"), ErrCodeClaimsQueryFailed, true},
		{"pricing unavailable", NewPricingUnavailableError("PROD-A"), ErrCodePricingUnavailable, true},
		{"scoring fault", NewScoringFaultError("PROD-B", errors.New("nil map")), ErrCodeScoringFault, false},
		{"invalid request", NewInvalidRequestError("missing destination"), ErrCodeInvalidRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, CodeOf(tt.err))
			assert.Equal(t, tt.retryable, IsRetryable(tt.err))
			assert.Contains(t, tt.err.Error(), string(tt.code))
			assert.False(t, tt.err.Timestamp.IsZero())
		})
	}
}

func TestCodeOfWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("loading taxonomy: %w", NewTaxonomyInvalidError("bad shape"))

	assert.Equal(t, ErrCodeTaxonomyInvalid, CodeOf(wrapped))
	assert.False(t, IsRetryable(wrapped))
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), CodeOf(errors.New("plain")))
	assert.False(t, IsRetryable(errors.New("plain")))
	assert.False(t, IsRetryable(nil))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"malformed trip", NewMalformedTripError("bad dates"), 400},
		{"invalid request", NewInvalidRequestError("missing destination"), 400},
		{"claims query", NewClaimsQueryError("connection refused"), 503},
		{"pricing unavailable", NewPricingUnavailableError("PROD-A"), 503},
		{"scoring fault", NewScoringFaultError("PROD-B", errors.New("nil map")), 500},
		{"wrapped", fmt.Errorf("handling request: %w", NewMalformedTripError("inverted")), 400},
		{"plain", errors.New("plain"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
		})
	}
}
