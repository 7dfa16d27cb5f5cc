package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const genericMessage = "An internal error occurred. Please try again later."

func TestError_Format(t *testing.T) {
	refused := errors.New("connection refused")

	assert.Equal(t, "Could not parse address. Invalid format.",
		(&Error{Code: EINVALID, Message: "Could not parse address. Invalid format."}).Error())
	assert.Equal(t, "lookup.validate: bad shape",
		(&Error{Code: EINVALID, Op: "lookup.validate", Message: "bad shape"}).Error())
	assert.Equal(t, "lookup.search: geocoder unreachable: connection refused",
		(&Error{Code: EUNAVAILABLE, Op: "lookup.search", Message: "geocoder unreachable", Err: refused}).Error())
	assert.Equal(t, "render failed: connection refused",
		(&Error{Code: EINTERNAL, Message: "render failed", Err: refused}).Error())
}

func TestUpstreamErrors_KeepCause(t *testing.T) {
	cause := errors.New("status 503")

	tests := []struct {
		name string
		err  error
		code string
		op   string
	}{
		{"unavailable", Unavailable(cause, "lookup.search", "The address service is unavailable."), EUNAVAILABLE, "lookup.search"},
		{"bad gateway", BadGateway(cause, "lookup.search", "Unexpected response."), EBADGATEWAY, "lookup.search"},
		{"invalid", Invalid(cause, "lookup.validate", "Could not parse address. Invalid format."), EINVALID, "lookup.validate"},
		{"wrapped internal", WrapError(cause, EINTERNAL, "lookup.search", "geocoder search failed"), EINTERNAL, "lookup.search"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("handler: %w", tt.err)

			assert.Equal(t, tt.code, ErrorCode(wrapped))
			assert.Equal(t, tt.op, ErrorOp(wrapped))
			assert.ErrorIs(t, wrapped, cause)
		})
	}
}

func TestErrorMessage_HidesInternals(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, ""},
		{"user facing", Unavailable(nil, "lookup.search", "The address service is unavailable."), "The address service is unavailable."},
		{"internal", Internal(errors.New("template missing"), "request_info.render", "failed to render page"), genericMessage},
		{"wrapped internal", WrapError(errors.New("boom"), EINTERNAL, "lookup.search", "geocoder search failed"), genericMessage},
		{"plain error", errors.New("dial tcp 10.0.0.1:443"), genericMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorMessage(tt.err))
		})
	}
}

func TestErrorCode_NonDomain(t *testing.T) {
	assert.Empty(t, ErrorCode(nil))
	assert.Equal(t, EINTERNAL, ErrorCode(errors.New("boom")))
	assert.Empty(t, ErrorOp(errors.New("boom")))
}

func TestErrorf(t *testing.T) {
	err := Errorf(ETOOLARGE, "api.validate_address", "body over %d bytes", 65536)

	var de *Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, ETOOLARGE, de.Code)
	assert.Equal(t, "api.validate_address", de.Op)
	assert.Equal(t, "body over 65536 bytes", de.Message)
}

func TestWrapError_Nil(t *testing.T) {
	assert.NoError(t, WrapError(nil, EINTERNAL, "lookup.search", "unused"))
}

func TestNotFound(t *testing.T) {
	err := NotFound("route.match", "page", "/nope")

	assert.Equal(t, ENOTFOUND, ErrorCode(err))
	assert.Equal(t, "page not found: /nope", ErrorMessage(err))
}

func TestValidationError_Fields(t *testing.T) {
	err := NewValidationError("api.validate_address", "address", "address is required")
	assert.True(t, IsValidationError(err))
	assert.Equal(t, "api.validate_address: address: address is required", err.Error())

	err = AddFieldError(err, "form", "form is invalid")
	assert.Equal(t, map[string]string{
		"address": "address is required",
		"form":    "form is invalid",
	}, GetValidationFields(err))
	assert.Equal(t, "api.validate_address: validation failed for 2 fields", err.Error())
}

func TestValidationError_NotADomainError(t *testing.T) {
	fresh := AddFieldError(nil, "address", "address is required")
	assert.Len(t, GetValidationFields(fresh), 1)

	assert.Nil(t, GetValidationFields(errors.New("boom")))
	assert.False(t, IsValidationError(&Error{Code: EINVALID}))
}
