package geocode

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport matches every TransportError.
	ErrTransport = errors.New("geocoder transport error")

	// ErrResponseFormat matches every ResponseFormatError.
	ErrResponseFormat = errors.New("geocoder response format error")
)

// TransportError is returned when the geocoder could not be reached or
// answered with a non-2xx status.
type TransportError struct {
	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("geocoder request failed: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("geocoder request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// ResponseFormatError is returned when the geocoder body is not a JSON array.
type ResponseFormatError struct {
	// Snippet is the beginning of the offending body, for logs.
	Snippet string
	Err     error
}

func (e *ResponseFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geocoder response is not a JSON array: %v", e.Err)
	}
	return fmt.Sprintf("geocoder response is not a JSON array: %q", e.Snippet)
}

func (e *ResponseFormatError) Unwrap() error {
	return e.Err
}

func (e *ResponseFormatError) Is(target error) bool {
	return target == ErrResponseFormat
}
