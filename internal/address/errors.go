package address

import "errors"

const invalidFormatMessage = "Could not parse address. Invalid format."

// ErrInvalidFormat is the sentinel every FormatError matches with errors.Is.
var ErrInvalidFormat = errors.New(invalidFormatMessage)

// FormatError is returned when a query matches none of the accepted shapes.
// Its message is fixed and safe to show to users.
type FormatError struct {
	Query string
}

func (e *FormatError) Error() string {
	return invalidFormatMessage
}

// Is lets errors.Is(err, ErrInvalidFormat) match any FormatError.
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}
