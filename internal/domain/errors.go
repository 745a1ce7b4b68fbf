package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidURL      = errors.New("invalid url")
	ErrInvalidKeyValue = errors.New("invalid key=value pair")
	ErrFileNotFound    = errors.New("file not found")
	ErrTransport       = errors.New("request failed")
	ErrBodyRead        = errors.New("body read")
	ErrMalformedJSON   = errors.New("malformed json body")
)

// ExitError asks the process to terminate with Code. It is returned when the
// expected status does not match the received one.
type ExitError struct {
	Code     int
	Expected int
	Actual   int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("expected status %d, got %d", e.Expected, e.Actual)
}
