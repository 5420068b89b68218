package apiclient

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrMalformedBody    = errors.New("malformed response body")
	ErrUnsupported      = errors.New("operation not supported by resource")
)

// TransportError describes a failed API call: the network was unreachable,
// the server answered non-2xx, or the body could not be decoded.
type TransportError struct {
	Op     string
	Method string
	URL    string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s %s (status %d): %v", e.Op, e.Method, e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
