package apiclient

import (
	"errors"
	"fmt"
)

// ErrTransport matches every failure of a round trip: connection errors,
// non-2xx statuses and undecodable bodies
var ErrTransport = errors.New("transport failure")

// TransportError describes a failed call to the generation service
type TransportError struct {
	Op         string // generate, templates
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

// Error returns the error message
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Op, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap returns the underlying error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrTransport) hold for any TransportError
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// IsNetworkError reports whether no HTTP response was received
func (e *TransportError) IsNetworkError() bool {
	return e.StatusCode == 0
}
