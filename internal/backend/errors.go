package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrBackendUnavailable means the request never got a response.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrBackendRejected means the backend answered with a non-2xx status
	// or an explicit unsuccessful result.
	ErrBackendRejected = errors.New("backend rejected request")
	// ErrMalformedResponse means a 2xx body lacked the expected fields.
	ErrMalformedResponse = errors.New("malformed backend response")
)

// Error describes a failed backend call. It unwraps to one of the
// sentinel errors above.
type Error struct {
	Op         string
	URL        string
	StatusCode int
	Reason     string
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }
