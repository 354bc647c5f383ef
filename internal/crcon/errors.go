package crcon

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that the referenced entity does not exist on the
// remote server (e.g. unbanning a player with no active ban).
var ErrNotFound = errors.New("not found")

// InvalidArgumentError reports input rejected locally, before any request
// is made.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return "invalid argument: " + e.Reason
}

// ConnectionError reports that the remote API could not be reached at all
// (DNS, TLS, timeout). Distinct from APIError, where the API responded
// with a failure.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return "crcon unreachable: " + e.Err.Error()
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// APIError reports that the API was reachable but returned a failure
// status or a malformed payload.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("crcon api status %d: %s", e.Status, e.Body)
}
