package bls

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned before any network I/O when no registration key is configured.
var ErrMissingAPIKey = errors.New("bls api key not configured")

// ErrNoSeries is returned when FetchSeries is called without series IDs.
var ErrNoSeries = errors.New("no series requested")

// Kind classifies an APIError.
type Kind string

// Error kinds surfaced to callers.
const (
	KindBadRequest       Kind = "bad_request"
	KindRateLimited      Kind = "rate_limited"
	KindRetriesExhausted Kind = "retries_exhausted"
	KindMissingAPIKey    Kind = "missing_api_key"
	KindRequestFailed    Kind = "request_failed"
)

// APIError is the only error type FetchSeries returns.
type APIError struct {
	Kind       Kind
	StatusCode int
	Message    string
	Attempts   int
	Err        error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("bls api %s (status %d after %d attempt(s)): %s", e.Kind, e.StatusCode, e.Attempts, msg)
	}
	return fmt.Sprintf("bls api %s after %d attempt(s): %s", e.Kind, e.Attempts, msg)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
