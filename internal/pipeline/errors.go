package pipeline

import (
	"errors"
	"fmt"

	"github.com/JakeFAU/occupation-risk/internal/bls"
)

// ErrNotConfigured is returned when a live fetch is needed but the statistics
// client has no API key.
var ErrNotConfigured = errors.New("statistics api key not configured")

// ErrNoData is returned when neither fetcher produced any figure for a code.
var ErrNoData = errors.New("no statistics available")

// FetchError reports a failed live fetch. The provider's message is kept in Err.
type FetchError struct {
	Code  string
	Stage string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s for %s: %v", e.Stage, e.Code, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// APIError returns the underlying statistics API error, if any.
func (e *FetchError) APIError() (*bls.APIError, bool) {
	var apiErr *bls.APIError
	if errors.As(e.Err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
