package utils

import (
	"errors"
	"fmt"
)

// ErrLookupFailed is the only failure kind a weather lookup reports.
var ErrLookupFailed = errors.New("city not found")

var (
	ErrAPIKeyNotSet  = errors.New("API key is not set")
	ErrMissingFields = errors.New("response is missing expected fields")
)

// LookupError carries the underlying cause of a failed lookup. It matches both
// ErrLookupFailed and the cause under errors.Is.
type LookupError struct {
	City  string
	Cause error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup %q failed: %v", e.City, e.Cause)
}

func (e *LookupError) Unwrap() []error {
	return []error{ErrLookupFailed, e.Cause}
}

func lookupFailed(city string, cause error) error {
	return &LookupError{City: city, Cause: cause}
}
