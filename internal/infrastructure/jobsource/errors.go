package jobsource

import "fmt"

// FetchError describes a failed job source request
type FetchError struct {
	URL        string
	Message    string
	StatusCode int
	Cause      error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("job source error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("job source error for %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// retryable reports whether another attempt could succeed
func (e *FetchError) retryable() bool {
	if e.StatusCode == 0 {
		return e.Cause != nil
	}
	return e.StatusCode == 429 || e.StatusCode >= 500
}
