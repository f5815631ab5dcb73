package onthisday

import (
	"errors"
	"fmt"
)

// ErrInvalidDate is returned when a caller-supplied date is not a valid MM-DD value.
var ErrInvalidDate = errors.New("invalid date, expected MM-DD")

// FetchError is returned when the feed cannot be retrieved.
// Either StatusCode is set (the server answered with a non-2xx status)
// or Err is set (the request never completed).
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch feed: %v", e.Err)
	}
	return fmt.Sprintf("failed to fetch feed: status %d", e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError is returned when the feed payload does not have the expected shape.
type ParseError struct {
	// Kind is the payload kind that was being parsed ("json" or "atom").
	Kind string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s feed: %v", e.Kind, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
