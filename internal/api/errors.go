package api

import (
	"errors"
	"fmt"
)

// FetchError reports a failed read from the backend. Callers on render
// paths treat it as "no data available": log it and keep the page up.
type FetchError struct {
	Op     string // operation, e.g. "fetch travel events"
	Status int    // HTTP status, 0 for transport errors
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: backend returned %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// SubmitError reports a failed write to the backend. Callers leave the
// submitted form state intact so the user can retry; nothing is retried
// internally.
type SubmitError struct {
	Op     string
	Status int
	Err    error
}

func (e *SubmitError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: backend returned %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }

// StatusOf returns the HTTP status carried by a FetchError or
// SubmitError in the chain, or 0 if there is none.
func StatusOf(err error) int {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Status
	}
	var se *SubmitError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}
