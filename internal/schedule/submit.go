package schedule

import (
	"context"
	"errors"
	"sync"
)

// ErrAlreadySubmitting is returned when a submit is requested while a
// previous one is still in flight. Repeated user activation must not
// produce duplicate network calls.
var ErrAlreadySubmitting = errors.New("schedule submission already in progress")

// TravelCreator is the backend call the submitter depends on.
// *api.Client satisfies it.
type TravelCreator interface {
	CreateTravel(ctx context.Context, token, name, startDate, endDate string) error
}

// Submitter sends a validated destination and date range to the backend.
// It does not re-validate: callers run Validate first and only submit on
// an enabled state. Exactly one network attempt is made per call.
//
// The in-flight guard is per process. Duplicate submissions from
// independent sessions are not guarded here; the backend owns the data
// and would be the place for a durable lock.
type Submitter struct {
	travels TravelCreator

	mu       sync.Mutex
	inFlight bool
}

// NewSubmitter creates a Submitter backed by the given travel API.
func NewSubmitter(travels TravelCreator) *Submitter {
	return &Submitter{travels: travels}
}

// Submit normalizes the date range and creates the travel schedule.
// Concurrent calls are rejected with ErrAlreadySubmitting. On failure
// the upstream error is returned unchanged so the caller can keep the
// form state and let the user retry.
func (s *Submitter) Submit(ctx context.Context, token, destination string, start, end DateSelection) error {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return ErrAlreadySubmitting
	}
	s.inFlight = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	return s.travels.CreateTravel(ctx, token, destination, start.Canonical(), end.Canonical())
}
