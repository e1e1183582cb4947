// Package like implements optimistic like toggling as an explicit state
// machine. The local liked flag and count flip immediately, the remote
// call confirms, and a failed call rolls the flip back instead of
// silently trusting whatever the UI last showed.
package like

import (
	"context"
	"errors"
	"sync"
)

// State of a toggle.
type State string

const (
	StateIdle       State = "idle"
	StatePending    State = "pending"
	StateConfirmed  State = "confirmed"
	StateRolledBack State = "rolled_back"
)

// ErrTogglePending is returned when a toggle is requested while another
// one is still awaiting confirmation.
var ErrTogglePending = errors.New("like toggle already pending")

// Result is the like state to render after a toggle attempt.
type Result struct {
	Liked bool
	Count int
	State State
}

// Toggler tracks the optimistic like state for one feed or comment as
// seen by one viewer.
type Toggler struct {
	mu    sync.Mutex
	state State
	liked bool
	count int
}

// NewToggler creates a Toggler seeded with the server-rendered state.
func NewToggler(liked bool, count int) *Toggler {
	return &Toggler{state: StateIdle, liked: liked, count: count}
}

// Toggle flips the liked state optimistically, then confirms it with
// confirm (which receives the desired liked value and makes the remote
// call). On failure the previous liked/count are restored and the
// upstream error is returned alongside the rolled-back result.
//
// A toggle requested while another is pending is rejected with
// ErrTogglePending and does not touch the state.
func (t *Toggler) Toggle(ctx context.Context, confirm func(ctx context.Context, liked bool) error) (Result, error) {
	t.mu.Lock()
	if t.state == StatePending {
		res := Result{Liked: t.liked, Count: t.count, State: t.state}
		t.mu.Unlock()
		return res, ErrTogglePending
	}

	prevLiked, prevCount := t.liked, t.count

	// Optimistic flip before the network round trip.
	t.liked = !t.liked
	if t.liked {
		t.count++
	} else {
		t.count--
	}
	t.state = StatePending
	desired := t.liked
	t.mu.Unlock()

	err := confirm(ctx, desired)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.liked, t.count = prevLiked, prevCount
		t.state = StateRolledBack
		return Result{Liked: t.liked, Count: t.count, State: t.state}, err
	}

	t.state = StateConfirmed
	return Result{Liked: t.liked, Count: t.count, State: t.state}, nil
}

// Snapshot returns the current state without toggling.
func (t *Toggler) Snapshot() Result {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Result{Liked: t.liked, Count: t.count, State: t.state}
}
