// Package clock provides the app's notion of "now". Scheduling is entirely
// date-driven, so reproducible behavior requires that today be overridable:
// a simulated date stands in for the wall clock until cleared.
package clock

import (
	"sync"
	"time"

	"github.com/fireminder/fireminder/internal/dates"
)

// Clock yields the current moment in the user's local frame.
type Clock interface {
	Now() time.Time
}

// Today formats the clock's current calendar day.
func Today(c Clock) string {
	return dates.Format(c.Now())
}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Simulated wraps a base clock with an optional fixed calendar day. While a
// simulated date is set, Now returns local midnight of that day; StartedAt
// records the real moment simulation began, so records created during the
// session can be discarded afterwards.
type Simulated struct {
	mu        sync.RWMutex
	base      Clock
	simulated time.Time
	active    bool
	startedAt time.Time
}

func NewSimulated(base Clock) *Simulated {
	if base == nil {
		base = System{}
	}
	return &Simulated{base: base}
}

func (s *Simulated) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active {
		return s.simulated
	}
	return s.base.Now()
}

// Set fixes the clock to the given civil date. The first Set of a session
// records when simulation started.
func (s *Simulated) Set(date string) error {
	d, err := dates.Parse(date)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		s.startedAt = s.base.Now()
	}
	s.simulated = d
	s.active = true
	return nil
}

// Clear returns the clock to real time, keeping nothing of the session.
func (s *Simulated) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	s.startedAt = time.Time{}
}

// Active reports whether a simulated date is in effect.
func (s *Simulated) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// StartedAt returns the real moment the current simulation began; the zero
// time when not simulating.
func (s *Simulated) StartedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.startedAt
}
