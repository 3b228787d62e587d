package clock

import "time"

// Scheduler abstracts timer scheduling so components that arm delayed
// callbacks can run against virtual time in tests.
type Scheduler interface {
	// Now returns the current time.
	Now() time.Time
	// AfterFunc runs fn after d elapses. The returned Timer cancels it.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a cancelable pending callback.
type Timer interface {
	// Stop cancels the timer. Returns false if it already fired or was stopped.
	Stop() bool
}

// System is a Scheduler backed by wall-clock timers.
type System struct{}

// NewSystem creates a wall-clock scheduler.
func NewSystem() *System {
	return &System{}
}

// Now implements Scheduler.
func (*System) Now() time.Time {
	return time.Now()
}

// AfterFunc implements Scheduler.
func (*System) AfterFunc(d time.Duration, fn func()) Timer {
	return systemTimer{time.AfterFunc(d, fn)}
}

type systemTimer struct {
	t *time.Timer
}

func (s systemTimer) Stop() bool {
	return s.t.Stop()
}
