package clock

import (
	"testing"
	"time"
)

func TestFakeAdvanceFiresDueTimers(t *testing.T) {
	f := NewFake(time.Unix(0, 0))
	var fired []string

	f.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "a") })
	f.AfterFunc(200*time.Millisecond, func() { fired = append(fired, "b") })

	f.Advance(150 * time.Millisecond)
	if len(fired) != 1 || fired[0] != "a" {
		t.Errorf("fired = %v, want [a]", fired)
	}

	f.Advance(100 * time.Millisecond)
	if len(fired) != 2 || fired[1] != "b" {
		t.Errorf("fired = %v, want [a b]", fired)
	}
}

func TestFakeFiresInDeadlineOrder(t *testing.T) {
	f := NewFake(time.Unix(0, 0))
	var fired []string

	f.AfterFunc(300*time.Millisecond, func() { fired = append(fired, "late") })
	f.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "early") })

	f.Advance(time.Second)
	if len(fired) != 2 || fired[0] != "early" || fired[1] != "late" {
		t.Errorf("fired = %v, want [early late]", fired)
	}
}

func TestFakeStopCancels(t *testing.T) {
	f := NewFake(time.Unix(0, 0))
	fired := false

	timer := f.AfterFunc(100*time.Millisecond, func() { fired = true })
	if !timer.Stop() {
		t.Error("Stop() = false, want true for pending timer")
	}

	f.Advance(time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
	if timer.Stop() {
		t.Error("Stop() = true on already-stopped timer")
	}
}

func TestFakeCallbackSchedulesTimer(t *testing.T) {
	f := NewFake(time.Unix(0, 0))
	var fired []string

	f.AfterFunc(100*time.Millisecond, func() {
		fired = append(fired, "first")
		f.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "chained") })
	})

	// A single Advance spanning both deadlines fires the chained timer too.
	f.Advance(time.Second)
	if len(fired) != 2 || fired[1] != "chained" {
		t.Errorf("fired = %v, want [first chained]", fired)
	}
}

func TestFakeNowAdvances(t *testing.T) {
	start := time.Unix(1000, 0)
	f := NewFake(start)

	var at time.Time
	f.AfterFunc(500*time.Millisecond, func() { at = f.Now() })

	f.Advance(2 * time.Second)

	if got := f.Now(); !got.Equal(start.Add(2 * time.Second)) {
		t.Errorf("Now() = %v, want %v", got, start.Add(2*time.Second))
	}
	// Inside the callback, Now() reflects the timer's deadline.
	if !at.Equal(start.Add(500 * time.Millisecond)) {
		t.Errorf("Now() inside callback = %v, want %v", at, start.Add(500*time.Millisecond))
	}
}
