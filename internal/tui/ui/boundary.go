package ui

import (
	"fmt"
	"sync"
)

// Boundary confines panics raised while producing a view. A failed render
// leaves the boundary tripped until Reset; the shell shows a fallback page
// and offers a manual retry instead of crashing the screen.
type Boundary struct {
	mu  sync.Mutex
	err error
}

// NewBoundary creates an untripped boundary.
func NewBoundary() *Boundary {
	return &Boundary{}
}

// Capture runs fn, converting a panic into a stored error. Returns the
// stored error, or nil if fn completed. While tripped, Capture refuses to
// run fn again until Reset is called: recovery is manual, never automatic.
func (b *Boundary) Capture(fn func()) (err error) {
	b.mu.Lock()
	if b.err != nil {
		err = b.err
		b.mu.Unlock()
		return err
	}
	b.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				e = fmt.Errorf("%v", r)
			}
			b.mu.Lock()
			b.err = e
			b.mu.Unlock()
			err = e
		}
	}()
	fn()
	return nil
}

// Err returns the last captured failure, or nil.
func (b *Boundary) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// Reset clears the captured failure so rendering can be retried.
func (b *Boundary) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.err = nil
}
