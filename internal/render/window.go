// Package render computes the virtualization window for very long message
// lists: which rows to materialize for the current scroll position, using an
// estimated row height corrected per row once measured. The arithmetic is
// pure so the policy is testable apart from any widget.
package render

import "github.com/matheus3301/tchat/internal/config"

// Window tracks row heights and derives the visible index range for a
// viewport. Heights are in abstract units (terminal rows for the TUI).
// Not safe for concurrent use; the UI owns it.
type Window struct {
	estimate  int
	overscan  int
	threshold int

	count    int
	measured map[int]int
	total    int
}

// New creates a window using the renderer tuning from config.
func New(cfg config.RendererConfig) *Window {
	return &Window{
		estimate:  cfg.EstimatedRowHeight,
		overscan:  cfg.Overscan,
		threshold: cfg.NearBottomThreshold,
		measured:  make(map[int]int),
	}
}

// Reset clears all measurements and the row count. Called on chat switch:
// scroll state never survives across chats.
func (w *Window) Reset() {
	w.count = 0
	w.measured = make(map[int]int)
	w.total = 0
}

// SetCount declares the list length. Rows keep their measurements; new rows
// start at the estimate.
func (w *Window) SetCount(n int) {
	if n < w.count {
		// The list shrank (only on reset-like replacement); drop stale rows.
		for i := range w.measured {
			if i >= n {
				w.total -= w.measured[i] - w.estimate
				delete(w.measured, i)
			}
		}
	}
	w.total += (n - w.count) * w.estimate
	w.count = n
}

// Count returns the declared list length.
func (w *Window) Count() int {
	return w.count
}

// Measure records the actual height of a row, correcting the layout.
func (w *Window) Measure(index, height int) {
	if index < 0 || index >= w.count || height <= 0 {
		return
	}
	prev, ok := w.measured[index]
	if !ok {
		prev = w.estimate
	}
	w.measured[index] = height
	w.total += height - prev
}

// Height returns the current height for a row.
func (w *Window) Height(index int) int {
	if h, ok := w.measured[index]; ok {
		return h
	}
	return w.estimate
}

// TotalSize returns the summed height of all rows.
func (w *Window) TotalSize() int {
	return w.total
}

// OffsetOf returns the offset of the top edge of row index.
func (w *Window) OffsetOf(index int) int {
	if index > w.count {
		index = w.count
	}
	off := index * w.estimate
	for i, h := range w.measured {
		if i < index {
			off += h - w.estimate
		}
	}
	return off
}

// IndexAt returns the row covering the given offset.
func (w *Window) IndexAt(offset int) int {
	if w.count == 0 || offset <= 0 {
		return 0
	}
	// Offsets are monotonic in the index; binary search them.
	lo, hi := 0, w.count-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if w.OffsetOf(mid) <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// Range returns the half-open index range [start, end) to materialize for a
// viewport at scrollTop, padded by the overscan margin on both sides.
func (w *Window) Range(scrollTop, viewport int) (start, end int) {
	if w.count == 0 {
		return 0, 0
	}
	start = w.IndexAt(scrollTop) - w.overscan
	if start < 0 {
		start = 0
	}
	end = w.IndexAt(scrollTop+viewport) + 1 + w.overscan
	if end > w.count {
		end = w.count
	}
	return start, end
}

// NearBottom reports whether the remaining scroll distance is under the
// configured threshold.
func (w *Window) NearBottom(scrollTop, viewport int) bool {
	return w.total-scrollTop-viewport < w.threshold
}

// BottomOffset returns the scrollTop that pins the viewport to the end of
// the list.
func (w *Window) BottomOffset(viewport int) int {
	off := w.total - viewport
	if off < 0 {
		return 0
	}
	return off
}

// Follow decides whether a newly appended message should scroll the view to
// the bottom: always for the local user's own message, otherwise only when
// the reader was already near the bottom. A user reading history is never
// yanked down by background traffic.
func (w *Window) Follow(ownMessage, wasNearBottom bool) bool {
	return ownMessage || wasNearBottom
}
