package render

import (
	"testing"

	"github.com/matheus3301/tchat/internal/config"
)

func testWindow() *Window {
	return New(config.RendererConfig{
		EstimatedRowHeight:  60,
		Overscan:            10,
		NearBottomThreshold: 100,
	})
}

func TestTotalSizeFromEstimate(t *testing.T) {
	w := testWindow()
	w.SetCount(5000)

	if got := w.TotalSize(); got != 5000*60 {
		t.Errorf("TotalSize() = %d, want %d", got, 5000*60)
	}
}

func TestMeasureCorrectsTotal(t *testing.T) {
	w := testWindow()
	w.SetCount(100)

	w.Measure(0, 90) // +30 over estimate
	w.Measure(1, 30) // -30 under estimate
	if got := w.TotalSize(); got != 100*60 {
		t.Errorf("TotalSize() = %d, want %d after offsetting corrections", got, 100*60)
	}

	// Re-measuring replaces, not accumulates.
	w.Measure(0, 60)
	if got := w.TotalSize(); got != 100*60-30 {
		t.Errorf("TotalSize() = %d, want %d after re-measure", got, 100*60-30)
	}
}

func TestOffsetOfAccountsForMeasurements(t *testing.T) {
	w := testWindow()
	w.SetCount(10)
	w.Measure(2, 100)

	if got := w.OffsetOf(2); got != 120 {
		t.Errorf("OffsetOf(2) = %d, want 120", got)
	}
	// Rows after the measured one shift down by the correction.
	if got := w.OffsetOf(3); got != 220 {
		t.Errorf("OffsetOf(3) = %d, want 220", got)
	}
}

func TestIndexAt(t *testing.T) {
	w := testWindow()
	w.SetCount(1000)

	tests := []struct {
		offset int
		want   int
	}{
		{0, 0},
		{-5, 0},
		{59, 0},
		{60, 1},
		{601, 10},
		{1000*60 + 500, 999}, // past the end clamps to the last row
	}
	for _, tt := range tests {
		if got := w.IndexAt(tt.offset); got != tt.want {
			t.Errorf("IndexAt(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}
}

func TestRangeCoversViewportPlusOverscan(t *testing.T) {
	w := testWindow()
	w.SetCount(5000)

	// Viewport of 600 units starting at row 100.
	start, end := w.Range(100*60, 600)
	if start != 90 {
		t.Errorf("start = %d, want 90 (row 100 minus overscan)", start)
	}
	// Rows 100..110 visible; +1 past the last visible, +10 overscan.
	if end != 121 {
		t.Errorf("end = %d, want 121", end)
	}
}

func TestRangeClampsAtEdges(t *testing.T) {
	w := testWindow()
	w.SetCount(20)

	start, end := w.Range(0, 600)
	if start != 0 {
		t.Errorf("start = %d, want 0", start)
	}
	if end != 20 {
		t.Errorf("end = %d, want 20 (clamped to count)", end)
	}

	w.SetCount(0)
	start, end = w.Range(0, 600)
	if start != 0 || end != 0 {
		t.Errorf("empty range = [%d,%d), want [0,0)", start, end)
	}
}

func TestNearBottom(t *testing.T) {
	w := testWindow()
	w.SetCount(100) // total 6000

	if !w.NearBottom(5500, 450) { // 50 remaining < 100
		t.Error("NearBottom() = false with 50 units remaining")
	}
	if w.NearBottom(5000, 450) { // 550 remaining
		t.Error("NearBottom() = true with 550 units remaining")
	}
}

func TestFollowPolicy(t *testing.T) {
	w := testWindow()

	tests := []struct {
		own, nearBottom, want bool
	}{
		{true, false, true},   // own message always follows
		{true, true, true},
		{false, true, true},   // reader already at the bottom follows
		{false, false, false}, // background message never yanks the reader
	}
	for _, tt := range tests {
		if got := w.Follow(tt.own, tt.nearBottom); got != tt.want {
			t.Errorf("Follow(own=%v, nearBottom=%v) = %v, want %v",
				tt.own, tt.nearBottom, got, tt.want)
		}
	}
}

func TestResetClearsState(t *testing.T) {
	w := testWindow()
	w.SetCount(100)
	w.Measure(5, 200)

	w.Reset()

	if w.Count() != 0 || w.TotalSize() != 0 {
		t.Errorf("after Reset: count=%d total=%d, want 0/0", w.Count(), w.TotalSize())
	}
	w.SetCount(10)
	if got := w.Height(5); got != 60 {
		t.Errorf("Height(5) = %d after Reset, want estimate 60", got)
	}
}

func TestBottomOffset(t *testing.T) {
	w := testWindow()
	w.SetCount(100)

	if got := w.BottomOffset(600); got != 6000-600 {
		t.Errorf("BottomOffset(600) = %d, want %d", got, 6000-600)
	}
	if got := w.BottomOffset(10000); got != 0 {
		t.Errorf("BottomOffset(10000) = %d, want 0 for short lists", got)
	}
}

func TestGrowingListKeepsMeasurements(t *testing.T) {
	w := testWindow()
	w.SetCount(10)
	w.Measure(3, 120)

	w.SetCount(11) // append

	if got := w.Height(3); got != 120 {
		t.Errorf("Height(3) = %d, want measurement kept on append", got)
	}
	if got := w.TotalSize(); got != 11*60+60 {
		t.Errorf("TotalSize() = %d, want %d", got, 11*60+60)
	}
}
