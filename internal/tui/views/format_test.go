package views

import (
	"testing"
	"time"
)

func TestFormatChatTimeToday(t *testing.T) {
	now := time.Now()
	got := formatChatTime(now.UnixMilli())
	if got != now.Format("15:04") {
		t.Errorf("formatChatTime(today) = %q, want %q", got, now.Format("15:04"))
	}
}

func TestFormatChatTimeThisWeek(t *testing.T) {
	ts := time.Now().Add(-3 * 24 * time.Hour)
	got := formatChatTime(ts.UnixMilli())
	want := weekdaysShort[ts.Weekday()]
	if got != want {
		t.Errorf("formatChatTime(-3d) = %q, want %q", got, want)
	}
}

func TestFormatChatTimeOlder(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.Local)
	got := formatChatTime(ts.UnixMilli())
	if got != "5 мар" {
		t.Errorf("formatChatTime(old) = %q, want %q", got, "5 мар")
	}
}

func TestFormatChatTimeZero(t *testing.T) {
	if got := formatChatTime(0); got != "" {
		t.Errorf("formatChatTime(0) = %q, want empty", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in       string
		maxRunes int
		want     string
	}{
		{"short", 10, "short"},
		{"exactly-10", 10, "exactly-10"},
		{"a longer preview text", 10, "a longer …"},
		{"привет как дела", 8, "привет …"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.maxRunes); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.maxRunes, got, tt.want)
		}
	}
}

func TestSanitizeForTerminal(t *testing.T) {
	// Thumbs-up with skin tone collapses to the base emoji.
	in := "\U0001F44D\U0001F3FB ok️"
	got := sanitizeForTerminal(in)
	if got != "\U0001F44D ok" {
		t.Errorf("sanitizeForTerminal(%q) = %q, want %q", in, got, "\U0001F44D ok")
	}
}
