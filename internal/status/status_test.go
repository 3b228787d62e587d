package status

import "testing"

func TestRankOrdering(t *testing.T) {
	order := []Status{Sending, Sent, Delivered, Read}
	for i := 1; i < len(order); i++ {
		if order[i].Rank() <= order[i-1].Rank() {
			t.Errorf("Rank(%s) = %d, want > Rank(%s) = %d",
				order[i], order[i].Rank(), order[i-1], order[i-1].Rank())
		}
	}
}

func TestAtLeast(t *testing.T) {
	tests := []struct {
		s     Status
		other Status
		want  bool
	}{
		{Read, Delivered, true},
		{Read, Read, true},
		{Sent, Delivered, false},
		{Delivered, Sending, true},
		{Status("bogus"), Sending, false},
	}
	for _, tt := range tests {
		if got := tt.s.AtLeast(tt.other); got != tt.want {
			t.Errorf("%s.AtLeast(%s) = %v, want %v", tt.s, tt.other, got, tt.want)
		}
	}
}

func TestValid(t *testing.T) {
	for _, s := range []Status{Sending, Sent, Delivered, Read} {
		if !s.Valid() {
			t.Errorf("Valid(%s) = false", s)
		}
	}
	if Status("received").Valid() {
		t.Error("Valid(received) = true, want false")
	}
}

func TestUnknownStatusIcon(t *testing.T) {
	if icon := Status("bogus").Icon(); icon != "" {
		t.Errorf("Icon() = %q, want empty for unknown status", icon)
	}
}
