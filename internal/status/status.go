package status

// Status is the delivery state of a message.
type Status string

const (
	Sending   Status = "sending"
	Sent      Status = "sent"
	Delivered Status = "delivered"
	Read      Status = "read"
)

// rank orders statuses along the normal delivery progression.
var rank = map[Status]int{
	Sending:   0,
	Sent:      1,
	Delivered: 2,
	Read:      3,
}

// Valid reports whether s is one of the known delivery states.
func (s Status) Valid() bool {
	_, ok := rank[s]
	return ok
}

// Rank returns the position of s in the delivery progression, or -1 for an
// unknown status.
func (s Status) Rank() int {
	r, ok := rank[s]
	if !ok {
		return -1
	}
	return r
}

// AtLeast reports whether s has progressed at least as far as other.
// Unknown statuses compare below everything.
func (s Status) AtLeast(other Status) bool {
	return s.Rank() >= other.Rank()
}

// Icon returns the tview-tagged indicator shown next to own messages.
func (s Status) Icon() string {
	switch s {
	case Sending:
		return "[::d]⌛[-:-:-]"
	case Sent:
		return "[::d]✓[-:-:-]"
	case Delivered:
		return "[::d]✓✓[-:-:-]"
	case Read:
		return "[blue]✓✓[-]"
	default:
		return ""
	}
}
