package views

import (
	"strings"
	"time"
	"unicode/utf8"
)

var weekdaysShort = [...]string{"вс", "пн", "вт", "ср", "чт", "пт", "сб"}

var monthsShort = [...]string{
	"янв", "фев", "мар", "апр", "мая", "июн",
	"июл", "авг", "сен", "окт", "ноя", "дек",
}

// formatChatTime renders a chat-list timestamp: clock time for today, short
// weekday within the last week, day and month otherwise.
func formatChatTime(ms int64) string {
	if ms == 0 {
		return ""
	}
	t := time.UnixMilli(ms)
	now := time.Now()
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Format("15:04")
	}
	if now.Sub(t) < 7*24*time.Hour {
		return weekdaysShort[t.Weekday()]
	}
	return t.Format("2 ") + monthsShort[t.Month()-1]
}

// formatMessageTime renders the clock time shown next to a message.
func formatMessageTime(ms int64) string {
	return time.UnixMilli(ms).Format("15:04")
}

// truncate cuts s to at most maxRunes runes, appending an ellipsis when cut.
func truncate(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxRunes-1]) + "…"
}

// sanitizeForTerminal strips codepoints that break tcell rendering: skin
// tone modifiers, zero-width joiners, and variation selectors. Multi-
// codepoint emoji collapse to their base character, which draws correctly.
func sanitizeForTerminal(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !isProblematicRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isProblematicRune(r rune) bool {
	switch {
	case r >= 0x1F3FB && r <= 0x1F3FF: // skin tone modifiers
		return true
	case r == 0x200D: // zero width joiner
		return true
	case r >= 0xFE00 && r <= 0xFE0F: // variation selectors
		return true
	case r >= 0xE0100 && r <= 0xE01EF: // variation selectors supplement
		return true
	default:
		return false
	}
}
