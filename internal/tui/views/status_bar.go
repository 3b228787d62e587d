package views

import (
	"fmt"
	"time"

	"github.com/rivo/tview"
)

// StatusBar displays the connection name, loading indicators, and the last
// store error.
type StatusBar struct {
	*tview.TextView
	user    string
	loading bool
	errText string
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(tview.Styles.MoreContrastBackgroundColor)

	return &StatusBar{TextView: tv}
}

// SetUser updates the local user display.
func (sb *StatusBar) SetUser(name string) {
	sb.user = name
	sb.render()
}

// SetLoading updates the loading indicator.
func (sb *StatusBar) SetLoading(loading bool) {
	sb.loading = loading
	sb.render()
}

// SetError shows the last error, or clears it when empty.
func (sb *StatusBar) SetError(text string) {
	sb.errText = text
	sb.render()
}

func (sb *StatusBar) render() {
	sb.Clear()

	loadIcon := " "
	if sb.loading {
		loadIcon = "[green]~[-]"
	}

	clock := time.Now().Format("15:04")

	line := fmt.Sprintf(" [::b]%s[-:-:-] %s | %s | q выход, i ввод, Tab фокус", sb.user, loadIcon, clock)
	if sb.errText != "" {
		line += fmt.Sprintf(" | [red]%s[-]", tview.Escape(sb.errText))
	}

	_, _ = fmt.Fprint(sb, line)
}
