package ui

import "github.com/gdamore/tcell/v2"

// Theme holds color constants for the TUI.
type Theme struct {
	BgColor          tcell.Color
	FgColor          tcell.Color
	BorderColor      tcell.Color
	BorderFocusColor tcell.Color
	TitleColor       tcell.Color
	TableCursorFg    tcell.Color
	TableCursorBg    tcell.Color
	OwnSenderColor   tcell.Color
	PeerSenderColor  tcell.Color
	ErrorColor       tcell.Color
	MutedColor       tcell.Color
}

// DefaultTheme returns the dark theme.
func DefaultTheme() *Theme {
	return &Theme{
		BgColor:          tcell.ColorBlack,
		FgColor:          tcell.ColorCadetBlue,
		BorderColor:      tcell.ColorDodgerBlue,
		BorderFocusColor: tcell.ColorLightSkyBlue,
		TitleColor:       tcell.ColorFuchsia,
		TableCursorFg:    tcell.ColorBlack,
		TableCursorBg:    tcell.ColorAqua,
		OwnSenderColor:   tcell.ColorPaleGreen,
		PeerSenderColor:  tcell.ColorLightSkyBlue,
		ErrorColor:       tcell.ColorOrangeRed,
		MutedColor:       tcell.ColorGray,
	}
}
