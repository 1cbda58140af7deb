// Package color provides the ANSI and hex colours used by the CLI and TUI.
package color

import "github.com/charmbracelet/lipgloss"

// New initializes a lipgloss.Color from a string value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// Standard ANSI palette.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")
)

// High-intensity ANSI palette.
var (
	HiRed    = New("9")
	HiBlue   = New("12")
	HiPurple = New("13")
)

var (
	Orange = New("#ffb703")
	Gray   = New("#808080")
)
