package core

// Color is a foreground color for a screen cell.
// The platform maps it to an ANSI 256 color.
type Color uint8

// Palette used by the garden and the overlay.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrown
	ColorOrange
	ColorGray
)
