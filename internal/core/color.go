package core

import "fmt"

// Color represents a 24-bit foreground or background color for a screen cell.
// The zero value means "terminal default".
type Color struct {
	R, G, B uint8
	Set     bool
}

// RGB creates a concrete color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Set: true}
}

// ColorDefault leaves the terminal's own color in place.
var ColorDefault = Color{}

// Predefined colors for HUD text.
var (
	ColorWhite  = RGB(0xff, 0xff, 0xff)
	ColorBlack  = RGB(0x00, 0x00, 0x00)
	ColorYellow = RGB(0xfa, 0xd0, 0x2c)
	ColorRed    = RGB(0xe0, 0x40, 0x30)
	ColorGray   = RGB(0x8a, 0x8a, 0x8a)
)

// Hex returns the color as "#rrggbb", or "" for the default color.
func (c Color) Hex() string {
	if !c.Set {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
