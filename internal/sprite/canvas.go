package sprite

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// HalfBlock is the rune used to pack two vertical pixels into one cell:
// the foreground paints the upper pixel and the background the lower one.
const HalfBlock = '▀'

// Canvas is an RGBA pixel buffer. Two pixel rows map to one screen row.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas creates a transparent canvas.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.img.Rect.Dx() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.img.Rect.Dy() }

// Fill paints every pixel with col.
func (c *Canvas) Fill(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// Draw composites the sprite with its top-left corner at (x, y).
// Pixels outside the canvas are clipped.
func (c *Canvas) Draw(s *Sprite, x, y int) {
	r := image.Rect(x, y, x+s.Width(), y+s.Height())
	draw.Draw(c.img, r, s.img, image.Point{}, draw.Over)
}

// DrawCentered composites the sprite with its center at (cx, cy).
func (c *Canvas) DrawCentered(s *Sprite, cx, cy int) {
	c.Draw(s, cx-s.Width()/2, cy-s.Height()/2)
}

// At returns the color at (x, y).
func (c *Canvas) At(x, y int) color.RGBA {
	return c.img.RGBAAt(x, y)
}

// Project writes the canvas onto dst with its top-left at cell (col, row).
// Each cell shows two stacked pixels; a missing lower pixel on an odd-height
// canvas leaves the terminal background.
func (c *Canvas) Project(dst *core.Screen, col, row int) {
	w, h := c.Width(), c.Height()
	for py := 0; py < h; py += 2 {
		for px := 0; px < w; px++ {
			cell := core.Cell{Rune: HalfBlock, Fg: toCore(c.img.RGBAAt(px, py))}
			if py+1 < h {
				cell.Bg = toCore(c.img.RGBAAt(px, py+1))
			}
			dst.SetCell(col+px, row+py/2, cell)
		}
	}
}

func toCore(c color.RGBA) core.Color {
	if c.A == 0 {
		return core.ColorDefault
	}
	return core.RGB(c.R, c.G, c.B)
}
