// Package sprite holds small pixel images, their opacity masks, and a pixel
// canvas that projects onto a terminal screen using half-block cells.
package sprite

import (
	"fmt"
	"image"
	"image/color"
)

// AlphaThreshold is the minimum alpha at which a pixel counts as solid.
const AlphaThreshold = 128

// Palette maps the characters of a pixel-art row to colors.
// Characters that are absent from the palette are rejected by Parse.
type Palette map[rune]color.NRGBA

// Sprite is an immutable pixel image.
type Sprite struct {
	img *image.NRGBA
}

// FromImage copies any image into a sprite anchored at (0, 0).
func FromImage(src image.Image) *Sprite {
	b := src.Bounds()
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			img.Set(x, y, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return &Sprite{img: img}
}

// Parse builds a sprite from equal-length rows of palette characters.
func Parse(rows []string, palette Palette) (*Sprite, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("sprite: no rows")
	}
	width := len([]rune(rows[0]))
	if width == 0 {
		return nil, fmt.Errorf("sprite: empty row")
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, len(rows)))
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("sprite: row %d has width %d, expected %d", y, len(runes), width)
		}
		for x, r := range runes {
			c, ok := palette[r]
			if !ok {
				return nil, fmt.Errorf("sprite: row %d col %d: unknown palette key %q", y, x, r)
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return &Sprite{img: img}, nil
}

// Width returns the sprite width in pixels.
func (s *Sprite) Width() int { return s.img.Rect.Dx() }

// Height returns the sprite height in pixels.
func (s *Sprite) Height() int { return s.img.Rect.Dy() }

// Image exposes the pixels for drawing. Callers must not modify it.
func (s *Sprite) Image() *image.NRGBA { return s.img }

// At returns the pixel color, transparent when out of bounds.
func (s *Sprite) At(x, y int) color.NRGBA {
	if !(image.Point{x, y}.In(s.img.Rect)) {
		return color.NRGBA{}
	}
	return s.img.NRGBAAt(x, y)
}

// Solid reports whether the pixel is opaque enough to collide.
func (s *Sprite) Solid(x, y int) bool {
	return s.At(x, y).A >= AlphaThreshold
}

// FlipV returns a vertically mirrored copy.
func (s *Sprite) FlipV() *Sprite {
	w, h := s.Width(), s.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+w*4], s.img.Pix[(h-1-y)*s.img.Stride:(h-1-y)*s.img.Stride+w*4])
	}
	return &Sprite{img: img}
}

// Mask returns the opacity mask of the sprite.
func (s *Sprite) Mask() *Mask {
	m := NewMask(s.Width(), s.Height())
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			m.Set(x, y, s.Solid(x, y))
		}
	}
	return m
}
