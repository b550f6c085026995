package sprite

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Rotate returns the sprite turned by deg degrees about its center, positive
// counter-clockwise (nose up for a bird facing right). The result is sized to
// the rotated bounding box and keeps the same center, so callers position it
// with its center on the unrotated sprite's center.
func (s *Sprite) Rotate(deg float64) *Sprite {
	if math.Mod(deg, 360) == 0 {
		return s
	}

	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	w, h := float64(s.Width()), float64(s.Height())

	dw := ceilTrim(math.Abs(w*cos) + math.Abs(h*sin))
	dh := ceilTrim(math.Abs(w*sin) + math.Abs(h*cos))
	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))

	// Screen y grows downward, so a counter-clockwise turn maps
	// (x, y) -> (x·cos + y·sin, -x·sin + y·cos) around the centers.
	scx, scy := w/2, h/2
	dcx, dcy := float64(dw)/2, float64(dh)/2
	s2d := f64.Aff3{
		cos, sin, dcx - (cos*scx + sin*scy),
		-sin, cos, dcy - (-sin*scx + cos*scy),
	}
	draw.NearestNeighbor.Transform(dst, s2d, s.img, s.img.Bounds(), draw.Src, nil)
	return &Sprite{img: dst}
}

// ceilTrim rounds up, ignoring floating-point dust from sin/cos of right angles.
func ceilTrim(v float64) int {
	return max(int(math.Ceil(v-1e-9)), 1)
}
