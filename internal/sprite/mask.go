package sprite

// Mask is a per-pixel opacity bitmap used for precise collision tests.
type Mask struct {
	w, h int
	bits []bool
}

// NewMask creates an empty mask.
func NewMask(w, h int) *Mask {
	w, h = max(w, 0), max(h, 0)
	return &Mask{w: w, h: h, bits: make([]bool, w*h)}
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.w }

// Height returns the mask height.
func (m *Mask) Height() int { return m.h }

// Set marks a pixel. Out-of-bounds coordinates are ignored.
func (m *Mask) Set(x, y int, solid bool) {
	if x < 0 || x >= m.w || y < 0 || y >= m.h {
		return
	}
	m.bits[y*m.w+x] = solid
}

// At reports whether a pixel is solid; false out of bounds.
func (m *Mask) At(x, y int) bool {
	if x < 0 || x >= m.w || y < 0 || y >= m.h {
		return false
	}
	return m.bits[y*m.w+x]
}

// Count returns the number of solid pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// Overlap reports whether any solid pixel of m coincides with a solid pixel
// of other when other's origin is placed at (dx, dy) in m's coordinates.
func (m *Mask) Overlap(other *Mask, dx, dy int) bool {
	x0, x1 := max(0, dx), min(m.w, dx+other.w)
	y0, y1 := max(0, dy), min(m.h, dy+other.h)
	for y := y0; y < y1; y++ {
		row := m.bits[y*m.w : (y+1)*m.w]
		orow := other.bits[(y-dy)*other.w : (y-dy+1)*other.w]
		for x := x0; x < x1; x++ {
			if row[x] && orow[x-dx] {
				return true
			}
		}
	}
	return false
}
