package sprite

import (
	"image/color"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
)

func testPalette() Palette {
	return Palette{'.': {}, 'r': red, 'b': blue, 'g': green}
}

func mustParse(t *testing.T, rows ...string) *Sprite {
	t.Helper()
	s, err := Parse(rows, testPalette())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return s
}

func TestParse(t *testing.T) {
	s := mustParse(t, "r.b", ".g.")
	if s.Width() != 3 || s.Height() != 2 {
		t.Fatalf("size = %dx%d, expected 3x2", s.Width(), s.Height())
	}
	if s.At(0, 0) != red || s.At(2, 0) != blue || s.At(1, 1) != green {
		t.Error("pixels not parsed in row-major order")
	}
	if s.Solid(1, 0) {
		t.Error("'.' should be transparent")
	}
	if s.Solid(-1, 0) || s.Solid(3, 1) {
		t.Error("out of bounds should not be solid")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"no rows", nil},
		{"empty row", []string{""}},
		{"ragged", []string{"rr", "r"}},
		{"unknown key", []string{"rx"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.rows, testPalette()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFlipV(t *testing.T) {
	s := mustParse(t, "r", "g", "b")
	f := s.FlipV()
	if f.At(0, 0) != blue || f.At(0, 1) != green || f.At(0, 2) != red {
		t.Error("FlipV did not mirror rows")
	}
	if s.At(0, 0) != red {
		t.Error("FlipV modified the original")
	}
}

func TestMask(t *testing.T) {
	m := mustParse(t, "r.", ".b").Mask()
	if !m.At(0, 0) || m.At(1, 0) || m.At(0, 1) || !m.At(1, 1) {
		t.Error("mask does not follow alpha")
	}
	if m.Count() != 2 {
		t.Errorf("Count() = %d, expected 2", m.Count())
	}
}

func TestMaskOverlap(t *testing.T) {
	a := mustParse(t, "rr", "rr").Mask()
	b := mustParse(t, "r.", "..").Mask()

	tests := []struct {
		dx, dy int
		want   bool
	}{
		{0, 0, true},
		{1, 1, true},
		{2, 0, false},
		{-1, 0, false},
		{0, -1, false},
		{0, 2, false},
	}
	for _, tt := range tests {
		if got := a.Overlap(b, tt.dx, tt.dy); got != tt.want {
			t.Errorf("Overlap(dx=%d, dy=%d) = %v, expected %v", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func bruteOverlap(a, b *Mask, dx, dy int) bool {
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			if a.At(x, y) && b.At(x-dx, y-dy) {
				return true
			}
		}
	}
	return false
}

func TestMaskOverlapMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	random := func(w, h int) *Mask {
		m := NewMask(w, h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				m.Set(x, y, rng.Intn(4) == 0)
			}
		}
		return m
	}

	for i := 0; i < 200; i++ {
		a := random(1+rng.Intn(8), 1+rng.Intn(8))
		b := random(1+rng.Intn(8), 1+rng.Intn(8))
		dx, dy := rng.Intn(20)-10, rng.Intn(20)-10
		if got, want := a.Overlap(b, dx, dy), bruteOverlap(a, b, dx, dy); got != want {
			t.Fatalf("case %d: Overlap(%d,%d) = %v, brute force %v", i, dx, dy, got, want)
		}
	}
}

func TestRotateZero(t *testing.T) {
	s := mustParse(t, "rgb")
	if s.Rotate(0) != s || s.Rotate(360) != s {
		t.Error("full turns should return the sprite unchanged")
	}
}

func TestRotateQuarterTurn(t *testing.T) {
	s := mustParse(t, "rgb")

	up := s.Rotate(90)
	if up.Width() != 1 || up.Height() != 3 {
		t.Fatalf("size after 90° = %dx%d, expected 1x3", up.Width(), up.Height())
	}
	// Counter-clockwise: the right end points up.
	if up.At(0, 0) != blue || up.At(0, 1) != green || up.At(0, 2) != red {
		t.Errorf("unexpected pixels after 90°: %v %v %v", up.At(0, 0), up.At(0, 1), up.At(0, 2))
	}

	down := s.Rotate(-90)
	if down.At(0, 0) != red || down.At(0, 2) != blue {
		t.Error("clockwise turn should point the right end down")
	}
}

func TestRotateKeepsSolidPixels(t *testing.T) {
	s := mustParse(t,
		".rrr.",
		"rrrrr",
		".rrr.",
	)
	r := s.Rotate(25)
	if r.Width() < s.Width() || r.Height() < s.Height() {
		t.Errorf("rotated box %dx%d smaller than source", r.Width(), r.Height())
	}
	if r.Mask().Count() == 0 {
		t.Error("rotation lost all pixels")
	}
}

func TestCanvasProject(t *testing.T) {
	c := NewCanvas(2, 4)
	c.Fill(color.RGBA{B: 200, A: 255})
	c.Draw(mustParse(t, "r", "g"), 1, 1)

	scr := core.NewScreen(2, 2)
	c.Project(scr, 0, 0)

	cell := scr.GetCell(1, 0)
	if cell.Rune != HalfBlock {
		t.Fatalf("rune = %q, expected half block", cell.Rune)
	}
	if cell.Fg != core.RGB(0, 0, 200) || cell.Bg != core.RGB(255, 0, 0) {
		t.Errorf("cell (1,0) fg=%v bg=%v", cell.Fg, cell.Bg)
	}
	cell = scr.GetCell(1, 1)
	if cell.Fg != core.RGB(0, 255, 0) || cell.Bg != core.RGB(0, 0, 200) {
		t.Errorf("cell (1,1) fg=%v bg=%v", cell.Fg, cell.Bg)
	}
}

func TestCanvasClipsAndKeepsTransparency(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Draw(mustParse(t, "rr", "rr"), 1, 1) // three pixels off canvas
	if c.At(1, 1).A == 0 {
		t.Error("visible part should be drawn")
	}
	if c.At(0, 0).A != 0 {
		t.Error("untouched pixel should stay transparent")
	}

	scr := core.NewScreen(2, 1)
	c.Project(scr, 0, 0)
	if scr.GetCell(0, 0).Fg.Set {
		t.Error("transparent pixel should map to the default color")
	}
}

func TestCanvasDrawCentered(t *testing.T) {
	c := NewCanvas(5, 5)
	c.DrawCentered(mustParse(t, "r"), 2, 2)
	if c.At(2, 2).R != 255 {
		t.Error("sprite not centered")
	}
}
