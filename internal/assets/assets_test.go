package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultCatalogComplete(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	for _, k := range Keys() {
		if _, err := cat.Lookup(k); err != nil {
			t.Errorf("Lookup(%s): %v", k, err)
		}
	}
}

func TestDefaultCatalogGeometry(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	day, _ := cat.Lookup(BackgroundDay)
	night, _ := cat.Lookup(BackgroundNight)
	base, _ := cat.Lookup(Base)
	pipe, _ := cat.Lookup(Pipe(PipeGreen))

	if day.Width() != night.Width() || day.Height() != night.Height() {
		t.Error("backgrounds must share a size")
	}
	if base.Width() <= day.Width() {
		t.Errorf("base width %d must exceed playfield width %d to scroll", base.Width(), day.Width())
	}
	if groundY := day.Height() - base.Height(); pipe.Height() < groundY {
		t.Errorf("pipe height %d shorter than ground line %d", pipe.Height(), groundY)
	}

	first, _ := cat.Lookup(Bird(BirdYellow, 0))
	for _, c := range BirdColors {
		for p := 0; p < FlapPhases; p++ {
			s, _ := cat.Lookup(Bird(c, p))
			if s.Width() != first.Width() || s.Height() != first.Height() {
				t.Errorf("%s has a different size", Bird(c, p))
			}
		}
	}
}

func TestKeyNames(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{BackgroundDay, "background-day"},
		{Base, "base"},
		{Pipe(PipeRed), "pipe-red"},
		{Digit(0), "0"},
		{Digit(9), "9"},
		{Bird(BirdYellow, 0), "yellowbird-downflap"},
		{Bird(BirdBlue, 1), "bluebird-midflap"},
		{Bird(BirdRed, 2), "redbird-upflap"},
		{Key(999), "key(999)"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("Key(%d).String() = %q, expected %q", int(tt.key), got, tt.want)
		}
	}

	seen := map[string]bool{}
	for _, k := range Keys() {
		if seen[k.String()] {
			t.Errorf("duplicate key name %q", k)
		}
		seen[k.String()] = true
	}
}

func TestParseMissingKey(t *testing.T) {
	broken := strings.Replace(string(defaultSheet), `"gameover":`, `"game-over":`, 1)
	_, err := Parse([]byte(broken))
	if err == nil || !strings.Contains(err.Error(), "gameover") {
		t.Errorf("expected missing gameover error, got %v", err)
	}
}

func TestParseBadPalette(t *testing.T) {
	tests := []string{
		"palette:\n  \"ab\": \"#000000\"\n",
		"palette:\n  \"a\": \"000000\"\n",
		"palette:\n  \"a\": \"#zzzzzz\"\n",
		"sprites: [",
	}
	for _, doc := range tests {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("expected error for %q", doc)
		}
	}
}

func TestParseHex(t *testing.T) {
	c, err := parseHex("#10203040")
	if err != nil || c.R != 0x10 || c.G != 0x20 || c.B != 0x30 || c.A != 0x40 {
		t.Errorf("parseHex with alpha = %v, %v", c, err)
	}
	c, err = parseHex("#ff8000")
	if err != nil || c.R != 0xff || c.G != 0x80 || c.B != 0 || c.A != 0xff {
		t.Errorf("parseHex = %v, %v", c, err)
	}
	c, _ = parseHex("")
	if c.A != 0 {
		t.Error("empty color should be transparent")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.yaml")
	if err := os.WriteFile(path, defaultSheet, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err != nil {
		t.Errorf("LoadFile: %v", err)
	}
	if _, err := LoadFile(path + ".missing"); err == nil {
		t.Error("expected error for missing file")
	}
}

func writePNG(t *testing.T, path string, w, h int, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoadPNGDirectory(t *testing.T) {
	dir := t.TempDir()
	red := color.NRGBA{R: 255, A: 255}
	for _, k := range Keys() {
		writePNG(t, filepath.Join(dir, k.String()+".png"), 3, 2, red)
	}

	cat, err := LoadFile(dir)
	if err != nil {
		t.Fatalf("LoadFile(dir): %v", err)
	}
	s, err := cat.Lookup(Bird(BirdBlue, 1))
	if err != nil {
		t.Fatal(err)
	}
	if s.Width() != 3 || s.Height() != 2 || s.At(2, 1) != red {
		t.Errorf("sprite = %dx%d %v", s.Width(), s.Height(), s.At(2, 1))
	}

	os.Remove(filepath.Join(dir, "gameover.png"))
	if _, err := LoadFile(dir); err == nil || !strings.Contains(err.Error(), "gameover.png") {
		t.Errorf("expected error naming the missing file, got %v", err)
	}

	os.WriteFile(filepath.Join(dir, "gameover.png"), []byte("not a png"), 0o644)
	if _, err := LoadFile(dir); err == nil {
		t.Error("expected decode error")
	}
}

func TestLookupUnknown(t *testing.T) {
	cat, _ := Default()
	if _, err := cat.Lookup(Key(999)); err == nil {
		t.Error("expected error for unknown key")
	}
}
