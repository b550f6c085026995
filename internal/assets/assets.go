// Package assets resolves logical sprite keys to pixel images.
// The default catalog is an embedded YAML sprite sheet. A directory of PNG
// files named after the keys can replace it.
package assets

import (
	_ "embed"
	"fmt"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-flappy/internal/sprite"
)

//go:embed sprites.yaml
var defaultSheet []byte

// BirdColor selects one of the bird skins.
type BirdColor int

const (
	BirdYellow BirdColor = iota
	BirdBlue
	BirdRed
	birdColorCount
)

// BirdColors lists all skins in lookup order.
var BirdColors = []BirdColor{BirdYellow, BirdBlue, BirdRed}

func (c BirdColor) String() string {
	switch c {
	case BirdYellow:
		return "yellow"
	case BirdBlue:
		return "blue"
	case BirdRed:
		return "red"
	default:
		return "unknown"
	}
}

// PipeColor selects one of the pipe skins.
type PipeColor int

const (
	PipeGreen PipeColor = iota
	PipeRed
)

// PipeColors lists all pipe skins.
var PipeColors = []PipeColor{PipeGreen, PipeRed}

func (c PipeColor) String() string {
	if c == PipeRed {
		return "red"
	}
	return "green"
}

// FlapPhases is the number of wing animation frames per bird.
const FlapPhases = 3

// Key identifies one sprite in a catalog.
type Key int

const (
	BackgroundDay Key = iota
	BackgroundNight
	Base
	PipeGreenKey
	PipeRedKey
	Message
	GameOver
	digit0
	birdFirst = digit0 + 10
	keyCount  = birdFirst + Key(birdColorCount)*FlapPhases
)

// Bird returns the key of a bird frame. Phase 0 is wings down, 1 mid, 2 up.
func Bird(c BirdColor, phase int) Key {
	return birdFirst + Key(c)*FlapPhases + Key(phase)
}

// Pipe returns the key of a pipe skin.
func Pipe(c PipeColor) Key {
	if c == PipeRed {
		return PipeRedKey
	}
	return PipeGreenKey
}

// Digit returns the key of a score digit 0-9.
func Digit(d int) Key {
	return digit0 + Key(d)
}

// Keys lists every key a complete catalog must provide.
func Keys() []Key {
	keys := make([]Key, 0, keyCount)
	for k := Key(0); k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

var flapNames = [FlapPhases]string{"downflap", "midflap", "upflap"}

// String returns the sheet name of the key.
func (k Key) String() string {
	switch {
	case k == BackgroundDay:
		return "background-day"
	case k == BackgroundNight:
		return "background-night"
	case k == Base:
		return "base"
	case k == PipeGreenKey:
		return "pipe-green"
	case k == PipeRedKey:
		return "pipe-red"
	case k == Message:
		return "message"
	case k == GameOver:
		return "gameover"
	case k >= digit0 && k < digit0+10:
		return strconv.Itoa(int(k - digit0))
	case k >= birdFirst && k < keyCount:
		i := int(k - birdFirst)
		return BirdColor(i/FlapPhases).String() + "bird-" + flapNames[i%FlapPhases]
	default:
		return fmt.Sprintf("key(%d)", int(k))
	}
}

// Catalog is a complete, immutable set of sprites.
type Catalog struct {
	sprites map[Key]*sprite.Sprite
}

// Lookup returns the sprite for a key.
func (c *Catalog) Lookup(k Key) (*sprite.Sprite, error) {
	s, ok := c.sprites[k]
	if !ok {
		return nil, fmt.Errorf("assets: no sprite for %s", k)
	}
	return s, nil
}

// sheet is the YAML document layout.
type sheet struct {
	Palette map[string]string   `yaml:"palette"`
	Sprites map[string][]string `yaml:"sprites"`
}

// Default parses the embedded sprite sheet.
func Default() (*Catalog, error) {
	return Parse(defaultSheet)
}

// LoadFile parses a sprite sheet from disk. If path is a directory, each key
// is read from <path>/<key>.png instead.
func LoadFile(path string) (*Catalog, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return loadDir(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a sprite sheet and checks that every key is present.
func Parse(data []byte) (*Catalog, error) {
	var sh sheet
	if err := yaml.Unmarshal(data, &sh); err != nil {
		return nil, fmt.Errorf("assets: parse sheet: %w", err)
	}

	palette, err := parsePalette(sh.Palette)
	if err != nil {
		return nil, err
	}

	cat := &Catalog{sprites: make(map[Key]*sprite.Sprite, keyCount)}
	for _, k := range Keys() {
		rows, ok := sh.Sprites[k.String()]
		if !ok {
			return nil, fmt.Errorf("assets: sheet is missing %q", k.String())
		}
		s, err := sprite.Parse(rows, palette)
		if err != nil {
			return nil, fmt.Errorf("assets: %s: %w", k, err)
		}
		cat.sprites[k] = s
	}
	return cat, nil
}

func loadDir(dir string) (*Catalog, error) {
	cat := &Catalog{sprites: make(map[Key]*sprite.Sprite, keyCount)}
	for _, k := range Keys() {
		s, err := loadPNG(filepath.Join(dir, k.String()+".png"))
		if err != nil {
			return nil, err
		}
		cat.sprites[k] = s
	}
	return cat, nil
}

func loadPNG(path string) (*sprite.Sprite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return sprite.FromImage(img), nil
}

func parsePalette(raw map[string]string) (sprite.Palette, error) {
	p := make(sprite.Palette, len(raw))
	for key, value := range raw {
		runes := []rune(key)
		if len(runes) != 1 {
			return nil, fmt.Errorf("assets: palette key %q must be one character", key)
		}
		c, err := parseHex(value)
		if err != nil {
			return nil, fmt.Errorf("assets: palette %q: %w", key, err)
		}
		p[runes[0]] = c
	}
	return p, nil
}

// parseHex accepts "", "#rrggbb" or "#rrggbbaa". Empty is transparent.
func parseHex(s string) (color.NRGBA, error) {
	if s == "" {
		return color.NRGBA{}, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return color.NRGBA{}, fmt.Errorf("bad color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
