package flappy

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/sprite"
)

type pipeSkin struct {
	top, bottom         *sprite.Sprite
	topMask, bottomMask *sprite.Mask
}

// spriteSet is the catalog resolved once at construction.
type spriteSet struct {
	backgrounds [2]*sprite.Sprite // day, night
	base        *sprite.Sprite
	birds       map[assets.BirdColor][assets.FlapPhases]*sprite.Sprite
	pipes       map[assets.PipeColor]pipeSkin
	message     *sprite.Sprite
	gameOver    *sprite.Sprite
	digits      [10]*sprite.Sprite
}

func loadSprites(cat *assets.Catalog) (*spriteSet, error) {
	if cat == nil {
		return nil, errors.New("no sprite catalog")
	}

	var errs []error
	get := func(k assets.Key) *sprite.Sprite {
		s, err := cat.Lookup(k)
		if err != nil {
			errs = append(errs, err)
		}
		return s
	}

	set := &spriteSet{
		backgrounds: [2]*sprite.Sprite{get(assets.BackgroundDay), get(assets.BackgroundNight)},
		base:        get(assets.Base),
		birds:       make(map[assets.BirdColor][assets.FlapPhases]*sprite.Sprite),
		pipes:       make(map[assets.PipeColor]pipeSkin),
		message:     get(assets.Message),
		gameOver:    get(assets.GameOver),
	}
	for d := range set.digits {
		set.digits[d] = get(assets.Digit(d))
	}
	for _, c := range assets.BirdColors {
		var frames [assets.FlapPhases]*sprite.Sprite
		for phase := range frames {
			frames[phase] = get(assets.Bird(c, phase))
		}
		set.birds[c] = frames
	}
	for _, c := range assets.PipeColors {
		bottom := get(assets.Pipe(c))
		if bottom == nil {
			continue
		}
		top := bottom.FlipV()
		set.pipes[c] = pipeSkin{top: top, bottom: bottom, topMask: top.Mask(), bottomMask: bottom.Mask()}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if err := set.check(); err != nil {
		return nil, err
	}
	return set, nil
}

// check enforces the size agreements the simulation relies on.
func (s *spriteSet) check() error {
	day, night := s.backgrounds[0], s.backgrounds[1]
	if day.Width() != night.Width() || day.Height() != night.Height() {
		return fmt.Errorf("backgrounds differ in size")
	}
	if s.base.Width() < day.Width() {
		return fmt.Errorf("base is narrower than the background")
	}

	ref := s.birds[assets.BirdYellow][0]
	for c, frames := range s.birds {
		for phase, f := range frames {
			if f.Width() != ref.Width() || f.Height() != ref.Height() {
				return fmt.Errorf("%s bird frame %d differs in size", c, phase)
			}
		}
	}

	green, red := s.pipes[assets.PipeGreen].bottom, s.pipes[assets.PipeRed].bottom
	if green.Width() != red.Width() || green.Height() != red.Height() {
		return fmt.Errorf("pipe skins differ in size")
	}
	return nil
}
