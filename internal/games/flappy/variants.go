package flappy

import (
	"sync"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

var defaultCatalog = sync.OnceValues(assets.Default)

// factory builds a variant, filling missing options with the embedded defaults.
func factory(variant string) registry.Factory {
	return func(opts registry.Options) (registry.Game, error) {
		var cfg config.FlappyConfig
		if opts.Config != nil {
			cfg = *opts.Config
		} else {
			def, err := config.Default(variant)
			if err != nil {
				return nil, err
			}
			cfg = def
		}

		cat := opts.Assets
		if cat == nil {
			def, err := defaultCatalog()
			if err != nil {
				return nil, err
			}
			cat = def
		}

		g, err := New(variant, cfg, cat, opts.HighScores)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
}

// Register every variant with the registry.
func init() {
	for _, v := range config.Variants() {
		title := v
		if cfg, err := config.Default(v); err == nil && cfg.Title != "" {
			title = cfg.Title
		}
		registry.Register(v, title, factory(v))
	}
}
