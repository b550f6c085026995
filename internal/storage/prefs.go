package storage

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName is the gdata application name; it picks the per-user data directory.
const AppName = "tui_flappy"

const (
	prefsObject   = "settings"
	prefsProperty = "player"
)

// Preferences are player choices remembered between runs.
type Preferences struct {
	Variant    string `yaml:"variant"`
	Difficulty string `yaml:"difficulty"`
	Muted      bool   `yaml:"muted"`
}

// Prefs loads and saves Preferences through gdata.
// A Prefs without a manager keeps values in memory only.
type Prefs struct {
	manager *gdata.Manager
	current Preferences
}

// OpenPrefs opens the user's preference data. On failure it returns a
// memory-only Prefs together with the error, so callers can keep going.
func OpenPrefs(appName string) (*Prefs, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return NewPrefs(nil), fmt.Errorf("storage: open preferences: %w", err)
	}
	p := NewPrefs(m)
	return p, p.Load()
}

// NewPrefs wraps a gdata manager, which may be nil.
func NewPrefs(m *gdata.Manager) *Prefs {
	return &Prefs{manager: m}
}

// Persistent reports whether preferences survive the process.
func (p *Prefs) Persistent() bool { return p.manager != nil }

// Get returns the current preferences.
func (p *Prefs) Get() Preferences { return p.current }

// Load reads saved preferences. Missing data leaves the zero value.
func (p *Prefs) Load() error {
	if p.manager == nil || !p.manager.ObjectPropExists(prefsObject, prefsProperty) {
		return nil
	}

	data, err := p.manager.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return fmt.Errorf("storage: load preferences: %w", err)
	}
	var loaded Preferences
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("storage: decode preferences: %w", err)
	}
	p.current = loaded
	return nil
}

// Update applies fn to the preferences and saves them.
func (p *Prefs) Update(fn func(*Preferences)) error {
	fn(&p.current)
	return p.save()
}

func (p *Prefs) save() error {
	if p.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(p.current)
	if err != nil {
		return fmt.Errorf("storage: encode preferences: %w", err)
	}
	if err := p.manager.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("storage: save preferences: %w", err)
	}
	return nil
}
