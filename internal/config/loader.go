package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// Variant names with an embedded default configuration.
const (
	VariantClassic = "classic"
	VariantSmooth  = "smooth"
	VariantRetro   = "retro"
)

// Variants returns the names of all built-in variants.
func Variants() []string {
	return []string{VariantClassic, VariantSmooth, VariantRetro}
}

// IsVariant reports whether name is a built-in variant.
func IsVariant(name string) bool {
	return slices.Contains(Variants(), name)
}

// Default returns the embedded configuration for a variant.
func Default(variant string) (FlappyConfig, error) {
	data, err := GetDefaultYAML(variant)
	if err != nil {
		return FlappyConfig{}, err
	}
	return parse(data, "embedded "+variant)
}

// GetDefaultYAML returns the embedded default YAML for a variant.
func GetDefaultYAML(variant string) ([]byte, error) {
	if !IsVariant(variant) {
		return nil, fmt.Errorf("config: unknown variant %q", variant)
	}
	data, err := defaultsFS.ReadFile("defaults/" + variant + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("config: read embedded %s: %w", variant, err)
	}
	return data, nil
}

// Load loads the configuration of a variant.
// Search order: customPath -> ~/.flappy/configs/<variant>.yaml -> ./configs/<variant>.yaml -> embedded default.
// A custom path that cannot be read or parsed is an error; the other
// locations are skipped when unusable.
func Load(variant, customPath string) (FlappyConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return FlappyConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		return parse(data, customPath)
	}

	filename := variant + ".yaml"
	candidates := []string{filepath.Join("configs", filename)}
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		candidates = append([]string{userCfgPath}, candidates...)
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data, path); err == nil {
			return cfg, nil
		}
	}

	return Default(variant)
}

// parse decodes a YAML document on top of nothing and validates it.
func parse(data []byte, source string) (FlappyConfig, error) {
	var cfg FlappyConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", source, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flappy", "configs", filename)
}
