package config

// DifficultyManager calculates the current gap size from the score.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Every > 0
}

// Level returns how many shrink steps the score has earned.
func (d *DifficultyManager) Level(score int) int {
	if !d.IsEnabled() || score <= 0 {
		return 0
	}
	return score / d.cfg.Every
}

// GapSize returns the gap for the given score, never below the minimum.
func (d *DifficultyManager) GapSize(baseGap int, score int) int {
	if !d.IsEnabled() {
		return baseGap
	}
	return max(d.cfg.MinGap, baseGap-d.Level(score)*d.cfg.Step)
}
