package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

func testApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	a := &app{
		logger: log.New(&buf),
		prefs:  storage.NewPrefs(nil),
		scores: make(map[string]storage.HighScoreStore),
	}
	a.logger.SetLevel(log.DebugLevel)
	return a, &buf
}

func TestHighScoresShareFiles(t *testing.T) {
	a, _ := testApp(t)
	path := filepath.Join(t.TempDir(), "hs.txt")
	persist := config.HighScoreConfig{Persist: true, File: path}

	classic := a.highScores(config.VariantClassic, persist)
	smooth := a.highScores(config.VariantSmooth, persist)
	if classic != smooth {
		t.Error("variants writing the same file should share a store")
	}

	retro := a.highScores(config.VariantRetro, config.HighScoreConfig{})
	if retro == classic {
		t.Error("in-memory variant should get its own store")
	}

	if err := classic.Save(12); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "12" {
		t.Errorf("file = %q, %v", data, err)
	}
	if retro.Load() != 0 {
		t.Error("in-memory store should not see the file")
	}
}

func TestLoggedScoresReportsCorruptFile(t *testing.T) {
	a, buf := testApp(t)
	path := filepath.Join(t.TempDir(), "hs.txt")
	os.WriteFile(path, []byte("twelve"), 0o644)

	s := a.highScores(config.VariantClassic, config.HighScoreConfig{Persist: true, File: path})
	if got := s.Load(); got != 0 {
		t.Errorf("Load() = %d, expected 0", got)
	}
	if !strings.Contains(buf.String(), "unreadable") {
		t.Errorf("log = %q, expected a warning", buf.String())
	}

	buf.Reset()
	missing := a.highScores(config.VariantSmooth, config.HighScoreConfig{Persist: true, File: filepath.Join(t.TempDir(), "none.txt")})
	missing.Load()
	if strings.Contains(buf.String(), "unreadable") {
		t.Error("a missing file is not worth a warning")
	}
}

func TestLauncherAppliesPreset(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	a, _ := testApp(t)

	launch, err := a.launcher("")(config.VariantRetro, config.DifficultyFixed)
	if err != nil {
		t.Fatalf("launch failed: %v", err)
	}
	if launch.Game.ID() != config.VariantRetro {
		t.Errorf("ID() = %q", launch.Game.ID())
	}
	if launch.MaxFrameTime <= 0 {
		t.Errorf("MaxFrameTime = %v, expected the variant's clamp", launch.MaxFrameTime)
	}

	if _, err := a.launcher(filepath.Join(t.TempDir(), "missing.yaml"))(config.VariantClassic, config.DifficultyNormal); err == nil {
		t.Error("expected error for a missing custom config")
	}
}

func TestResolvePreset(t *testing.T) {
	tests := []struct {
		flag, saved string
		want        config.DifficultyPreset
		wantErr     bool
	}{
		{"", "", config.DifficultyNormal, false},
		{"", "hard", config.DifficultyHard, false},
		{"", "garbage", config.DifficultyNormal, false},
		{"easy", "hard", config.DifficultyEasy, false},
		{"insane", "", "", true},
	}
	for _, tt := range tests {
		got, err := resolvePreset(tt.flag, tt.saved)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("resolvePreset(%q, %q) = %q, %v", tt.flag, tt.saved, got, err)
		}
	}
}

func TestCheckVariant(t *testing.T) {
	if err := checkVariant(config.VariantClassic); err != nil {
		t.Errorf("classic should exist: %v", err)
	}
	if err := checkVariant("pong"); err == nil {
		t.Error("expected error for unknown variant")
	}
}
