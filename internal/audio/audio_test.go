package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// drain counts the samples of a finite stream.
func drain(t *testing.T, s beep.Streamer) (n int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for i := 0; i < 10000; i++ {
		k, ok := s.Stream(buf)
		for _, smp := range buf[:k] {
			peak = max(peak, smp[0], -smp[0])
		}
		n += k
		if !ok {
			return n, peak
		}
	}
	t.Fatal("stream did not end")
	return 0, 0
}

func TestSynthesizeAllCues(t *testing.T) {
	for _, c := range Cues() {
		s := synthesize(c, sampleRate)
		if s == nil {
			t.Errorf("no sound for %s", c)
			continue
		}
		n, peak := drain(t, s)
		if n == 0 {
			t.Errorf("%s produced no samples", c)
		}
		if n > sampleRate.N(time.Second) {
			t.Errorf("%s lasts %d samples, expected under a second", c, n)
		}
		if peak == 0 || peak > 1 {
			t.Errorf("%s peak %f out of (0, 1]", c, peak)
		}
	}
	if synthesize("quack", sampleRate) != nil {
		t.Error("unknown cue should have no sound")
	}
}

func TestEnvelopeShape(t *testing.T) {
	d := 100 * time.Millisecond
	s := NewEnvelope(NewOscillator(0, d, WaveSquare, sampleRate), d, 10*time.Millisecond, 10*time.Millisecond, sampleRate)
	buf := make([][2]float64, sampleRate.N(d))
	n, _ := s.Stream(buf)
	if n != len(buf) {
		t.Fatalf("streamed %d of %d samples", n, len(buf))
	}
	if buf[0][0] != 0 {
		t.Errorf("attack should start silent, got %f", buf[0][0])
	}
	if mid := buf[n/2][0]; mid != 1 {
		t.Errorf("sustain should be full volume, got %f", mid)
	}
	if last := buf[n-1][0]; last <= 0 || last > 0.01 {
		t.Errorf("release should fade out, got %f", last)
	}
}

func TestCueFor(t *testing.T) {
	tests := []struct {
		event core.Event
		want  Cue
	}{
		{core.EventWing, CueWing},
		{core.EventPoint, CuePoint},
		{core.EventDie, CueDie},
		{core.EventHit, CueHit},
		{core.EventSwoosh, CueSwoosh},
	}
	for _, tt := range tests {
		got, ok := CueFor(tt.event)
		if !ok || got != tt.want {
			t.Errorf("CueFor(%s) = %s, %v", tt.event, got, ok)
		}
	}
	if _, ok := CueFor("unknown"); ok {
		t.Error("unknown event should not map to a cue")
	}
}

type recorder struct {
	Nop
	played []Cue
}

func (r *recorder) Play(c Cue) { r.played = append(r.played, c) }

func TestPlayEvents(t *testing.T) {
	r := &recorder{}
	PlayEvents(r, []core.Event{core.EventHit, "unknown", core.EventPoint, core.EventPoint})
	if len(r.played) != 3 || r.played[0] != CueHit || r.played[2] != CuePoint {
		t.Errorf("played %v", r.played)
	}
}

func TestUninitializedManagerIsSilent(t *testing.T) {
	sm := NewSoundManager()
	sm.Play(CueWing) // must not panic or block
	sm.SetMuted(true)
	if !sm.Muted() {
		t.Error("mute state not kept")
	}
	sm.Close()
}

func TestNopPlayer(t *testing.T) {
	var p Player = &Nop{}
	p.Play(CueDie)
	p.SetMuted(true)
	if !p.Muted() {
		t.Error("Nop should remember mute state")
	}
	p.Close()
}

func writeWAV(t *testing.T, path string, rate beep.SampleRate) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, NewOscillator(440, 50*time.Millisecond, WaveSine, rate), format); err != nil {
		t.Fatal(err)
	}
}

func TestLoadSamples(t *testing.T) {
	dir := t.TempDir()
	writeWAV(t, filepath.Join(dir, "point.wav"), sampleRate)
	writeWAV(t, filepath.Join(dir, "wing.wav"), 22050)

	sm := NewSoundManager()
	if err := sm.LoadSamples(dir); err != nil {
		t.Fatalf("LoadSamples: %v", err)
	}
	if sm.samples[CuePoint] == nil || sm.samples[CueWing] == nil {
		t.Error("expected wav cues to be loaded")
	}
	if _, ok := sm.samples[CueDie]; ok {
		t.Error("missing files should fall back to synthesis")
	}

	n, _ := drain(t, sm.streamer(CueWing))
	if want := sampleRate.N(50 * time.Millisecond); n < want-10 || n > want+10 {
		t.Errorf("resampled wing has %d samples, expected about %d", n, want)
	}
}

func TestLoadSamplesReportsBadFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hit.wav"), []byte("not a wav"), 0o644); err != nil {
		t.Fatal(err)
	}
	sm := NewSoundManager()
	if err := sm.LoadSamples(dir); err == nil {
		t.Error("expected decode error")
	}
	if _, ok := sm.samples[CueHit]; ok {
		t.Error("bad file should not be loaded")
	}
}
