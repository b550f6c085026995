package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// SoundManager mixes cues onto the system speaker.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	samples     map[Cue]*beep.Buffer
	initialized bool
	muted       bool
}

// NewSoundManager creates a sound manager. Nothing plays until Initialize.
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:   &beep.Mixer{},
		samples: make(map[Cue]*beep.Buffer),
	}
}

// NewPlayer opens the speaker and loads optional cue files from dir.
// It always returns a usable Player; the error explains why audio is silent
// or why some files were skipped.
func NewPlayer(dir string) (Player, error) {
	sm := NewSoundManager()
	if err := sm.Initialize(); err != nil {
		return &Nop{}, fmt.Errorf("audio: speaker unavailable: %w", err)
	}
	if dir != "" {
		if err := sm.LoadSamples(dir); err != nil {
			return sm, err
		}
	}
	return sm, nil
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*50)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// LoadSamples replaces synthesized cues with <dir>/<cue>.wav where present.
// Missing files are not an error; unreadable ones are reported together.
func (sm *SoundManager) LoadSamples(dir string) error {
	var errs []error
	for _, c := range Cues() {
		buf, err := loadWAV(filepath.Join(dir, string(c)+".wav"))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sm.mu.Lock()
		sm.samples[c] = buf
		sm.mu.Unlock()
	}
	return errors.Join(errs...)
}

// loadWAV decodes a file into memory at the mixer's sample rate.
func loadWAV(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("audio: decode %s: %w", path, err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		s = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(s)
	return buf, nil
}

// streamer returns a fresh stream for the cue.
func (sm *SoundManager) streamer(c Cue) beep.Streamer {
	if buf, ok := sm.samples[c]; ok {
		return buf.Streamer(0, buf.Len())
	}
	return synthesize(c, sampleRate)
}

// Play starts a cue. It is a no-op before Initialize or while muted.
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	s := sm.streamer(c)
	if s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// SetMuted silences future cues and drops the ones playing.
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.muted = muted
	if muted && sm.initialized {
		speaker.Lock()
		sm.mixer.Clear()
		speaker.Unlock()
	}
}

// Muted reports the mute state.
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Close stops all sounds and releases the speaker.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}
