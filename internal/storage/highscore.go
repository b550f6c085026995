package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// DefaultHighScoreFile is the best-score file name, relative to the working directory.
const DefaultHighScoreFile = "highscore.txt"

// HighScoreStore loads and saves a single best score.
// Load never fails: missing or unreadable data is 0. Save is best-effort.
type HighScoreStore interface {
	Load() int
	Save(score int) error
}

// FileStore keeps the best score as a plain integer in a text file.
// Safe for concurrent use.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store for the file at path. ~ is expanded.
func NewFileStore(path string) *FileStore {
	if expanded, err := ExpandPath(path); err == nil {
		path = expanded
	}
	return &FileStore{path: path}
}

// Read returns the stored score or the reason it could not be read.
// A missing file reads as 0 with an error wrapping fs.ErrNotExist.
func (f *FileStore) Read() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

func (f *FileStore) read() (int, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return 0, fmt.Errorf("storage: read high score: %w", err)
	}
	score, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("storage: corrupt high score file %s: %w", f.path, err)
	}
	if score < 0 {
		return 0, fmt.Errorf("storage: negative high score %d in %s", score, f.path)
	}
	return score, nil
}

// Load returns the stored score, or 0 when it is missing or corrupt.
func (f *FileStore) Load() int {
	score, _ := f.Read()
	return score
}

// Save records score unless the file already holds a value at least as high,
// so games sharing the file never lower each other's best. A corrupt file is
// overwritten. The file is replaced atomically so a crash mid-write never
// leaves a truncated value behind.
func (f *FileStore) Save(score int) error {
	if score < 0 {
		return fmt.Errorf("storage: refusing to save negative high score %d", score)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if current, err := f.read(); err == nil && current >= score {
		return nil
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".highscore-*")
	if err != nil {
		return fmt.Errorf("storage: save high score: %w", err)
	}
	_, werr := tmp.WriteString(strconv.Itoa(score))
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("storage: save high score: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("storage: save high score: %w", err)
	}
	return nil
}

// MemoryStore keeps the best score for the life of the process.
type MemoryStore struct {
	mu   sync.Mutex
	best int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the saved score.
func (m *MemoryStore) Load() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best
}

// Save stores the score if it beats the saved one.
func (m *MemoryStore) Save(score int) error {
	if score < 0 {
		return fmt.Errorf("storage: refusing to save negative high score %d", score)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.best = max(m.best, score)
	return nil
}

var (
	_ HighScoreStore = (*FileStore)(nil)
	_ HighScoreStore = (*MemoryStore)(nil)
)
