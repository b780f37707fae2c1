package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/peterbourgon/diskv/v3"
)

// ErrNoValue is returned by Preferences.Read for a key that was never written.
var ErrNoValue = errors.New("store: no value for key")

// Preferences is a flat key-value store of opaque values, in the spirit of a
// platform preference store. Each key is read and written whole.
type Preferences interface {
	Read(key string) ([]byte, error)
	Write(key string, value []byte) error
	Erase(key string) error
}

const tempDirName = ".tmp"

// Load opens the diskv-backed preferences rooted at cfg.BasePath(). A nil cfg
// loads the user configuration.
func Load(cfg Config) (*DiskPreferences, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	tempDir := filepath.Join(basePath, tempDirName)
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &DiskPreferences{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		TempDir:      tempDir,
		CacheSizeMax: 0, // other processes write the same journal
	}), basePath: basePath}, nil
}

// DiskPreferences stores one file per key under a base directory. Writes go
// through a temp file and rename, so readers never see a partial value.
type DiskPreferences struct {
	d        *diskv.Diskv
	basePath string
}

// BasePath returns the directory holding the preference files.
func (p *DiskPreferences) BasePath() string {
	return p.basePath
}

func (p *DiskPreferences) Read(key string) ([]byte, error) {
	if !p.d.Has(key) {
		return nil, ErrNoValue
	}
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoValue
		}
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return val, nil
}

func (p *DiskPreferences) Write(key string, value []byte) error {
	if err := p.d.Write(key, value); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *DiskPreferences) Erase(key string) error {
	if !p.d.Has(key) {
		return nil
	}
	if err := p.d.Erase(key); err != nil {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

// MemoryPreferences keeps values in a map. It backs tests and previews.
type MemoryPreferences struct {
	mu     sync.Mutex
	values map[string][]byte

	// FailWrites, when set, is returned by every Write.
	FailWrites error
}

// NewMemoryPreferences returns an empty in-memory store.
func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{values: make(map[string][]byte)}
}

func (m *MemoryPreferences) Read(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, ErrNoValue
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryPreferences) Write(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryPreferences) Erase(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

var (
	_ Preferences = (*DiskPreferences)(nil)
	_ Preferences = (*MemoryPreferences)(nil)
	_ KeyWatcher  = (*DiskPreferences)(nil)
)
