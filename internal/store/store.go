// Package store persists the registry to a single JSON file on disk.
//
// Loading is best effort: a missing, unreadable, or malformed file yields a
// fresh empty registry so startup never blocks on bad state. Saving reports
// failures to the caller, who treats them as non-fatal; the in-memory
// registry stays valid either way.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"github.com/ksoares/evreg/internal/registry"
)

// ErrStoreNotFound indicates the data file does not exist yet.
var ErrStoreNotFound = errors.New("registry file not found")

// DefaultDirName is the directory under the user's home that holds the data.
const DefaultDirName = ".evreg"

// DefaultFileName is the registry data file name.
const DefaultFileName = "registry.json"

// DefaultPath returns the standard location of the data file.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, DefaultDirName, DefaultFileName), nil
}

// Store reads and writes the registry file. A process-wide mutex guards
// in-process callers; an OS file lock keeps a concurrent evreg invocation
// from reading or writing a half-written file. The lock spans a single
// Load or Save, not a whole command, so two commands racing the same file
// can still lose an update to each other.
type Store struct {
	mu   sync.Mutex
	path string
}

// New creates a Store for the given data file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the data file path this store operates on.
func (s *Store) Path() string {
	return s.path
}

// lockPath is the sibling flock file; the data file itself is replaced on
// save, so it cannot carry the lock.
func (s *Store) lockPath() string {
	return s.path + ".lock"
}

func (s *Store) acquireLock() (*flock.Flock, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	fl := flock.New(s.lockPath())
	if err := fl.Lock(); err != nil {
		return nil, fmt.Errorf("locking registry file: %w", err)
	}
	return fl, nil
}

// Load reads the registry, substituting a fresh empty one when the file is
// absent or unusable. The second return reports whether that fallback
// happened, so callers can mention it to the user.
func (s *Store) Load() (*registry.Registry, bool) {
	reg, err := s.LoadStrict()
	if err != nil {
		return registry.New(), true
	}
	return reg, false
}

// LoadStrict reads the registry and surfaces every failure: ErrStoreNotFound
// for a missing file, a wrapped parse error for a corrupt or incompatible
// one. Used by doctor; ordinary callers want Load.
func (s *Store) LoadStrict() (*registry.Registry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fl, err := s.acquireLock()
	if err != nil {
		return nil, err
	}
	defer fl.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrStoreNotFound, s.path)
		}
		return nil, fmt.Errorf("reading registry file: %w", err)
	}

	reg := registry.New()
	if err := json.Unmarshal(data, reg); err != nil {
		return nil, fmt.Errorf("parsing registry file: %w", err)
	}
	return reg, nil
}

// Save writes the full registry state to the data file.
func (s *Store) Save(reg *registry.Registry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fl, err := s.acquireLock()
	if err != nil {
		return err
	}
	defer fl.Unlock()

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding registry: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing registry file: %w", err)
	}
	return nil
}
