// Package workspace manages the scratch files that back one submission
// each. Names are unique so concurrent submissions never collide, and a
// handle is only handed out once its content is durably on disk.
package workspace

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Manager creates and removes scratch files under a single directory.
type Manager struct {
	dir string
}

// NewManager returns a Manager rooted at dir. An empty dir falls back to
// the system temp directory.
func NewManager(dir string) *Manager {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Manager{dir: dir}
}

// Handle is one acquired scratch file. It is owned by a single
// submission and must be released on every exit path.
type Handle struct {
	path    string
	release sync.Once
}

// Path returns the location of the backing file.
func (h *Handle) Path() string {
	return h.path
}

// Release removes the backing file. It is idempotent, and a file that is
// already gone is not an error. Removal failures are logged server-side
// only; callers never see them.
func (h *Handle) Release() {
	h.release.Do(func() {
		if err := os.Remove(h.path); err != nil && !os.IsNotExist(err) {
			log.Printf("Warning: failed to remove workspace file %s: %v", h.path, err)
		}
	})
}

// Acquire writes content to a freshly named file and returns its handle.
// The write is flushed to disk before the handle is exposed, so a
// subprocess launched against Path() always sees the full content.
func (m *Manager) Acquire(content, suffix string) (*Handle, error) {
	name := filepath.Join(m.dir, "crucible-"+uuid.New().String()+suffix)

	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("creating workspace file: %w", err)
	}

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(name)
		return nil, fmt.Errorf("writing workspace file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(name)
		return nil, fmt.Errorf("flushing workspace file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return nil, fmt.Errorf("closing workspace file: %w", err)
	}

	return &Handle{path: name}, nil
}
