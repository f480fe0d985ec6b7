package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAcquireWritesContent(t *testing.T) {
	m := NewManager(t.TempDir())

	h, err := m.Acquire("print('hi')\n", ".py")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer h.Release()

	if !strings.HasSuffix(h.Path(), ".py") {
		t.Errorf("path %q missing .py suffix", h.Path())
	}

	data, err := os.ReadFile(h.Path())
	if err != nil {
		t.Fatalf("reading workspace file: %v", err)
	}
	if string(data) != "print('hi')\n" {
		t.Errorf("content = %q, want %q", data, "print('hi')\n")
	}
}

func TestAcquireUniqueNames(t *testing.T) {
	m := NewManager(t.TempDir())

	a, err := m.Acquire("a", ".py")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer a.Release()

	b, err := m.Acquire("b", ".py")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer b.Release()

	if a.Path() == b.Path() {
		t.Errorf("two acquisitions returned the same path %q", a.Path())
	}
}

func TestReleaseRemovesFile(t *testing.T) {
	m := NewManager(t.TempDir())

	h, err := m.Acquire("x", ".py")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	h.Release()
	if _, err := os.Stat(h.Path()); !os.IsNotExist(err) {
		t.Errorf("workspace file still exists after Release")
	}
}

func TestReleaseIdempotent(t *testing.T) {
	m := NewManager(t.TempDir())

	h, err := m.Acquire("x", ".py")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	h.Release()
	h.Release() // must not panic or log spuriously on a second call
}

func TestReleaseMissingFile(t *testing.T) {
	m := NewManager(t.TempDir())

	h, err := m.Acquire("x", ".py")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	if err := os.Remove(h.Path()); err != nil {
		t.Fatalf("removing file out from under handle: %v", err)
	}
	h.Release() // already gone; must be a no-op
}

func TestEmptyDirFallsBackToTempDir(t *testing.T) {
	m := NewManager("")

	h, err := m.Acquire("x", ".py")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer h.Release()

	if filepath.Dir(h.Path()) != filepath.Clean(os.TempDir()) {
		t.Errorf("path %q not under os.TempDir()", h.Path())
	}
}
