package cover

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeProtocol records calls and returns tagged commands so tests can
// distinguish transmit, place and delete output.
type fakeProtocol struct {
	prepared [][]byte
	deleted  []uint32
}

func (f *fakeProtocol) Prepare(_ image.Image, id uint32) (string, error) {
	f.prepared = append(f.prepared, nil)
	return fmt.Sprintf("transmit:%d", id), nil
}

func (f *fakeProtocol) PrepareFromPNG(pngData []byte, id uint32) (string, error) {
	f.prepared = append(f.prepared, pngData)
	return fmt.Sprintf("transmit:%d", id), nil
}

func (f *fakeProtocol) Place(id uint32, row, col, _, _ int) string {
	return fmt.Sprintf("place:%d@%d,%d", id, row, col)
}

func (f *fakeProtocol) Delete(id uint32) string {
	f.deleted = append(f.deleted, id)
	return fmt.Sprintf("delete:%d", id)
}

func (f *fakeProtocol) Placeholder(width, height int) string {
	return blankPlaceholder(width, height)
}

func (f *fakeProtocol) TargetPixelSize(_, _ int) (int, int) {
	return 64, 64
}

func writeTestCover(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cover.png")
	if err := os.WriteFile(path, createTestPNG(t, 32, 32), 0o600); err != nil {
		t.Fatalf("write test cover: %v", err)
	}
	return path
}

func TestRendererDisabled(t *testing.T) {
	r := New(nil, nil)

	if r.Enabled() {
		t.Error("renderer with nil protocol should be disabled")
	}
	if cmd := r.Prepare("/some/cover.png"); cmd != "" {
		t.Errorf("Prepare() = %q, want empty for disabled renderer", cmd)
	}
	if r.HasImage() {
		t.Error("disabled renderer should have no image")
	}
	if cmd := r.PlacementCmd(1, 1); cmd != "" {
		t.Errorf("PlacementCmd() = %q, want empty", cmd)
	}
	if got := r.Placeholder(); got != "" {
		t.Errorf("Placeholder() = %q, want empty", got)
	}
	if cmd := r.Clear(); cmd != "" {
		t.Errorf("Clear() = %q, want empty", cmd)
	}
}

func TestRendererPrepare(t *testing.T) {
	proto := &fakeProtocol{}
	r := New(proto, nil)
	r.SetSize(8, 4)

	path := writeTestCover(t)

	cmd := r.Prepare(path)
	if !strings.Contains(cmd, "transmit:") {
		t.Errorf("Prepare() = %q, want transmit command", cmd)
	}
	if !r.HasImage() {
		t.Error("expected HasImage=true after Prepare")
	}
	if r.CurrentPath() != path {
		t.Errorf("CurrentPath() = %q, want %q", r.CurrentPath(), path)
	}

	// Second call for the same cover is a no-op
	if cmd := r.Prepare(path); cmd != "" {
		t.Errorf("repeat Prepare() = %q, want empty", cmd)
	}
}

func TestRendererPrepareEmptyPathClears(t *testing.T) {
	proto := &fakeProtocol{}
	r := New(proto, nil)
	r.SetSize(8, 4)

	r.Prepare(writeTestCover(t))

	cmd := r.Prepare("")
	if !strings.Contains(cmd, "delete:") {
		t.Errorf("Prepare(\"\") = %q, want delete command", cmd)
	}
	if r.HasImage() {
		t.Error("expected HasImage=false after clearing")
	}
}

func TestRendererPrepareUnreadableFile(t *testing.T) {
	proto := &fakeProtocol{}
	r := New(proto, nil)
	r.SetSize(8, 4)

	path := filepath.Join(t.TempDir(), "missing.png")

	if cmd := r.Prepare(path); cmd != "" {
		t.Errorf("Prepare() = %q, want empty for missing file", cmd)
	}
	if r.HasImage() {
		t.Error("expected HasImage=false for missing file")
	}
	// The path is remembered so the next render does not retry
	if cmd := r.Prepare(path); cmd != "" {
		t.Errorf("repeat Prepare() = %q, want empty", cmd)
	}
}

func TestRendererPlacementCmd(t *testing.T) {
	proto := &fakeProtocol{}
	r := New(proto, nil)
	r.SetSize(8, 4)

	if cmd := r.PlacementCmd(2, 3); cmd != "" {
		t.Errorf("PlacementCmd() = %q before Prepare, want empty", cmd)
	}

	r.Prepare(writeTestCover(t))

	cmd := r.PlacementCmd(2, 3)
	if !strings.Contains(cmd, "@2,3") {
		t.Errorf("PlacementCmd(2, 3) = %q, want position 2,3", cmd)
	}
}

func TestRendererClear(t *testing.T) {
	proto := &fakeProtocol{}
	r := New(proto, nil)
	r.SetSize(8, 4)

	r.Prepare(writeTestCover(t))

	cmd := r.Clear()
	if !strings.Contains(cmd, "delete:") {
		t.Errorf("Clear() = %q, want delete command", cmd)
	}
	if r.HasImage() {
		t.Error("expected HasImage=false after Clear")
	}
	if r.CurrentPath() != "" {
		t.Errorf("CurrentPath() = %q after Clear, want empty", r.CurrentPath())
	}
}

func TestRendererInvalidate(t *testing.T) {
	proto := &fakeProtocol{}
	r := New(proto, nil)
	r.SetSize(8, 4)

	path := writeTestCover(t)
	r.Prepare(path)
	r.Invalidate()

	if cmd := r.Prepare(path); !strings.Contains(cmd, "transmit:") {
		t.Errorf("Prepare() after Invalidate = %q, want re-transmit", cmd)
	}
}

func TestRendererSetSizeForcesReprepare(t *testing.T) {
	proto := &fakeProtocol{}
	r := New(proto, nil)
	r.SetSize(8, 4)

	path := writeTestCover(t)
	r.Prepare(path)
	r.SetSize(16, 8)

	if cmd := r.Prepare(path); !strings.Contains(cmd, "transmit:") {
		t.Errorf("Prepare() after resize = %q, want re-transmit", cmd)
	}
}

func TestRendererServesFromCache(t *testing.T) {
	cache, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}

	path := writeTestCover(t)

	first := New(&fakeProtocol{}, cache)
	first.SetSize(8, 4)
	if cmd := first.Prepare(path); cmd == "" {
		t.Fatal("first Prepare() should transmit")
	}

	// Remove the source file; a fresh renderer must still succeed from cache
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove cover: %v", err)
	}

	second := New(&fakeProtocol{}, cache)
	second.SetSize(8, 4)
	if cmd := second.Prepare(path); !strings.Contains(cmd, "transmit:") {
		t.Errorf("cached Prepare() = %q, want transmit command", cmd)
	}
	if !second.HasImage() {
		t.Error("expected HasImage=true when served from cache")
	}
}

func TestRendererPlaceholderDimensions(t *testing.T) {
	r := New(&fakeProtocol{}, nil)
	r.SetSize(10, 3)

	lines := strings.Split(r.Placeholder(), "\n")
	if len(lines) != 3 {
		t.Errorf("Placeholder() has %d lines, want 3", len(lines))
	}
	for i, line := range lines {
		if len(line) != 10 {
			t.Errorf("Placeholder() line %d width = %d, want 10", i, len(line))
		}
	}
}
