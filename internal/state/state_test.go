package state

import (
	"path/filepath"
	"testing"
	"time"
)

func setupManager(t *testing.T) *Manager {
	t.Helper()
	m, err := OpenPath(":memory:")
	if err != nil {
		t.Fatalf("OpenPath() error = %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestOpenPath_SchemaIdempotent(t *testing.T) {
	m := setupManager(t)

	if err := initSchema(m.db); err != nil {
		t.Fatalf("second initSchema() error = %v", err)
	}
}

func TestSettings_Defaults(t *testing.T) {
	m := setupManager(t)

	if got := m.SegmentGap(); got != 500*time.Millisecond {
		t.Errorf("SegmentGap() = %v, want 500ms", got)
	}
	if got := m.DividerPause(); got != 2*time.Second {
		t.Errorf("DividerPause() = %v, want 2s", got)
	}
}

func TestSettings_RoundTrip(t *testing.T) {
	m := setupManager(t)

	if err := m.SetSegmentGap(750 * time.Millisecond); err != nil {
		t.Fatalf("SetSegmentGap() error = %v", err)
	}
	if got := m.SegmentGap(); got != 750*time.Millisecond {
		t.Errorf("SegmentGap() = %v, want 750ms", got)
	}

	// Overwrite sticks.
	if err := m.SetSegmentGap(250 * time.Millisecond); err != nil {
		t.Fatalf("SetSegmentGap() error = %v", err)
	}
	if got := m.SegmentGap(); got != 250*time.Millisecond {
		t.Errorf("SegmentGap() = %v, want 250ms", got)
	}
}

func TestSettings_BadValueFallsBack(t *testing.T) {
	m := setupManager(t)

	if err := m.setSetting(keySegmentGap, "not a number"); err != nil {
		t.Fatalf("setSetting() error = %v", err)
	}
	if got := m.SegmentGap(); got != 500*time.Millisecond {
		t.Errorf("SegmentGap() = %v, want default 500ms", got)
	}
}

func TestNavigation_NoSavedState(t *testing.T) {
	m := setupManager(t)

	nav, err := m.GetNavigation()
	if err != nil {
		t.Fatalf("GetNavigation() error = %v", err)
	}
	if nav != nil {
		t.Errorf("GetNavigation() = %+v, want nil on first run", nav)
	}
}

func TestNavigation_SaveAndLoad(t *testing.T) {
	m := setupManager(t)

	if err := saveNavigation(m.db, NavigationState{BookID: 1, ChapterID: 2, SegmentID: 3}); err != nil {
		t.Fatalf("saveNavigation() error = %v", err)
	}

	nav, err := m.GetNavigation()
	if err != nil {
		t.Fatalf("GetNavigation() error = %v", err)
	}
	if nav == nil {
		t.Fatal("GetNavigation() = nil, want saved state")
	}
	if nav.BookID != 1 || nav.ChapterID != 2 || nav.SegmentID != 3 {
		t.Errorf("GetNavigation() = %+v, want {1 2 3}", nav)
	}
}

func TestNavigation_ZeroIDsStoredAsNull(t *testing.T) {
	m := setupManager(t)

	if err := saveNavigation(m.db, NavigationState{BookID: 1}); err != nil {
		t.Fatalf("saveNavigation() error = %v", err)
	}

	nav, err := m.GetNavigation()
	if err != nil {
		t.Fatalf("GetNavigation() error = %v", err)
	}
	if nav == nil {
		t.Fatal("GetNavigation() = nil, want saved state")
	}
	if nav.ChapterID != 0 || nav.SegmentID != 0 {
		t.Errorf("GetNavigation() = %+v, want zero chapter and segment", nav)
	}
}

func TestNavigation_DebouncedSaveFlushedOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fable.db")
	m, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath() error = %v", err)
	}

	// Close arrives before the debounce interval; the pending state must
	// still land.
	m.SaveNavigation(NavigationState{BookID: 4, ChapterID: 5})
	if err := m.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	m2, err := OpenPath(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer m2.Close()

	nav, err := m2.GetNavigation()
	if err != nil {
		t.Fatalf("GetNavigation() error = %v", err)
	}
	if nav == nil || nav.BookID != 4 || nav.ChapterID != 5 {
		t.Errorf("GetNavigation() = %+v, want BookID 4 ChapterID 5", nav)
	}
}
