package cover

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestCachePutGet(t *testing.T) {
	c, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}

	data := createTestPNG(t, 10, 10)
	if err := c.Put("/books/lighthouse/cover.jpg", 8, 4, data); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got := c.Get("/books/lighthouse/cover.jpg", 8, 4)
	if !bytes.Equal(got, data) {
		t.Error("Get() returned different data than Put()")
	}
}

func TestCacheMiss(t *testing.T) {
	c, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}

	if got := c.Get("/books/unknown/cover.jpg", 8, 4); got != nil {
		t.Errorf("Get() = %d bytes for uncached cover, want nil", len(got))
	}
}

func TestCacheKeyVariesByDimensions(t *testing.T) {
	c, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}

	data := createTestPNG(t, 10, 10)
	if err := c.Put("/books/lighthouse/cover.jpg", 8, 4, data); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	if got := c.Get("/books/lighthouse/cover.jpg", 10, 5); got != nil {
		t.Error("Get() with different dimensions should miss")
	}
}

func TestCacheNilSafe(t *testing.T) {
	var c *Cache

	if got := c.Get("/books/x/cover.jpg", 8, 4); got != nil {
		t.Error("nil cache Get() should return nil")
	}
	if err := c.Put("/books/x/cover.jpg", 8, 4, []byte("data")); err != nil {
		t.Errorf("nil cache Put() error: %v", err)
	}
}

func TestCacheCreatesDirectory(t *testing.T) {
	base := t.TempDir()

	_, err := NewCache(base)
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(base, cacheDirName)); err != nil {
		t.Errorf("cache directory not created: %v", err)
	}
}
