// Package cover renders book cover images in the terminal.
package cover

import (
	"bytes"
	"image"
	_ "image/jpeg" // JPEG decoder for cover files
	_ "image/png"  // PNG decoder for cover files
	"os"
	"sync"
	"sync/atomic"

	"github.com/nfnt/resize"
)

// Global image ID counter
var nextImageID uint32

func getNextImageID() uint32 {
	return atomic.AddUint32(&nextImageID, 1)
}

// Renderer displays the selected book's cover through a terminal image
// protocol. A Renderer with a nil protocol is inert: every method returns
// empty output.
type Renderer struct {
	mu sync.RWMutex

	proto Protocol
	cache *Cache

	// Current image state
	currentPath string
	currentID   uint32
	prepared    bool

	// Display dimensions in cells
	width  int
	height int
}

// New creates a cover renderer on the given protocol. proto may be nil
// (unsupported terminal) and cache may be nil (cache unavailable).
func New(proto Protocol, cache *Cache) *Renderer {
	return &Renderer{proto: proto, cache: cache}
}

// Enabled reports whether the terminal supports cover display.
func (r *Renderer) Enabled() bool {
	return r != nil && r.proto != nil
}

// SetSize sets the display dimensions in terminal cells.
func (r *Renderer) SetSize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.width != width || r.height != height {
		r.width = width
		r.height = height
		r.prepared = false // Need to re-prepare at new size
	}
}

// Prepare loads the cover image at coverPath and returns the one-time
// terminal command to transmit it. Returns empty string if the cover is
// already prepared. An empty coverPath clears the current image.
func (r *Renderer) Prepare(coverPath string) string {
	if !r.Enabled() {
		return ""
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentPath == coverPath && r.prepared {
		return ""
	}

	// New cover - delete old image if any
	var deleteCmd string
	if r.currentID > 0 {
		deleteCmd = r.proto.Delete(r.currentID)
	}

	if coverPath == "" {
		r.currentPath = ""
		r.currentID = 0
		r.prepared = true
		return deleteCmd
	}

	pngData := r.cache.Get(coverPath, r.width, r.height)
	if pngData == nil {
		var ok bool
		pngData, ok = r.resizeCover(coverPath)
		if !ok {
			// Unreadable or undecodable file: remember the path so we
			// don't retry on every render.
			r.currentPath = coverPath
			r.currentID = 0
			r.prepared = true
			return deleteCmd
		}
		_ = r.cache.Put(coverPath, r.width, r.height, pngData) //nolint:errcheck // cache is best-effort
	}

	r.currentID = getNextImageID()
	r.currentPath = coverPath

	transmitCmd, err := r.proto.PrepareFromPNG(pngData, r.currentID)
	if err != nil {
		r.currentID = 0
		r.prepared = true
		return deleteCmd
	}

	r.prepared = true
	return deleteCmd + transmitCmd
}

// resizeCover reads and decodes the cover file, scales it to the display
// cell area and re-encodes it as PNG.
func (r *Renderer) resizeCover(coverPath string) ([]byte, bool) {
	raw, err := os.ReadFile(coverPath)
	if err != nil {
		return nil, false
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, false
	}

	pw, ph := r.proto.TargetPixelSize(r.width, r.height)
	resized := resize.Thumbnail(uint(pw), uint(ph), img, resize.Lanczos3) //nolint:gosec // dimensions are small

	data, err := encodePNG(resized)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Placeholder returns blank space for the layout.
func (r *Renderer) Placeholder() string {
	if !r.Enabled() {
		return ""
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.proto.Placeholder(r.width, r.height)
}

// PlacementCmd returns the command to place the image at given position.
// row and col are 1-based terminal coordinates.
// Returns empty string if no image is prepared.
func (r *Renderer) PlacementCmd(row, col int) string {
	if !r.Enabled() {
		return ""
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.currentID == 0 {
		return ""
	}

	return r.proto.Place(r.currentID, row, col, r.width, r.height)
}

// HasImage returns true if there's a prepared image for the current cover.
func (r *Renderer) HasImage() bool {
	if !r.Enabled() {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.currentID > 0
}

// Clear removes the current image from terminal memory.
func (r *Renderer) Clear() string {
	if !r.Enabled() {
		return ""
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var cmd string
	if r.currentID > 0 {
		cmd = r.proto.Delete(r.currentID)
	}

	r.currentPath = ""
	r.currentID = 0
	r.prepared = false

	return cmd
}

// CurrentPath returns the path of the currently prepared cover.
func (r *Renderer) CurrentPath() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.currentPath
}

// Invalidate clears the prepared state so the next Prepare call re-transmits,
// even for the same path. Used after the terminal is cleared or resized.
func (r *Renderer) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.currentPath = ""
	r.prepared = false
}
