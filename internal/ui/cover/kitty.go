package cover

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
)

// Kitty graphics protocol escape sequences
const (
	escStart = "\x1b_G"
	escEnd   = "\x1b\\"
)

// KittyProtocol implements Protocol using the Kitty graphics protocol.
// Images are transmitted to terminal memory once and then placed by ID.
type KittyProtocol struct{}

func (k *KittyProtocol) Prepare(img image.Image, id uint32) (string, error) {
	data, err := encodePNG(img)
	if err != nil {
		return "", err
	}
	return k.PrepareFromPNG(data, id)
}

// PrepareFromPNG transmits pre-encoded PNG data to the terminal.
// The image is transmitted but not displayed (a=t).
func (k *KittyProtocol) PrepareFromPNG(pngData []byte, id uint32) (string, error) {
	encoded := base64.StdEncoding.EncodeToString(pngData)

	// a=t: transmit only (don't display)
	// f=100: PNG format
	// i=ID: image ID for later reference
	// q=2: quiet mode (suppress responses)
	var sb strings.Builder

	// Kitty protocol requires chunked transmission for large images.
	// Each chunk max 4096 bytes.
	const chunkSize = 4096

	for i := 0; i < len(encoded); i += chunkSize {
		end := min(i+chunkSize, len(encoded))
		chunk := encoded[i:end]

		moreChunks := 0
		if end < len(encoded) {
			moreChunks = 1
		}

		sb.WriteString(escStart)
		if i == 0 {
			fmt.Fprintf(&sb, "a=t,f=100,i=%d,q=2,m=%d;", id, moreChunks)
		} else {
			fmt.Fprintf(&sb, "m=%d;", moreChunks)
		}
		sb.WriteString(chunk)
		sb.WriteString(escEnd)
	}

	return sb.String(), nil
}

// Place returns the escape sequence to display a previously transmitted image.
// row and col are 1-based terminal coordinates, width and height in cells.
// Uses a fixed placement ID (1) so that repositioning automatically replaces
// the previous placement without leaving ghost images.
func (k *KittyProtocol) Place(id uint32, row, col, width, height int) string {
	// a=p: place image
	// p=1: fixed placement ID (replaces existing placement with same ID)
	// c=cols, r=rows: size in cells
	// C=1: don't move cursor after placing
	var sb strings.Builder

	fmt.Fprintf(&sb, "\x1b[s\x1b[%d;%dH", row, col)
	fmt.Fprintf(&sb, "%sa=p,i=%d,p=1,c=%d,r=%d,C=1,q=2;%s", escStart, id, width, height, escEnd)
	sb.WriteString("\x1b[u")

	return sb.String()
}

// Delete returns the escape sequence to delete a transmitted image and
// clear its placements.
func (k *KittyProtocol) Delete(id uint32) string {
	// a=d, d=i: delete by image ID and clear all placements of this image
	return fmt.Sprintf("%sa=d,d=i,i=%d,q=2;%s", escStart, id, escEnd)
}

// Placeholder returns a string of spaces for the image area.
// This is used in the layout so lipgloss doesn't try to measure image escapes.
func (k *KittyProtocol) Placeholder(width, height int) string {
	return blankPlaceholder(width, height)
}

// TargetPixelSize assumes the common 8x16 pixel terminal cell.
func (k *KittyProtocol) TargetPixelSize(widthCells, heightCells int) (pixelWidth, pixelHeight int) {
	return max(widthCells*8, 64), max(heightCells*16, 64)
}

func blankPlaceholder(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	line := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
