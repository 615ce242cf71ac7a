// Package overlay composites popup views on top of the main layout.
package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Compose draws overlay on top of base. Visible characters in overlay
// replace the base at the same display column; rows that are blank in
// the overlay leave the base untouched. Both strings may contain ANSI
// escape sequences.
func Compose(base, overlay string, width int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")

	for i, overlayLine := range overlayLines {
		if i >= len(baseLines) {
			break
		}
		if line, ok := composeLine(baseLines[i], overlayLine, width); ok {
			baseLines[i] = line
		}
	}

	return strings.Join(baseLines, "\n")
}

// composeLine splices the visible span of overlayLine into baseLine.
// Returns false when the overlay row has no visible content.
func composeLine(baseLine, overlayLine string, width int) (string, bool) {
	plain := ansi.Strip(overlayLine)
	if strings.TrimSpace(plain) == "" {
		return "", false
	}

	// Visible bounds of the overlay row, in display columns. Leading
	// padding is always ASCII spaces, one column each.
	startCol := 0
	for _, r := range plain {
		if r != ' ' {
			break
		}
		startCol++
	}
	trimmed := strings.TrimRight(plain, " ")
	endCol := ansi.StringWidth(trimmed)

	// Keep the overlay's own styling intact.
	content := ansi.Cut(overlayLine, startCol, endCol)

	baseWidth := ansi.StringWidth(ansi.Strip(baseLine))
	if baseWidth < width {
		baseLine += strings.Repeat(" ", width-baseWidth)
	}

	// Cutting through a wide character (CJK, emoji icons) can leave the
	// prefix or suffix a column short or long, so realign with spaces.
	prefix := ansi.Cut(baseLine, 0, startCol)
	if w := ansi.StringWidth(ansi.Strip(prefix)); w < startCol {
		prefix += strings.Repeat(" ", startCol-w)
	}

	result := prefix + content
	if endCol < width {
		suffix := ansi.Cut(baseLine, endCol, width)
		suffixWidth := ansi.StringWidth(ansi.Strip(suffix))
		expected := width - endCol
		switch {
		case suffixWidth > expected:
			suffix = " " + ansi.Cut(suffix, suffixWidth-expected+1, suffixWidth)
		case suffixWidth < expected:
			result += strings.Repeat(" ", expected-suffixWidth)
		}
		result += suffix
	}
	return result, true
}
