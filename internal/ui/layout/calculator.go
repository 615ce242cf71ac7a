// Package layout provides pure functions for UI dimension calculations.
package layout

// NarrowThreshold is the terminal width below which the layout switches to
// narrow mode. In narrow mode only the focused pane is shown, at full width.
const NarrowThreshold = 100

// NotificationBorderHeight is the height of borders around notifications.
const NotificationBorderHeight = 2

// MinPaneWidth is the smallest width a side pane is given in wide mode.
const MinPaneWidth = 24

// Pane identifies one of the three browser columns.
type Pane int

const (
	PaneBooks Pane = iota
	PaneChapters
	PaneSegments
)

// ContentOpts contains the parameters needed to calculate content height.
type ContentOpts struct {
	HeaderHeight      int
	StatusBarHeight   int // 0 when playback is idle
	NotificationCount int
}

// ContentHeight calculates the available height for the pane area. This is
// the terminal height minus header, status bar, and notifications.
func ContentHeight(windowHeight int, opts ContentOpts) int {
	height := windowHeight
	height -= opts.HeaderHeight
	height -= opts.StatusBarHeight
	height -= NotificationHeight(opts.NotificationCount)
	return height
}

// NotificationHeight returns the height needed for the given number of notifications.
func NotificationHeight(count int) int {
	if count == 0 {
		return 0
	}
	return count + NotificationBorderHeight
}

// IsNarrowMode returns true if the terminal width is below the narrow threshold.
func IsNarrowMode(width int) bool {
	return width < NarrowThreshold
}

// PaneWidths returns the widths of the books, chapters and segments panes.
// In wide mode books and chapters each take a quarter of the window (at
// least MinPaneWidth) and segments takes the rest. In narrow mode only the
// focused pane is visible and takes the full width.
func PaneWidths(windowWidth int, narrowMode bool, focused Pane) (books, chapters, segments int) {
	if narrowMode {
		switch focused {
		case PaneBooks:
			return windowWidth, 0, 0
		case PaneChapters:
			return 0, windowWidth, 0
		default:
			return 0, 0, windowWidth
		}
	}
	books = windowWidth / 4
	if books < MinPaneWidth {
		books = MinPaneWidth
	}
	chapters = books
	segments = windowWidth - books - chapters
	return books, chapters, segments
}

// CoverRegion calculates the placement of the cover thumbnail at the bottom
// of the books pane. Row and col are 1-based terminal coordinates; width and
// height are in cells. Returns zeros when the pane is too small to fit a
// cover and still leave a usable list above it.
func CoverRegion(booksWidth, contentHeight, headerHeight int) (row, col, width, height int) {
	width = booksWidth - 4
	if width < 8 {
		return 0, 0, 0, 0
	}
	if width > 24 {
		width = 24
	}
	height = width / 2
	if contentHeight < height+8 {
		return 0, 0, 0, 0
	}
	row = headerHeight + contentHeight - height - 1
	col = 3
	return row, col, width, height
}
