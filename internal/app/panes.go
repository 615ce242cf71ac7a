package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/fable/internal/book"
	"github.com/llehouerou/fable/internal/icons"
	"github.com/llehouerou/fable/internal/playback"
	"github.com/llehouerou/fable/internal/ui"
	"github.com/llehouerou/fable/internal/ui/headerbar"
	"github.com/llehouerou/fable/internal/ui/jobbar"
	"github.com/llehouerou/fable/internal/ui/layout"
	"github.com/llehouerou/fable/internal/ui/render"
	"github.com/llehouerou/fable/internal/ui/statusbar"
	"github.com/llehouerou/fable/internal/ui/styles"
)

// contentHeight is the vertical space left for the pane row after the
// header, status bar, job bar and notifications take theirs.
func (m Model) contentHeight() int {
	h := layout.ContentHeight(m.height, layout.ContentOpts{
		HeaderHeight:      headerbar.Height,
		StatusBarHeight:   statusbar.Height(m.statusBarState()),
		NotificationCount: len(m.notifications),
	})
	return h - jobbar.Height(m.jobState().ActiveCount())
}

// resizePanes recomputes pane and cover dimensions. Called whenever the
// window, focus, or any of the bottom bars changes.
func (m *Model) resizePanes() {
	if m.width == 0 || m.height == 0 {
		return
	}

	contentH := m.contentHeight()
	narrow := layout.IsNarrowMode(m.width)
	booksW, chaptersW, segmentsW := layout.PaneWidths(m.width, narrow, m.focus)

	// The cover thumbnail takes the bottom of the books pane.
	coverH := 0
	if m.cover.Enabled() && booksW > 0 {
		_, _, cw, ch := layout.CoverRegion(booksW, contentH, headerbar.Height)
		if cw > 0 {
			m.cover.SetSize(cw, ch)
			coverH = ch + 1 // +1 for the separator above the image
		}
	}

	m.books.SetSize(booksW, contentH-coverH)
	m.chapters.SetSize(chaptersW, contentH)
	m.segments.SetSize(segmentsW, contentH)
}

// renderPanes renders the three browser columns, or only the focused one
// in narrow mode.
func (m Model) renderPanes() string {
	contentH := m.contentHeight()

	if layout.IsNarrowMode(m.width) {
		switch m.focus {
		case layout.PaneBooks:
			return m.renderBooksPane(m.width, contentH)
		case layout.PaneChapters:
			return m.renderChaptersPane(m.width, contentH)
		default:
			return m.renderSegmentsPane(m.width, contentH)
		}
	}

	booksW, chaptersW, segmentsW := layout.PaneWidths(m.width, false, m.focus)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderBooksPane(booksW, contentH),
		m.renderChaptersPane(chaptersW, contentH),
		m.renderSegmentsPane(segmentsW, contentH),
	)
}

func (m Model) renderBooksPane(width, height int) string {
	s := styles.T().S()
	innerWidth := width - ui.BorderHeight
	listHeight := m.books.ListHeight(ui.PanelOverhead)

	header := render.Row(
		s.Title.Render("Books"),
		s.Subtle.Render(fmt.Sprintf("%d", m.books.Len())),
		innerWidth,
	)

	lines := make([]string, 0, height-ui.BorderHeight)
	lines = append(lines, header, s.Subtle.Render(render.Separator(innerWidth)))

	start, end := m.books.VisibleRange(ui.PanelOverhead)
	items := m.books.Items()
	for i := start; i < end; i++ {
		lines = append(lines, m.bookLine(items[i], innerWidth, i))
	}
	for len(lines) < listHeight+ui.HeaderHeight {
		lines = append(lines, render.EmptyLine(innerWidth))
	}

	// Blank rows under the list where the cover image is placed.
	if coverRows := height - ui.PanelOverhead - listHeight; coverRows > 0 {
		lines = append(lines, s.Subtle.Render(render.Separator(innerWidth)))
		for range coverRows - 1 {
			lines = append(lines, render.EmptyLine(innerWidth))
		}
	}

	return styles.PanelStyle(m.focus == layout.PaneBooks).
		Width(innerWidth).
		Render(strings.Join(lines, "\n"))
}

// bookLine renders one book row. Wide panes get the import age on the
// right, e.g. "3 days ago".
func (m Model) bookLine(b book.Book, innerWidth, index int) string {
	s := styles.T().S()

	var age string
	if innerWidth >= 40 && b.CreatedAt > 0 {
		age = humanize.Time(time.Unix(b.CreatedAt, 0))
	}

	title := render.TruncateEllipsis(
		icons.FormatBook(render.Sanitize(b.Title)),
		max(innerWidth-lipgloss.Width(age)-1, 1),
	)

	if index == m.books.SelectedIndex() && m.books.IsFocused() {
		return s.Cursor.Render(render.Row(title, age, innerWidth))
	}

	titleStyle := s.Muted
	if index == m.books.SelectedIndex() {
		titleStyle = s.Base
	}
	return render.Row(titleStyle.Render(title), s.Subtle.Render(age), innerWidth)
}

func (m Model) renderChaptersPane(width, height int) string {
	s := styles.T().S()
	innerWidth := width - ui.BorderHeight
	listHeight := m.chapters.ListHeight(ui.PanelOverhead)

	header := render.Row(
		s.Title.Render("Chapters"),
		s.Subtle.Render(fmt.Sprintf("%d", m.chapters.Len())),
		innerWidth,
	)

	lines := make([]string, 0, height-ui.BorderHeight)
	lines = append(lines, header, s.Subtle.Render(render.Separator(innerWidth)))

	start, end := m.chapters.VisibleRange(ui.PanelOverhead)
	items := m.chapters.Items()
	for i := start; i < end; i++ {
		lines = append(lines, m.chapterLine(items[i], innerWidth, i))
	}
	for len(lines) < listHeight+ui.HeaderHeight {
		lines = append(lines, render.EmptyLine(innerWidth))
	}

	return styles.PanelStyle(m.focus == layout.PaneChapters).
		Width(innerWidth).
		Render(strings.Join(lines, "\n"))
}

// chapterLine renders one chapter row with its synthesis tally on the
// right, e.g. "12/48".
func (m Model) chapterLine(c chapterRow, innerWidth, index int) string {
	s := styles.T().S()

	tally := fmt.Sprintf("%d/%d", c.Counts.Completed, c.Counts.Total)
	tallyWidth := lipgloss.Width(tally)

	title := render.TruncateEllipsis(
		icons.FormatChapter(render.Sanitize(c.Title)),
		max(innerWidth-tallyWidth-1, 1),
	)

	if index == m.chapters.SelectedIndex() && m.chapters.IsFocused() {
		return s.Cursor.Render(render.Row(title, tally, innerWidth))
	}

	tallyStyle := s.Subtle
	switch {
	case c.Counts.Failed > 0:
		tallyStyle = s.Error
	case c.Counts.Total > 0 && c.Counts.Completed == c.Counts.Total:
		tallyStyle = s.Success
	}

	titleStyle := s.Muted
	if index == m.chapters.SelectedIndex() {
		titleStyle = s.Base
	}
	return render.Row(titleStyle.Render(title), tallyStyle.Render(tally), innerWidth)
}

func (m Model) renderSegmentsPane(width, height int) string {
	s := styles.T().S()
	innerWidth := width - ui.BorderHeight
	listHeight := m.segments.ListHeight(ui.PanelOverhead)

	header := render.Row(
		s.Title.Render("Segments"),
		s.Subtle.Render(fmt.Sprintf("%d", m.segments.Len())),
		innerWidth,
	)

	lines := make([]string, 0, height-ui.BorderHeight)
	lines = append(lines, header, s.Subtle.Render(render.Separator(innerWidth)))

	start, end := m.segments.VisibleRange(ui.PanelOverhead)
	items := m.segments.Items()
	for i := start; i < end; i++ {
		lines = append(lines, m.segmentLine(items[i], innerWidth, i))
	}
	for len(lines) < listHeight+ui.HeaderHeight {
		lines = append(lines, render.EmptyLine(innerWidth))
	}

	return styles.PanelStyle(m.focus == layout.PaneSegments).
		Width(innerWidth).
		Render(strings.Join(lines, "\n"))
}

// segmentLine renders one segment row: status glyph, text, and duration
// on the right for narrated segments. The audible segment carries the
// playing marker instead of its status glyph.
func (m Model) segmentLine(seg book.Segment, innerWidth, index int) string {
	s := styles.T().S()

	glyph := icons.StatusGlyph(string(seg.Status))
	glyphStyle := s.Subtle
	switch seg.Status {
	case book.StatusCompleted:
		glyphStyle = s.Success
	case book.StatusProcessing:
		glyphStyle = s.Warning
	case book.StatusFailed:
		glyphStyle = s.Error
	}

	active := seg.ID == m.scheduler.ActiveItemID()
	if active {
		switch m.scheduler.State() {
		case playback.StatePlaying:
			glyph = icons.Playing()
			glyphStyle = s.Active
		case playback.StateWaiting:
			glyph = icons.Waiting()
			glyphStyle = s.Active
		default:
			active = false
		}
	}

	var text, right string
	if seg.Kind == book.KindDivider {
		glyph = icons.Divider()
		glyphStyle = s.Subtle
		text = fmt.Sprintf("pause %dms", m.dividerPauseMs(seg))
	} else {
		text = render.Sanitize(seg.Text)
		if seg.DurationMs > 0 {
			right = formatMs(seg.DurationMs)
		}
	}

	glyphWidth := lipgloss.Width(glyph) + 1
	rightWidth := lipgloss.Width(right)
	textWidth := max(innerWidth-glyphWidth-rightWidth-1, 1)
	text = render.TruncateEllipsis(text, textWidth)

	if index == m.segments.SelectedIndex() && m.segments.IsFocused() {
		return s.Cursor.Render(render.Row(glyph+" "+text, right, innerWidth))
	}

	textStyle := s.Muted
	switch {
	case active:
		textStyle = s.Active
	case index == m.segments.SelectedIndex():
		textStyle = s.Base
	case seg.Kind == book.KindDivider:
		textStyle = s.Subtle
	}

	left := glyphStyle.Render(glyph) + " " + textStyle.Render(text)
	return render.Row(left, s.Subtle.Render(right), innerWidth)
}

// dividerPauseMs resolves a divider's silence, falling back to the
// configured default when the segment carries none of its own.
func (m Model) dividerPauseMs(seg book.Segment) int64 {
	if seg.PauseMs > 0 {
		return seg.PauseMs
	}
	return m.stateMgr.DividerPause().Milliseconds()
}

func formatMs(ms int64) string {
	secs := ms / 1000
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
