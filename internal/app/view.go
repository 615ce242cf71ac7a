package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/fable/internal/playback"
	"github.com/llehouerou/fable/internal/ui/headerbar"
	"github.com/llehouerou/fable/internal/ui/jobbar"
	"github.com/llehouerou/fable/internal/ui/layout"
	"github.com/llehouerou/fable/internal/ui/overlay"
	"github.com/llehouerou/fable/internal/ui/popup"
	"github.com/llehouerou/fable/internal/ui/render"
	"github.com/llehouerou/fable/internal/ui/statusbar"
	"github.com/llehouerou/fable/internal/ui/styles"
)

// View renders the application UI.
func (m Model) View() string {
	// Can't render before the first WindowSizeMsg.
	if m.width == 0 || m.height == 0 {
		return ""
	}

	view := headerbar.Render(m.headerState(), m.width) + "\n" + m.renderPanes()

	if bar := statusbar.Render(m.statusBarState(), m.width); bar != "" {
		view += "\n" + bar
	}
	if bar := jobbar.Render(m.jobState(), m.width); bar != "" {
		view += "\n" + bar
	}
	if len(m.notifications) > 0 {
		view += "\n" + m.renderNotifications()
	}

	// Only one popup is ever active at a time.
	switch {
	case m.showHelp:
		view = overlay.Compose(view,
			popup.RenderBordered(m.help.View(), m.width, m.height, popup.SizeAuto), m.width)
	case m.confirm.Active():
		view = overlay.Compose(view,
			popup.RenderBordered(m.confirm.View(), m.width, m.height, popup.SizeAuto), m.width)
	case m.showInput:
		view = overlay.Compose(view,
			popup.RenderBordered(m.textInput.View(), m.width, m.height, popup.SizeAuto), m.width)
	}

	view = enforceHeight(view, m.height)

	// Cover transmission goes out once, ahead of the frame; the placement
	// command re-anchors the image every frame.
	if m.pendingCoverTx != "" {
		view = m.pendingCoverTx + view
	}
	view += m.coverPlacement()

	return view
}

// headerState builds the breadcrumb and engine indicator for the header.
func (m Model) headerState() headerbar.State {
	st := headerbar.State{
		EngineConfigured: m.engine != nil,
		EngineOnline:     m.engineOnline,
	}
	if m.engine != nil {
		st.EngineName = m.engine.Voice()
	}
	if m.focus != layout.PaneBooks {
		if b, ok := m.books.Selected(); ok {
			st.Book = b.Title
		}
	}
	if m.focus == layout.PaneSegments {
		if c, ok := m.chapters.Selected(); ok {
			st.Chapter = c.Title
		}
	}
	return st
}

// statusBarState builds the playback bar state. Idle playback renders no
// bar at all.
func (m Model) statusBarState() statusbar.State {
	st := m.scheduler.State()
	s := statusbar.State{
		Playing:    st == playback.StatePlaying,
		Waiting:    st == playback.StateWaiting,
		Book:       m.npBook,
		Chapter:    m.npChapter,
		Segment:    m.npIndex,
		Segments:   m.npCount,
		Continuous: m.scheduler.Continuous(),
	}
	if s.Playing && m.device != nil {
		s.Position = m.device.Position()
		s.Duration = m.device.Duration()
	}
	return s
}

// jobState exposes the running chapter narration to the job bar.
func (m Model) jobState() jobbar.State {
	if m.synth == nil {
		return jobbar.State{}
	}
	return jobbar.State{Jobs: []jobbar.Job{{
		ID:     fmt.Sprintf("narrate-%d", m.synth.chapterID),
		Label:  "Narrating " + m.synth.label,
		Done:   m.synth.done,
		Failed: m.synth.failed,
		Total:  m.synth.total,
	}}}
}

// renderNotifications renders the transient notification lines.
func (m Model) renderNotifications() string {
	t := styles.T()
	innerWidth := m.width - 2

	markStyle := lipgloss.NewStyle().Foreground(t.Primary)
	msgStyle := lipgloss.NewStyle().Foreground(t.FgBase)

	lines := make([]string, 0, len(m.notifications))
	for _, n := range m.notifications {
		line := markStyle.Render("•") + " " + msgStyle.Render(render.Sanitize(n.Message))
		lines = append(lines, render.TruncateAndPad(line, innerWidth))
	}

	return styles.PanelStyle(false).
		Width(innerWidth).
		Render(strings.Join(lines, "\n"))
}

// coverPlacement returns the terminal command anchoring the cover image
// inside the books pane.
func (m Model) coverPlacement() string {
	if m.cover == nil || !m.cover.HasImage() {
		return ""
	}
	narrow := layout.IsNarrowMode(m.width)
	if narrow && m.focus != layout.PaneBooks {
		return ""
	}
	booksW, _, _ := layout.PaneWidths(m.width, narrow, m.focus)
	row, col, _, _ := layout.CoverRegion(booksW, m.contentHeight(), headerbar.Height)
	if row == 0 {
		return ""
	}
	return m.cover.PlacementCmd(row, col)
}

// enforceHeight pads or truncates the view to exactly the terminal height.
func enforceHeight(view string, height int) string {
	lines := strings.Split(view, "\n")
	if len(lines) >= height {
		return strings.Join(lines[:height], "\n")
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
