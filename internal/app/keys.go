package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/fable/internal/keymap"
	"github.com/llehouerou/fable/internal/ui/layout"
)

// handleKey dispatches key input: popups first, then bound actions, then
// pane-local list navigation.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		_, cmd := m.help.Update(msg)
		return m, cmd
	}
	if m.confirm.Active() {
		_, cmd := m.confirm.Update(msg)
		return m, cmd
	}
	if m.showInput {
		_, cmd := m.textInput.Update(msg)
		return m, cmd
	}

	switch m.resolver.Resolve(msg.String()) {
	case keymap.ActionQuit:
		m.scheduler.Stop()
		return m, tea.Quit

	case keymap.ActionSwitchFocus:
		m.cycleFocus(1)
		return m, nil

	case keymap.ActionFocusPrev:
		m.cycleFocus(-1)
		return m, nil

	case keymap.ActionHelp:
		m.help.SetContexts(helpContexts)
		m.help.SetSize(m.width, m.height)
		m.showHelp = true
		return m, nil

	case keymap.ActionImport:
		return m.startImport()

	case keymap.ActionPlayToggle:
		return m.playFromSelection(true)

	case keymap.ActionStop:
		m.scheduler.Stop()
		return m, nil

	case keymap.ActionNextSegment:
		return m.jumpSegment(1)

	case keymap.ActionPrevSegment:
		return m.jumpSegment(-1)

	case keymap.ActionGapShorter:
		return m.adjustSegmentGap(-gapStep)

	case keymap.ActionGapLonger:
		return m.adjustSegmentGap(gapStep)

	case keymap.ActionPauseShorter:
		return m.adjustDividerPause(-pauseStep)

	case keymap.ActionPauseLonger:
		return m.adjustDividerPause(pauseStep)

	case keymap.ActionSynthesizeChapter:
		return m.synthesizeChapter()

	case keymap.ActionSynthesizeSegment:
		return m.synthesizeSegment()

	case keymap.ActionRename:
		return m.startRename()

	case keymap.ActionEditText:
		return m.startEditText()

	case keymap.ActionInsertDivider:
		return m.insertDivider()

	case keymap.ActionSelect:
		return m.handleSelect()

	case keymap.ActionDelete:
		return m.startDelete()
	}

	return m.routeToFocusedList(msg)
}

// helpContexts are the binding categories the help popup shows.
var helpContexts = []string{
	"global", "playback", "synthesis", "list", "books", "chapters", "segments",
}

// cycleFocus moves focus between the three panes.
func (m *Model) cycleFocus(delta int) {
	panes := []layout.Pane{layout.PaneBooks, layout.PaneChapters, layout.PaneSegments}
	idx := 0
	for i, p := range panes {
		if p == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(panes)) % len(panes)
	m.setFocus(panes[idx])
	m.resizePanes()
}

// handleSelect acts on enter: opening a book or chapter drills in, enter
// on a segment narrates just that segment.
func (m Model) handleSelect() (tea.Model, tea.Cmd) {
	switch m.focus {
	case layout.PaneBooks:
		if _, ok := m.books.Selected(); !ok {
			return m, nil
		}
		if err := m.reloadChapters(0); err != nil {
			return m, m.notify("Load chapters: " + err.Error())
		}
		if err := m.reloadSegments(0); err != nil {
			return m, m.notify("Load segments: " + err.Error())
		}
		m.setFocus(layout.PaneChapters)
		m.resizePanes()
		m.saveNavigation()
		return m, nil

	case layout.PaneChapters:
		if _, ok := m.chapters.Selected(); !ok {
			return m, nil
		}
		if err := m.reloadSegments(0); err != nil {
			return m, m.notify("Load segments: " + err.Error())
		}
		m.setFocus(layout.PaneSegments)
		m.resizePanes()
		m.saveNavigation()
		return m, nil

	case layout.PaneSegments:
		return m.playFromSelection(false)
	}
	return m, nil
}

// routeToFocusedList forwards unbound keys (cursor movement) to the
// focused pane, refreshing dependent panes when the selection moves.
func (m Model) routeToFocusedList(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.focus {
	case layout.PaneBooks:
		before := m.books.SelectedIndex()
		m.books.Update(msg)
		if m.books.SelectedIndex() != before {
			if err := m.reloadChapters(0); err != nil {
				return m, m.notify("Load chapters: " + err.Error())
			}
			if err := m.reloadSegments(0); err != nil {
				return m, m.notify("Load segments: " + err.Error())
			}
			m.prepareCover()
			m.saveNavigation()
		}
	case layout.PaneChapters:
		before := m.chapters.SelectedIndex()
		m.chapters.Update(msg)
		if m.chapters.SelectedIndex() != before {
			if err := m.reloadSegments(0); err != nil {
				return m, m.notify("Load segments: " + err.Error())
			}
			m.saveNavigation()
		}
	case layout.PaneSegments:
		before := m.segments.SelectedIndex()
		m.segments.Update(msg)
		if m.segments.SelectedIndex() != before {
			m.saveNavigation()
		}
	}
	return m, nil
}

// prepareCover queues the selected book's cover for transmission.
func (m *Model) prepareCover() {
	if m.cover == nil || !m.cover.Enabled() {
		return
	}
	b, ok := m.books.Selected()
	if !ok || b.CoverPath == "" {
		m.pendingCoverTx = m.cover.Clear()
		return
	}
	m.pendingCoverTx = m.cover.Prepare(b.CoverPath)
}
