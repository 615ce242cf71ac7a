package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/fable/internal/book"
	"github.com/llehouerou/fable/internal/ui/confirm"
	"github.com/llehouerou/fable/internal/ui/layout"
	"github.com/llehouerou/fable/internal/ui/textinput"
)

// startImport opens the manuscript path prompt.
func (m Model) startImport() (tea.Model, tea.Cmd) {
	m.textInput.Start("Import manuscript", "path/to/manuscript.md", "",
		importContext{}, m.width, m.height)
	m.showInput = true
	return m, m.textInput.Init()
}

// startRename opens the title prompt for the focused book or chapter.
func (m Model) startRename() (tea.Model, tea.Cmd) {
	switch m.focus {
	case layout.PaneBooks:
		b, ok := m.books.Selected()
		if !ok {
			return m, nil
		}
		m.textInput.Start("Rename book", "", b.Title,
			renameBookContext{ID: b.ID}, m.width, m.height)
	case layout.PaneChapters:
		c, ok := m.chapters.Selected()
		if !ok {
			return m, nil
		}
		m.textInput.Start("Rename chapter", "", c.Title,
			renameChapterContext{ID: c.ID}, m.width, m.height)
	default:
		return m, nil
	}
	m.showInput = true
	return m, m.textInput.Init()
}

// startEditText opens the text prompt for the selected segment. Saving
// drops the segment back to pending: its old narration no longer matches.
func (m Model) startEditText() (tea.Model, tea.Cmd) {
	if m.focus != layout.PaneSegments {
		return m, nil
	}
	seg, ok := m.segments.Selected()
	if !ok || seg.Kind != book.KindStandard {
		return m, nil
	}
	m.textInput.Start("Edit segment text", "", seg.Text,
		editSegmentContext{ID: seg.ID}, m.width, m.height)
	m.showInput = true
	return m, m.textInput.Init()
}

// insertDivider adds a silent divider below the selected segment.
func (m Model) insertDivider() (tea.Model, tea.Cmd) {
	if m.focus != layout.PaneSegments {
		return m, nil
	}
	seg, ok := m.segments.Selected()
	if !ok {
		return m, nil
	}
	id, err := m.store.InsertDividerAfter(seg.ID, m.stateMgr.DividerPause().Milliseconds())
	if err != nil {
		return m, m.notify("Insert divider: " + err.Error())
	}
	if err := m.reloadSegments(id); err != nil {
		return m, m.notify("Load segments: " + err.Error())
	}
	return m, nil
}

// startDelete asks before deleting the focused book or segment.
func (m Model) startDelete() (tea.Model, tea.Cmd) {
	switch m.focus {
	case layout.PaneBooks:
		b, ok := m.books.Selected()
		if !ok {
			return m, nil
		}
		m.confirm.Show("Delete book",
			fmt.Sprintf("Delete %q with all its chapters and narration?", b.Title),
			deleteBookContext{ID: b.ID, Title: b.Title}, m.width, m.height)
	case layout.PaneSegments:
		seg, ok := m.segments.Selected()
		if !ok {
			return m, nil
		}
		label := "this divider"
		if seg.Kind == book.KindStandard {
			label = "this segment"
		}
		m.confirm.Show("Delete segment",
			fmt.Sprintf("Delete %s? Following segments move up.", label),
			deleteSegmentContext{ID: seg.ID}, m.width, m.height)
	}
	return m, nil
}

// handleConfirmResult applies a confirmed deletion.
func (m Model) handleConfirmResult(res confirm.Result) (tea.Model, tea.Cmd) {
	m.confirm.Reset()
	if !res.Confirmed {
		return m, nil
	}

	switch ctx := res.Context.(type) {
	case deleteBookContext:
		// Never keep narrating a book that is being deleted.
		m.scheduler.Stop()
		if err := m.store.DeleteBook(ctx.ID); err != nil {
			return m, m.notify("Delete book: " + err.Error())
		}
		if err := m.reloadBooks(0); err != nil {
			return m, m.notify("Load books: " + err.Error())
		}
		if err := m.reloadChapters(0); err != nil {
			return m, m.notify("Load chapters: " + err.Error())
		}
		if err := m.reloadSegments(0); err != nil {
			return m, m.notify("Load segments: " + err.Error())
		}
		m.saveNavigation()
		return m, m.notify(fmt.Sprintf("Deleted %q", ctx.Title))

	case deleteSegmentContext:
		// The scheduler re-reads the sequence at the next advance, so a
		// deletion during playback is picked up there; only the audible
		// segment itself needs an explicit stop.
		if m.scheduler.ActiveItemID() == ctx.ID {
			m.scheduler.Stop()
		}
		if err := m.store.DeleteSegment(ctx.ID); err != nil {
			return m, m.notify("Delete segment: " + err.Error())
		}
		if err := m.reloadSegments(0); err != nil {
			return m, m.notify("Load segments: " + err.Error())
		}
		if c, ok := m.chapters.Selected(); ok {
			_ = m.reloadChapters(c.ID)
		}
		m.saveNavigation()
	}
	return m, nil
}

// handleTextInputResult applies a submitted prompt.
func (m Model) handleTextInputResult(res textinput.Result) (tea.Model, tea.Cmd) {
	m.showInput = false
	m.textInput.Reset()
	if res.Canceled {
		return m, nil
	}
	text := strings.TrimSpace(res.Text)
	if text == "" {
		return m, nil
	}

	switch ctx := res.Context.(type) {
	case importContext:
		cmd := m.notify("Importing " + text + "…")
		return m, tea.Batch(cmd, m.importCmd(text))

	case renameBookContext:
		if err := m.store.RenameBook(ctx.ID, text); err != nil {
			return m, m.notify("Rename book: " + err.Error())
		}
		if err := m.reloadBooks(ctx.ID); err != nil {
			return m, m.notify("Load books: " + err.Error())
		}

	case renameChapterContext:
		if err := m.store.RenameChapter(ctx.ID, text); err != nil {
			return m, m.notify("Rename chapter: " + err.Error())
		}
		if err := m.reloadChapters(ctx.ID); err != nil {
			return m, m.notify("Load chapters: " + err.Error())
		}

	case editSegmentContext:
		if err := m.store.SetSegmentText(ctx.ID, text); err != nil {
			return m, m.notify("Edit segment: " + err.Error())
		}
		if err := m.reloadSegments(ctx.ID); err != nil {
			return m, m.notify("Load segments: " + err.Error())
		}
		if c, ok := m.chapters.Selected(); ok {
			_ = m.reloadChapters(c.ID)
		}
	}
	return m, nil
}

// handleImportResult lands a finished import in the books pane.
func (m Model) handleImportResult(msg ImportResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m, m.notify("Import failed: " + msg.Err.Error())
	}
	if err := m.reloadBooks(msg.BookID); err != nil {
		return m, m.notify("Load books: " + err.Error())
	}
	if err := m.reloadChapters(0); err != nil {
		return m, m.notify("Load chapters: " + err.Error())
	}
	if err := m.reloadSegments(0); err != nil {
		return m, m.notify("Load segments: " + err.Error())
	}
	m.prepareCover()
	m.saveNavigation()
	return m, m.notify(fmt.Sprintf("Imported %q", msg.Title))
}
