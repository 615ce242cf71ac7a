package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/fable/internal/book"
)

// synthesizeChapter queues every pending or failed segment of the
// selected chapter for narration.
func (m Model) synthesizeChapter() (tea.Model, tea.Cmd) {
	if m.engine == nil {
		return m, m.notify("No speech engine configured")
	}
	c, ok := m.chapters.Selected()
	if !ok {
		return m, nil
	}

	ids, err := m.store.PendingSegments(c.ID)
	if err != nil {
		return m, m.notify("Queue chapter: " + err.Error())
	}
	if len(ids) == 0 {
		return m, m.notify("Chapter is fully narrated")
	}

	m.worker.Enqueue(ids...)
	m.synth = &synthJob{
		chapterID: c.ID,
		label:     c.Title,
		total:     len(ids),
	}
	m.resizePanes() // the job bar just appeared
	return m, nil
}

// synthesizeSegment queues the selected segment, re-narrating it if it
// already has audio.
func (m Model) synthesizeSegment() (tea.Model, tea.Cmd) {
	if m.engine == nil {
		return m, m.notify("No speech engine configured")
	}
	seg, ok := m.segments.Selected()
	if !ok {
		return m, nil
	}
	if seg.Kind != book.KindStandard {
		return m, m.notify("Dividers carry no narration")
	}

	m.worker.Enqueue(seg.ID)
	return m, m.notify("Queued segment for narration")
}

// handleSynthUpdate reacts to worker progress: refresh the panes showing
// the segment, advance the job bar, report failures.
func (m Model) handleSynthUpdate(msg SynthUpdateMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.watchSynthesis()}

	// Keep the visible panes in sync with the store.
	if c, ok := m.chapters.Selected(); ok {
		selected := int64(0)
		if s, ok := m.segments.Selected(); ok {
			selected = s.ID
		}
		if err := m.reloadSegments(selected); err == nil && msg.Status != book.StatusProcessing {
			_ = m.reloadChapters(c.ID)
		}
	}

	if m.synth != nil {
		switch msg.Status {
		case book.StatusCompleted:
			m.synth.done++
		case book.StatusFailed:
			m.synth.done++
			m.synth.failed++
		}
		if m.synth.done >= m.synth.total {
			message := fmt.Sprintf("Narration finished: %s", m.synth.label)
			if m.synth.failed > 0 {
				message = fmt.Sprintf("%s (%d failed)", message, m.synth.failed)
			}
			m.synth = nil
			m.resizePanes()
			cmds = append(cmds, m.notify(message))
		}
	}

	if msg.Status == book.StatusFailed && msg.Err != nil {
		cmds = append(cmds, m.notify("Synthesis failed: "+msg.Err.Error()))
	}

	return m, tea.Batch(cmds...)
}
