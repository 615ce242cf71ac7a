package app

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/fable/internal/book"
	"github.com/llehouerou/fable/internal/playback"
)

const (
	gapStep   = 100 * time.Millisecond
	pauseStep = 250 * time.Millisecond

	maxSegmentGap   = 5 * time.Second
	maxDividerPause = 10 * time.Second
)

// playFromSelection starts narration at the selected segment. Space plays
// continuously from there; enter narrates the one segment. Replaying the
// audible segment stops it (the scheduler's toggle-stop).
func (m Model) playFromSelection(continuous bool) (tea.Model, tea.Cmd) {
	seg, ok := m.selectedNarratable()
	if !ok {
		return m, nil
	}

	err := m.scheduler.Play(seg.ChapterID, playback.AudioItem{
		ID:    seg.ID,
		Path:  seg.AudioPath,
		Index: seg.Position,
	}, continuous)
	switch {
	case errors.Is(err, playback.ErrNoAudio):
		return m, m.notify("Segment has no narration yet (press S to synthesize)")
	case err != nil:
		return m, m.notify("Play: " + err.Error())
	}
	return m, nil
}

// selectedNarratable resolves the selection to a narrated segment.
// Dividers are never user-playable, so selecting one plays the next
// narrated segment instead.
func (m Model) selectedNarratable() (book.Segment, bool) {
	seg, ok := m.segments.Selected()
	if !ok {
		return book.Segment{}, false
	}
	if seg.Kind == book.KindStandard {
		return seg, true
	}
	for _, s := range m.segments.Items() {
		if s.Position > seg.Position && s.Kind == book.KindStandard {
			return s, true
		}
	}
	return book.Segment{}, false
}

// jumpSegment moves narration to the previous or next narratable segment
// of the playing chapter.
func (m Model) jumpSegment(delta int) (tea.Model, tea.Cmd) {
	chapterID := m.scheduler.ActiveChapterID()
	activeID := m.scheduler.ActiveItemID()
	if chapterID == 0 || activeID == 0 {
		return m, nil
	}

	segments, err := m.store.Segments(chapterID)
	if err != nil {
		return m, m.notify("Load segments: " + err.Error())
	}

	target, ok := adjacentPlayable(segments, activeID, delta)
	if !ok {
		return m, nil
	}

	if err := m.scheduler.Play(chapterID, playback.AudioItem{
		ID:    target.ID,
		Path:  target.AudioPath,
		Index: target.Position,
	}, true); err != nil {
		return m, m.notify("Play: " + err.Error())
	}
	return m, nil
}

// adjacentPlayable finds the nearest playable segment before or after the
// one with fromID. delta is +1 or -1.
func adjacentPlayable(segments []book.Segment, fromID int64, delta int) (book.Segment, bool) {
	from := -1
	for i, s := range segments {
		if s.ID == fromID {
			from = i
			break
		}
	}
	if from < 0 {
		return book.Segment{}, false
	}
	for i := from + delta; i >= 0 && i < len(segments); i += delta {
		if segments[i].Playable() {
			return segments[i], true
		}
	}
	return book.Segment{}, false
}

// adjustSegmentGap nudges the inter-segment silence. The scheduler reads
// it at every transition, so the change applies from the next one.
func (m Model) adjustSegmentGap(delta time.Duration) (tea.Model, tea.Cmd) {
	gap := clampDuration(m.stateMgr.SegmentGap()+delta, maxSegmentGap)
	if err := m.stateMgr.SetSegmentGap(gap); err != nil {
		return m, m.notify("Save setting: " + err.Error())
	}
	return m, m.notify(fmt.Sprintf("Segment gap: %dms", gap.Milliseconds()))
}

// adjustDividerPause nudges the default divider silence.
func (m Model) adjustDividerPause(delta time.Duration) (tea.Model, tea.Cmd) {
	pause := clampDuration(m.stateMgr.DividerPause()+delta, maxDividerPause)
	if err := m.stateMgr.SetDividerPause(pause); err != nil {
		return m, m.notify("Save setting: " + err.Error())
	}
	return m, m.notify(fmt.Sprintf("Divider pause: %dms", pause.Milliseconds()))
}

func clampDuration(d, maxD time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if d > maxD {
		return maxD
	}
	return d
}
