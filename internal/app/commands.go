package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/fable/internal/book"
	"github.com/llehouerou/fable/internal/importer"
	"github.com/llehouerou/fable/internal/stderr"
)

const (
	tickInterval        = 500 * time.Millisecond
	engineCheckInterval = 30 * time.Second
	engineCheckTimeout  = 3 * time.Second
)

// tickCmd drives the playback progress display.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// watchPlayback waits for the next scheduler event and wraps it as a
// message. Re-armed after every received event.
func (m Model) watchPlayback() tea.Cmd {
	sub := m.sub
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return PlaybackStateMsg(e)
		case e := <-sub.ItemChanged:
			return PlaybackItemMsg(e)
		case e := <-sub.Error:
			return PlaybackErrorMsg(e)
		case <-sub.Done:
			return PlaybackClosedMsg{}
		}
	}
}

// watchSynthesis waits for the next narration worker event.
func (m Model) watchSynthesis() tea.Cmd {
	updates := m.worker.Updates()
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return nil
		}
		return SynthUpdateMsg(u)
	}
}

// watchStderr forwards lines C libraries wrote to fd 2 (ALSA is the usual
// offender) so they show as notifications instead of corrupting the TUI.
func watchStderr() tea.Cmd {
	return func() tea.Msg {
		line, ok := <-stderr.Messages
		if !ok {
			return nil
		}
		return StderrMsg{Line: line}
	}
}

// checkEngineCmd probes the speech engine once.
func (m Model) checkEngineCmd() tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), engineCheckTimeout)
		defer cancel()
		return EngineHealthMsg{Online: engine.Health(ctx) == nil}
	}
}

func engineHealthTickCmd() tea.Cmd {
	return tea.Tick(engineCheckInterval, func(time.Time) tea.Msg {
		return EngineHealthTickMsg{}
	})
}

// importCmd parses a manuscript and stores it as a new book.
func (m Model) importCmd(path string) tea.Cmd {
	store := m.store
	opts := importer.Options{MaxSegmentChars: m.cfg.GetImportConfig().MaxSegmentChars}
	return func() tea.Msg {
		draft, err := importer.ParseFile(path, opts)
		if err != nil {
			return ImportResultMsg{Err: err}
		}
		applyDividerDefault(draft, m.stateMgr.DividerPause().Milliseconds())
		id, err := store.ImportBook(*draft)
		if err != nil {
			return ImportResultMsg{Err: err}
		}
		return ImportResultMsg{BookID: id, Title: draft.Title}
	}
}

// applyDividerDefault stamps the configured silence onto dividers the
// importer left at zero.
func applyDividerDefault(d *book.Draft, pauseMs int64) {
	for ci := range d.Chapters {
		for si := range d.Chapters[ci].Segments {
			seg := &d.Chapters[ci].Segments[si]
			if seg.Kind == book.KindDivider && seg.PauseMs == 0 {
				seg.PauseMs = pauseMs
			}
		}
	}
}
