package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/fable/internal/playback"
	"github.com/llehouerou/fable/internal/ui/action"
	"github.com/llehouerou/fable/internal/ui/confirm"
	"github.com/llehouerou/fable/internal/ui/helpbindings"
	"github.com/llehouerou/fable/internal/ui/textinput"
)

// Update handles messages and returns the updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// A pending cover transmission was rendered with the previous frame.
	m.pendingCoverTx = ""

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case PlaybackStateMsg:
		return m.handlePlaybackState(msg)

	case PlaybackItemMsg:
		return m.handlePlaybackItem(msg)

	case PlaybackErrorMsg:
		cmd := m.notify("Playback error: " + msg.Err.Error())
		return m, tea.Batch(cmd, m.watchPlayback())

	case PlaybackClosedMsg:
		// Scheduler is gone; stop watching. Happens only during shutdown.
		return m, nil

	case TickMsg:
		if m.scheduler.State() == playback.StatePlaying {
			return m, tickCmd()
		}
		return m, nil

	case SynthUpdateMsg:
		return m.handleSynthUpdate(msg)

	case EngineHealthMsg:
		m.engineOnline = msg.Online
		return m, nil

	case EngineHealthTickMsg:
		if m.engine == nil {
			return m, nil
		}
		return m, tea.Batch(m.checkEngineCmd(), engineHealthTickCmd())

	case ImportResultMsg:
		return m.handleImportResult(msg)

	case StderrMsg:
		cmd := m.notify(msg.Line)
		return m, tea.Batch(cmd, watchStderr())

	case NotificationClearMsg:
		m.clearNotification(msg.ID)
		return m, nil

	case action.Msg:
		return m.handleAction(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.resizePanes()
	m.prepareCover() // re-transmit at the new cell size
	m.confirm.SetSize(msg.Width, msg.Height)
	m.textInput.SetSize(msg.Width, msg.Height)
	m.help.SetSize(msg.Width, msg.Height)
	return m, nil
}

func (m Model) handlePlaybackState(msg PlaybackStateMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.watchPlayback()}
	if msg.Current == playback.StatePlaying {
		cmds = append(cmds, tickCmd())
	}
	// The status bar appears and disappears with activity.
	m.resizePanes()
	return m, tea.Batch(cmds...)
}

func (m Model) handlePlaybackItem(msg PlaybackItemMsg) (tea.Model, tea.Cmd) {
	m.refreshNowPlaying(msg.ChapterID, msg.Index)
	// Follow the narration in the segments pane when the playing chapter
	// is the one on screen.
	if c, ok := m.chapters.Selected(); ok && c.ID == msg.ChapterID {
		m.segments.CenterOn(msg.Index)
	}
	return m, m.watchPlayback()
}

// refreshNowPlaying updates the status bar labels for the item that just
// started.
func (m *Model) refreshNowPlaying(chapterID int64, index int) {
	m.npIndex = index + 1
	c, err := m.store.Chapter(chapterID)
	if err != nil {
		return
	}
	m.npChapter = c.Title
	if counts, err := m.store.CountSegments(chapterID); err == nil {
		m.npCount = counts.Total
	}
	if b, err := m.store.Book(c.BookID); err == nil {
		m.npBook = b.Title
	}
}

// handleAction routes popup results.
func (m Model) handleAction(msg action.Msg) (tea.Model, tea.Cmd) {
	switch a := msg.Action.(type) {
	case helpbindings.Close:
		m.showHelp = false
		return m, nil
	case confirm.Result:
		return m.handleConfirmResult(a)
	case textinput.Result:
		return m.handleTextInputResult(a)
	}
	return m, nil
}
