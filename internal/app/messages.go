package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/fable/internal/playback"
	"github.com/llehouerou/fable/internal/tts"
)

// Message category interfaces for type-based routing in Update().

// PlaybackMessage is implemented by messages coming from the playback
// scheduler's subscription.
type PlaybackMessage interface {
	tea.Msg
	playbackMessage()
}

// SynthesisMessage is implemented by messages coming from the narration
// worker.
type SynthesisMessage interface {
	tea.Msg
	synthesisMessage()
}

// TickMsg drives the progress display while a segment is narrated.
type TickMsg time.Time

func (TickMsg) playbackMessage() {}

// PlaybackStateMsg wraps a scheduler state change.
type PlaybackStateMsg playback.StateChange

func (PlaybackStateMsg) playbackMessage() {}

// PlaybackItemMsg wraps an item change: narration moved to a new segment.
type PlaybackItemMsg playback.ItemChange

func (PlaybackItemMsg) playbackMessage() {}

// PlaybackErrorMsg wraps a genuine device failure reported by the
// scheduler. Superseded requests and stale callbacks never reach here.
type PlaybackErrorMsg playback.ErrorEvent

func (PlaybackErrorMsg) playbackMessage() {}

// PlaybackClosedMsg is sent when the scheduler shuts down.
type PlaybackClosedMsg struct{}

func (PlaybackClosedMsg) playbackMessage() {}

// SynthUpdateMsg wraps a narration worker status event.
type SynthUpdateMsg tts.Update

func (SynthUpdateMsg) synthesisMessage() {}

// EngineHealthMsg reports whether the speech engine answered its health
// check.
type EngineHealthMsg struct {
	Online bool
}

func (EngineHealthMsg) synthesisMessage() {}

// EngineHealthTickMsg schedules the next periodic health check.
type EngineHealthTickMsg struct{}

func (EngineHealthTickMsg) synthesisMessage() {}

// ImportResultMsg reports a finished manuscript import.
type ImportResultMsg struct {
	BookID int64
	Title  string
	Err    error
}

// StderrMsg carries a line a C library wrote to fd 2 while the TUI owned
// the terminal.
type StderrMsg struct {
	Line string
}

// Notification is a transient message line at the bottom of the screen.
type Notification struct {
	ID      int64
	Message string
}

// NotificationClearMsg removes a notification after its display time.
type NotificationClearMsg struct {
	ID int64
}

// notificationDuration is how long notifications stay visible.
const notificationDuration = 3 * time.Second

func notificationClearCmd(id int64) tea.Cmd {
	return tea.Tick(notificationDuration, func(time.Time) tea.Msg {
		return NotificationClearMsg{ID: id}
	})
}

// Contexts passed through the confirm and textinput popups.

type renameBookContext struct{ ID int64 }

type renameChapterContext struct{ ID int64 }

type editSegmentContext struct{ ID int64 }

type importContext struct{}

type deleteBookContext struct {
	ID    int64
	Title string
}

type deleteSegmentContext struct{ ID int64 }
