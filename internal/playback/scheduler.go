package playback

import (
	"errors"
	"time"
)

// Sentinel errors returned by Scheduler methods. Runtime device failures
// are not returned; they are reported through the Notifier and the error
// event channel.
var (
	// ErrNotAudio is returned when Play is called with a PauseItem.
	// Dividers are reached only through auto-advance.
	ErrNotAudio = errors.New("playback: item is not an audio item")

	// ErrNoAudio is returned when Play is called with an audio item that
	// has no synthesized file yet.
	ErrNoAudio = errors.New("playback: item has no audio to play")

	// ErrClosed is returned after the scheduler has been shut down.
	ErrClosed = errors.New("playback: scheduler is closed")
)

// SequenceSource supplies a chapter's items ordered by index. It is read
// again at every advance step, never cached across steps, so edits made
// while a chapter plays are respected.
type SequenceSource interface {
	Items(chapterID int64) ([]Item, error)
}

// GapProvider supplies the silence inserted between consecutive audio
// items. It is consulted at each transition, so a settings change takes
// effect on the very next one.
type GapProvider interface {
	SegmentGap() time.Duration
}

// GapFunc adapts a function to the GapProvider interface.
type GapFunc func() time.Duration

// SegmentGap returns f().
func (f GapFunc) SegmentGap() time.Duration { return f() }

// Notifier surfaces fatal playback errors to the user. Fire-and-forget
// from the scheduler's viewpoint.
type Notifier interface {
	Report(title, message string)
}

// Scheduler plays a chapter's segment sequence as one continuous stream:
// it starts, stops and auto-advances playback over a single output device,
// waits out divider pauses, skips items with nothing to play, and ignores
// asynchronous callbacks left over from superseded playback attempts.
//
// The scheduler is the only component allowed to drive the device.
type Scheduler interface {
	// Play starts playback of an audio item from the given chapter. If that
	// item is already the one audible, Play stops it instead (toggle-stop);
	// playing it a third time restarts it from the beginning. With
	// continuous set, the scheduler walks the chapter's sequence when the
	// item ends.
	//
	// Play returns an error only for contract violations (pause item, item
	// without audio, closed scheduler). Device failures during the start
	// are classified internally: superseded requests stay silent, genuine
	// errors are reported via the Notifier and reset the session to idle.
	Play(chapterID int64, item Item, continuous bool) error

	// Stop halts playback, rewinds the device and discards any pending
	// advance.
	Stop()

	// ActiveItemID returns the id of the item loaded into the device, or 0
	// when idle.
	ActiveItemID() int64

	// ActiveChapterID returns the chapter of the most recent run, or 0 if
	// none was started.
	ActiveChapterID() int64

	// Continuous reports whether auto-advance is on.
	Continuous() bool

	// State returns the current scheduler state.
	State() State

	// Subscribe creates a new event subscription.
	Subscribe() *Subscription

	// Close shuts down the scheduler and signals subscribers. The device
	// itself stays open; its owner closes it separately.
	Close() error
}
