package player

import (
	"errors"
	"time"
)

// ErrSuperseded reports that a play request lost the race against a newer
// Load or Stop and was dropped before audio started. Callers treat it as a
// benign cancellation, not a failure.
var ErrSuperseded = errors.New("player: play request superseded")

// ErrNoSource reports that Play was called with nothing loaded.
var ErrNoSource = errors.New("player: no source loaded")

// Device is the single audio output the playback scheduler drives. The
// device is reused across items: Load replaces the current stream, and
// SetHandlers replaces the previous callbacks so none leak across plays.
//
// The ended handler fires once when the loaded stream finishes naturally;
// the failed handler fires instead when the stream dies with an error.
// Neither fires for streams replaced by a newer Load or silenced by Pause.
// Handlers are invoked on their own goroutine without device locks held.
type Device interface {
	Load(path string) error
	Play() error
	Pause()
	Rewind() error
	State() State
	Position() time.Duration
	Duration() time.Duration
	SetHandlers(ended func(), failed func(error))
	Close() error
}
