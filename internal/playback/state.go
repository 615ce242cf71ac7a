package playback

// State represents the scheduler state.
type State int

const (
	// StateIdle means nothing is loaded and no advance is pending.
	StateIdle State = iota
	// StatePlaying means an audio item is loaded into the output device.
	StatePlaying
	// StateWaiting means the scheduler is between items, waiting out a
	// divider pause or the inter-item gap. Not a user-facing pause.
	StateWaiting
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePlaying:
		return "Playing"
	case StateWaiting:
		return "Waiting"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a playback run is in progress (audible or
// waiting between items).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StateWaiting
}
