package player

// State represents the device state machine.
//
// Valid transitions:
//   - Stopped → Playing (via Load + Play)
//   - Playing → Paused  (via Pause)
//   - Playing → Stopped (natural end of stream, or Load replacing it)
//   - Paused  → Stopped (via Load replacing the stream)
//
// There is no resume: the scheduler never pauses mid-item for the user, it
// only pauses to silence a superseded stream before loading the next one.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a stream is audible or paused mid-stream.
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}
