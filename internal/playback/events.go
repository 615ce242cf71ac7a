package playback

// StateChange is emitted when the scheduler state changes.
type StateChange struct {
	Previous State
	Current  State
}

// ItemChange is emitted when playback starts on a sequence item.
//
// Emitted by:
//   - Play: every successful start, user-initiated or auto-advance
//
// NOT emitted by:
//   - Stop, toggle-stop, or natural end of chapter: those emit a
//     StateChange back to Idle instead
//
// The app should handle item-related side effects (scroll-to-active,
// desktop notification, MPRIS metadata) in response to this event.
type ItemChange struct {
	PreviousID int64 // 0 if nothing was active before
	ItemID     int64
	ChapterID  int64
	Index      int
}

// ErrorEvent is emitted when a genuine device failure interrupts the
// current playback. Superseded requests and stale callbacks stay silent.
type ErrorEvent struct {
	Op     string // e.g. "load", "play", "advance"
	ItemID int64  // 0 when the failure is not tied to one item
	Err    error
}
