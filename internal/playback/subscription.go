package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	StateChanged <-chan StateChange
	ItemChanged  <-chan ItemChange
	Error        <-chan ErrorEvent
	Done         <-chan struct{}

	// Internal write channels
	stateCh chan StateChange
	itemCh  chan ItemChange
	errorCh chan ErrorEvent
	doneCh  chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		stateCh: make(chan StateChange, eventBufferSize),
		itemCh:  make(chan ItemChange, eventBufferSize),
		errorCh: make(chan ErrorEvent, eventBufferSize),
		doneCh:  make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.ItemChanged = s.itemCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// sendState sends a state change event (non-blocking).
func (s *Subscription) sendState(e StateChange) {
	select {
	case s.stateCh <- e:
	default:
		// Drop if buffer full
	}
}

// sendItem sends an item change event (non-blocking).
func (s *Subscription) sendItem(e ItemChange) {
	select {
	case s.itemCh <- e:
	default:
	}
}

// sendError sends an error event (non-blocking).
func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
	}
}
