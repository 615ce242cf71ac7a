package playback

import (
	"errors"
	"sync"

	"github.com/llehouerou/fable/internal/player"
)

// Verify schedulerImpl implements Scheduler at compile time.
var _ Scheduler = (*schedulerImpl)(nil)

// Operation names carried on error events.
const (
	opLoad    = "load"
	opPlay    = "play"
	opAdvance = "advance"
)

type schedulerImpl struct {
	mu sync.Mutex

	device   player.Device
	source   SequenceSource
	gap      GapProvider
	notifier Notifier

	// Session fields, all guarded by mu. generation is bumped on every
	// start; device and timer callbacks capture the generation they were
	// scheduled under and must no-op once it is no longer current. Stale
	// asynchronous completions must never mutate a session they no longer
	// belong to.
	chapterID  int64
	activeID   int64
	continuous bool
	generation int64
	state      State

	timer *pauseTimer

	subs   []*Subscription
	subsMu sync.RWMutex

	closed bool
}

// New creates a playback scheduler over the given output device. The
// scheduler takes exclusive control of the device; nothing else may drive
// it while the scheduler lives.
func New(device player.Device, source SequenceSource, gap GapProvider, notifier Notifier) Scheduler {
	s := &schedulerImpl{
		device:   device,
		source:   source,
		gap:      gap,
		notifier: notifier,
		state:    StateIdle,
	}
	s.timer = newPauseTimer(&s.mu)
	return s
}

// Play starts playback of an audio item, or stops it if it is already the
// one audible.
func (s *schedulerImpl) Play(chapterID int64, item Item, continuous bool) error {
	audio, ok := item.(AudioItem)
	if !ok {
		return ErrNotAudio
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	// Replaying the audible item is a toggle-stop.
	if audio.ID != 0 && audio.ID == s.activeID && s.device.State() == player.Playing {
		s.timer.cancel()
		s.device.Pause()
		s.activeID = 0
		s.continuous = false
		s.setStateLocked(StateIdle)
		return nil
	}

	if audio.Path == "" {
		return ErrNoAudio
	}

	s.startLocked(chapterID, audio, continuous)
	return nil
}

// Stop halts playback and discards any pending advance. The generation is
// left alone: no new playback is starting, and outstanding callbacks are
// already neutralized by the cancelled timer and the cleared active item.
func (s *schedulerImpl) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.stopLocked()
}

func (s *schedulerImpl) stopLocked() {
	s.timer.cancel()
	s.device.Pause()
	_ = s.device.Rewind()
	s.device.SetHandlers(nil, nil)
	s.activeID = 0
	s.continuous = false
	s.setStateLocked(StateIdle)
}

// startLocked begins playback of an audio item, superseding whatever the
// scheduler was doing. Failures are classified here: superseded requests
// stay silent, genuine errors are reported and reset the session to idle.
func (s *schedulerImpl) startLocked(chapterID int64, item AudioItem, continuous bool) {
	// Supersede the current run. The device is stopped here regardless of
	// whether a previous generation's stop already happened; ordering
	// between the two is not guaranteed.
	s.timer.cancel()
	s.device.Pause()
	_ = s.device.Rewind()
	s.device.SetHandlers(nil, nil)

	s.generation++
	g := s.generation
	s.chapterID = chapterID
	s.continuous = continuous
	prevID := s.activeID
	s.activeID = 0

	if err := s.device.Load(item.Path); err != nil {
		s.failLocked(opLoad, item.ID, err)
		return
	}

	// The device strips the previous handlers when the new ones are set,
	// so a reused device never leaks callbacks across plays.
	s.device.SetHandlers(
		func() { s.handleEnded(g, item) },
		func(err error) { s.handleDeviceError(g, err) },
	)

	if err := s.device.Play(); err != nil {
		if errors.Is(err, player.ErrSuperseded) {
			// A newer request aborted this one before it started. Expected
			// under rapid interaction; the newer request owns the session.
			return
		}
		s.failLocked(opPlay, item.ID, err)
		return
	}

	s.activeID = item.ID
	s.setStateLocked(StatePlaying)
	s.emitItem(ItemChange{
		PreviousID: prevID,
		ItemID:     item.ID,
		ChapterID:  chapterID,
		Index:      item.Index,
	})
}

// handleEnded runs when the device reports natural end of the current
// stream. g is the generation the handler was registered under; a mismatch
// means a newer play superseded this one and the event is stale.
func (s *schedulerImpl) handleEnded(g int64, item AudioItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || g != s.generation {
		return
	}
	s.activeID = 0
	if !s.continuous {
		s.setStateLocked(StateIdle)
		return
	}
	s.advanceLocked(item.Index+1, g)
}

// handleDeviceError runs when the device reports a failure for the current
// stream. Errors that arrive after an intentional stop or supersede carry
// a stale generation or find no active item, and stay silent.
func (s *schedulerImpl) handleDeviceError(g int64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || g != s.generation || s.activeID == 0 {
		return
	}
	s.failLocked(opPlay, s.activeID, err)
}

// advanceLocked walks the chapter sequence forward from startIndex: plays
// the next audio item after the inter-item gap, waits out divider pauses,
// and skips items with nothing to play. The sequence is re-read from the
// source on every step so edits made during playback are respected. The
// walk aborts as soon as g stops being the current generation, and always
// moves strictly forward.
func (s *schedulerImpl) advanceLocked(startIndex int, g int64) {
	for idx := startIndex; ; idx++ {
		if g != s.generation {
			return
		}

		items, err := s.source.Items(s.chapterID)
		if err != nil {
			s.failLocked(opAdvance, 0, err)
			return
		}
		if idx >= len(items) {
			// Ran past the last item: the chapter is done.
			s.stopLocked()
			return
		}

		switch next := items[idx].(type) {
		case PauseItem:
			after := idx + 1
			s.setStateLocked(StateWaiting)
			s.timer.schedule(next.Duration, func() {
				// The generation may have moved on while waiting.
				s.advanceLocked(after, g)
			})
			return
		case AudioItem:
			if next.Path == "" {
				// Not synthesized yet: move on silently.
				continue
			}
			item := next
			s.setStateLocked(StateWaiting)
			s.timer.schedule(s.gap.SegmentGap(), func() {
				if g != s.generation {
					return
				}
				s.startLocked(s.chapterID, item, true)
			})
			return
		}
	}
}

// failLocked reports a genuine playback failure and resets the session to
// idle. Every failing path must land in a terminal, inspectable state; no
// retry is attempted, the user re-initiates.
func (s *schedulerImpl) failLocked(op string, itemID int64, err error) {
	s.timer.cancel()
	s.device.SetHandlers(nil, nil)
	s.activeID = 0
	s.continuous = false
	s.setStateLocked(StateIdle)
	if s.notifier != nil {
		s.notifier.Report("Playback error", err.Error())
	}
	s.emitError(ErrorEvent{Op: op, ItemID: itemID, Err: err})
}

func (s *schedulerImpl) setStateLocked(state State) {
	if state == s.state {
		return
	}
	prev := s.state
	s.state = state
	s.emitState(StateChange{Previous: prev, Current: state})
}

// ActiveItemID returns the id of the item loaded into the device, or 0.
func (s *schedulerImpl) ActiveItemID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// ActiveChapterID returns the chapter of the most recent run, or 0.
func (s *schedulerImpl) ActiveChapterID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chapterID
}

// Continuous reports whether auto-advance is on.
func (s *schedulerImpl) Continuous() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.continuous
}

// State returns the current scheduler state.
func (s *schedulerImpl) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe creates a new event subscription.
func (s *schedulerImpl) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// Close shuts down the scheduler.
func (s *schedulerImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.timer.cancel()
	s.device.Pause()
	s.device.SetHandlers(nil, nil)
	s.activeID = 0
	s.continuous = false
	s.state = StateIdle
	s.mu.Unlock()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()

	return nil
}

func (s *schedulerImpl) emitState(e StateChange) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendState(e)
	}
}

func (s *schedulerImpl) emitItem(e ItemChange) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendItem(e)
	}
}

func (s *schedulerImpl) emitError(e ErrorEvent) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendError(e)
	}
}
