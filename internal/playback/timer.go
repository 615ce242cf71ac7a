package playback

import (
	"sync"
	"time"
)

// pauseTimer is the single pending delay between sequence items. Three call
// sites must all be able to discard it without double-firing: Stop, every
// new Play, and each advance step scheduling the next delay.
//
// All methods require the owning scheduler's mutex to be held. The fire
// callback re-acquires that mutex before running, and re-checks seq under
// it, so a callback that already left time.AfterFunc but has not run yet
// still observes a cancel or replacement and becomes a no-op.
type pauseTimer struct {
	mu  *sync.Mutex
	seq int64
	t   *time.Timer
}

func newPauseTimer(mu *sync.Mutex) *pauseTimer {
	return &pauseTimer{mu: mu}
}

// schedule arms the timer, replacing and invalidating any pending delay.
// fn runs with the mutex held once d elapses.
func (p *pauseTimer) schedule(d time.Duration, fn func()) {
	p.seq++
	seq := p.seq
	if p.t != nil {
		p.t.Stop()
	}
	p.t = time.AfterFunc(d, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if seq != p.seq {
			return
		}
		p.t = nil
		fn()
	})
}

// cancel discards the pending delay, if any. Idempotent.
func (p *pauseTimer) cancel() {
	p.seq++
	if p.t != nil {
		p.t.Stop()
		p.t = nil
	}
}

// pending reports whether a delay is armed.
func (p *pauseTimer) pending() bool {
	return p.t != nil
}
