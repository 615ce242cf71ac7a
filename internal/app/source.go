package app

import (
	"time"

	"github.com/llehouerou/fable/internal/book"
	"github.com/llehouerou/fable/internal/notify"
	"github.com/llehouerou/fable/internal/playback"
)

// SegmentSource is the slice of the book store the sequence source reads.
type SegmentSource interface {
	Segments(chapterID int64) ([]book.Segment, error)
}

// PauseDefaults supplies the fallback silence for dividers without their
// own duration.
type PauseDefaults interface {
	DividerPause() time.Duration
}

// sequenceSource adapts the book store to the scheduler's sequence
// interface. It is called on every advance step, so playback always sees
// the chapter as it is right now, edits included.
type sequenceSource struct {
	store    SegmentSource
	defaults PauseDefaults
}

// NewSequenceSource builds the scheduler's view of a chapter from the
// book store.
func NewSequenceSource(store SegmentSource, defaults PauseDefaults) playback.SequenceSource {
	return &sequenceSource{store: store, defaults: defaults}
}

// Items maps a chapter's segments to playable items in position order.
// Narrated segments map whether or not audio exists yet; skipping the
// silent ones is the scheduler's call. Dividers carry their own pause or
// fall back to the configured default.
func (s *sequenceSource) Items(chapterID int64) ([]playback.Item, error) {
	segments, err := s.store.Segments(chapterID)
	if err != nil {
		return nil, err
	}

	items := make([]playback.Item, 0, len(segments))
	for _, seg := range segments {
		switch seg.Kind {
		case book.KindDivider:
			pause := time.Duration(seg.PauseMs) * time.Millisecond
			if pause == 0 {
				pause = s.defaults.DividerPause()
			}
			items = append(items, playback.PauseItem{
				ID:       seg.ID,
				Duration: pause,
				Index:    seg.Position,
			})
		default:
			items = append(items, playback.AudioItem{
				ID:    seg.ID,
				Path:  seg.AudioPath,
				Index: seg.Position,
			})
		}
	}
	return items, nil
}

// desktopNotifier surfaces fatal playback errors as desktop
// notifications.
type desktopNotifier struct {
	n notify.Notifier
}

// NewPlaybackNotifier adapts the desktop notifier to the scheduler's
// error reporting interface. n may be nil; reports are then dropped.
func NewPlaybackNotifier(n notify.Notifier) playback.Notifier {
	return &desktopNotifier{n: n}
}

func (d *desktopNotifier) Report(title, message string) {
	if d.n == nil {
		return
	}
	_, _ = d.n.Notify(notify.Notification{
		Title:   title,
		Body:    message,
		Urgency: notify.UrgencyCritical,
		Timeout: -1,
	})
}
