package playback

import "time"

// Item is one element of a chapter's playable sequence: either an AudioItem
// to voice or a PauseItem to wait out. The set of implementations is closed;
// items are consumed in index order during auto-advance.
type Item interface {
	itemID() int64
	itemIndex() int
}

// AudioItem is a sequence element with synthesized narration on disk.
// Path is empty while the segment has not been synthesized yet.
type AudioItem struct {
	ID    int64
	Path  string
	Index int
}

func (a AudioItem) itemID() int64  { return a.ID }
func (a AudioItem) itemIndex() int { return a.Index }

// PauseItem is a silent divider between narrated segments. It carries no
// audio, only the silence duration.
type PauseItem struct {
	ID       int64
	Duration time.Duration
	Index    int
}

func (p PauseItem) itemID() int64  { return p.ID }
func (p PauseItem) itemIndex() int { return p.Index }
