package app

import (
	"time"

	"github.com/llehouerou/fable/internal/book"
	"github.com/llehouerou/fable/internal/mpris"
	"github.com/llehouerou/fable/internal/playback"
	"github.com/llehouerou/fable/internal/player"
	"github.com/llehouerou/fable/internal/state"
)

// MediaController drives the narration session from media keys. It runs
// on the D-Bus goroutine, so it only touches collaborators that are safe
// to call concurrently; the tea model is never reached from here.
type MediaController struct {
	scheduler playback.Scheduler
	device    player.Device
	store     *book.Store
	stateMgr  *state.Manager
}

var _ mpris.Controller = (*MediaController)(nil)

// NewMediaController creates the MPRIS-facing controller.
func NewMediaController(
	scheduler playback.Scheduler,
	device player.Device,
	store *book.Store,
	stateMgr *state.Manager,
) *MediaController {
	return &MediaController{
		scheduler: scheduler,
		device:    device,
		store:     store,
		stateMgr:  stateMgr,
	}
}

// PlayPause toggles narration. While idle it resumes continuous playback
// from the saved reading position.
func (c *MediaController) PlayPause() error {
	if c.scheduler.State() != playback.StateIdle {
		c.scheduler.Stop()
		return nil
	}

	nav, err := c.stateMgr.GetNavigation()
	if err != nil || nav == nil || nav.ChapterID == 0 {
		return nil
	}

	segments, err := c.store.Segments(nav.ChapterID)
	if err != nil || len(segments) == 0 {
		return nil
	}

	target, ok := resumeTarget(segments, nav.SegmentID)
	if !ok {
		return nil
	}
	return c.scheduler.Play(nav.ChapterID, playback.AudioItem{
		ID:    target.ID,
		Path:  target.AudioPath,
		Index: target.Position,
	}, true)
}

// resumeTarget picks the saved segment when it is playable, or the first
// playable segment at or after it.
func resumeTarget(segments []book.Segment, segmentID int64) (book.Segment, bool) {
	from := 0
	if segmentID != 0 {
		for i, s := range segments {
			if s.ID == segmentID {
				from = i
				break
			}
		}
	}
	for i := from; i < len(segments); i++ {
		if segments[i].Playable() {
			return segments[i], true
		}
	}
	return book.Segment{}, false
}

// Stop halts narration.
func (c *MediaController) Stop() error {
	c.scheduler.Stop()
	return nil
}

// Next moves to the next narrated segment of the playing chapter.
func (c *MediaController) Next() error {
	return c.jump(1)
}

// Previous moves to the previous narrated segment.
func (c *MediaController) Previous() error {
	return c.jump(-1)
}

func (c *MediaController) jump(delta int) error {
	chapterID := c.scheduler.ActiveChapterID()
	activeID := c.scheduler.ActiveItemID()
	if chapterID == 0 || activeID == 0 {
		return nil
	}
	segments, err := c.store.Segments(chapterID)
	if err != nil {
		return err
	}
	target, ok := adjacentPlayable(segments, activeID, delta)
	if !ok {
		return nil
	}
	return c.scheduler.Play(chapterID, playback.AudioItem{
		ID:    target.ID,
		Path:  target.AudioPath,
		Index: target.Position,
	}, true)
}

// Playing reports whether a narration session is active.
func (c *MediaController) Playing() bool {
	return c.scheduler.State() != playback.StateIdle
}

// NowPlaying describes the active segment for media surfaces.
func (c *MediaController) NowPlaying() (mpris.Track, bool) {
	chapterID := c.scheduler.ActiveChapterID()
	itemID := c.scheduler.ActiveItemID()
	if chapterID == 0 || itemID == 0 {
		return mpris.Track{}, false
	}

	seg, err := c.store.Segment(itemID)
	if err != nil {
		return mpris.Track{}, false
	}
	chapter, err := c.store.Chapter(chapterID)
	if err != nil {
		return mpris.Track{}, false
	}

	track := mpris.Track{
		ID:       seg.ID,
		Chapter:  chapter.Title,
		Index:    seg.Position,
		Duration: time.Duration(seg.DurationMs) * time.Millisecond,
	}
	if counts, err := c.store.CountSegments(chapterID); err == nil {
		track.Count = counts.Total
	}
	if b, err := c.store.Book(chapter.BookID); err == nil {
		track.Book = b.Title
		track.Author = b.Author
		track.CoverPath = b.CoverPath
	}
	return track, true
}

// Position reports how far into the current segment narration is.
func (c *MediaController) Position() time.Duration {
	if c.scheduler.State() != playback.StatePlaying {
		return 0
	}
	return c.device.Position()
}

// HasNext reports whether a later narrated segment exists.
func (c *MediaController) HasNext() bool {
	return c.hasAdjacent(1)
}

// HasPrevious reports whether an earlier narrated segment exists.
func (c *MediaController) HasPrevious() bool {
	return c.hasAdjacent(-1)
}

func (c *MediaController) hasAdjacent(delta int) bool {
	chapterID := c.scheduler.ActiveChapterID()
	activeID := c.scheduler.ActiveItemID()
	if chapterID == 0 || activeID == 0 {
		return false
	}
	segments, err := c.store.Segments(chapterID)
	if err != nil {
		return false
	}
	_, ok := adjacentPlayable(segments, activeID, delta)
	return ok
}
