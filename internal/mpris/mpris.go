//go:build linux

package mpris

import (
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
)

// Track describes the segment currently loaded, for media surfaces.
type Track struct {
	ID        int64
	Book      string
	Author    string
	Chapter   string
	Index     int // 0-based position within the chapter
	Count     int // segments in the chapter
	Duration  time.Duration
	CoverPath string
}

// Controller is the slice of the application that media keys drive.
// Narration has no pause, so PlayPause toggles between playing and
// stopped.
type Controller interface {
	PlayPause() error
	Stop() error
	Next() error
	Previous() error
	Playing() bool
	NowPlaying() (Track, bool)
	Position() time.Duration
	HasNext() bool
	HasPrevious() bool
}

// Adapter exposes the narration session as an MPRIS player over D-Bus.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter.
func New(c Controller) (*Adapter, error) {
	a := &Adapter{}
	a.server = server.NewServer("fable", &rootAdapter{}, &playerAdapter{controller: c})

	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Fable", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/wav", "audio/x-wav"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	controller Controller
}

func (p *playerAdapter) Next() error {
	return p.controller.Next()
}

func (p *playerAdapter) Previous() error {
	return p.controller.Previous()
}

func (p *playerAdapter) Pause() error {
	// Segments are short; stopping is the closest meaningful action.
	return p.controller.Stop()
}

func (p *playerAdapter) PlayPause() error {
	return p.controller.PlayPause()
}

func (p *playerAdapter) Stop() error {
	return p.controller.Stop()
}

func (p *playerAdapter) Play() error {
	if p.controller.Playing() {
		return nil
	}
	return p.controller.PlayPause()
}

func (p *playerAdapter) Seek(_ types.Microseconds) error {
	return nil // Not supported - playback is per-segment
}

func (p *playerAdapter) SetPosition(_ string, _ types.Microseconds) error {
	return nil // Not supported
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	if p.controller.Playing() {
		return types.PlaybackStatusPlaying, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	track, ok := p.controller.NowPlaying()
	if !ok {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId:     dbus.ObjectPath(formatTrackID(track.ID)),
		Length:      types.Microseconds(track.Duration.Microseconds()),
		Title:       fmt.Sprintf("%s (%d/%d)", track.Chapter, track.Index+1, track.Count),
		Album:       track.Book,
		TrackNumber: track.Index + 1,
	}
	if track.Author != "" {
		meta.Artist = []string{track.Author}
	}
	if track.CoverPath != "" {
		meta.ArtUrl = "file://" + track.CoverPath
	}

	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	return p.controller.Position().Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.controller.HasNext(), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.controller.HasPrevious(), nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func formatTrackID(id int64) string {
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%d", id)
}
