//go:build !linux

package mpris

import "time"

// Track describes the segment currently loaded, for media surfaces.
type Track struct {
	ID        int64
	Book      string
	Author    string
	Chapter   string
	Index     int
	Count     int
	Duration  time.Duration
	CoverPath string
}

// Controller is the slice of the application that media keys drive.
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

// Adapter is a no-op on non-Linux platforms.
type Adapter struct{}

// New returns a no-op adapter on non-Linux platforms.
func New(_ Controller) (*Adapter, error) {
	return &Adapter{}, nil
}

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}
