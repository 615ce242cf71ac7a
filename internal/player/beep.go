package player

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

const (
	extWAV  = ".wav"
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extOGG  = ".ogg"
)

// The speaker is initialized once for the process, at the sample rate of
// the first loaded file. Later files at other rates are resampled.
var (
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

// Player is the beep-backed audio output device.
type Player struct {
	mu sync.Mutex

	state    State
	ctrl     *beep.Ctrl
	streamer beep.StreamSeekCloser
	play     beep.Streamer // streamer, resampled if needed
	format   beep.Format
	file     *os.File
	path     string

	// loadSeq identifies the loaded stream. The end-of-stream callback
	// captures it; a mismatch means the stream was replaced while the
	// callback was in flight and the event is dropped.
	loadSeq int64

	onEnded  func()
	onFailed func(error)
}

var _ Device = (*Player)(nil)

// New creates an idle player. The speaker itself is initialized lazily on
// the first Load.
func New() *Player {
	return &Player{state: Stopped}
}

// Load replaces the current stream with the given audio file. Whatever was
// playing is cleared from the speaker first; its end callback never fires.
func (p *Player) Load(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.clearLocked()

	ext := strings.ToLower(filepath.Ext(path))
	if ext != extWAV && ext != extMP3 && ext != extFLAC && ext != extOGG {
		return fmt.Errorf("unsupported format: %s", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch ext {
	case extWAV:
		streamer, format, err = wav.Decode(f)
	case extMP3:
		streamer, format, err = mp3.Decode(f)
	case extFLAC:
		streamer, format, err = flac.Decode(f)
	case extOGG:
		streamer, format, err = vorbis.Decode(f)
	}
	if err != nil {
		f.Close()
		return err
	}

	if !speakerInitialized {
		speakerSampleRate = format.SampleRate
		err = speaker.Init(speakerSampleRate, speakerSampleRate.N(time.Second/10))
		if err != nil {
			streamer.Close()
			f.Close()
			return err
		}
		speakerInitialized = true
	}

	p.file = f
	p.streamer = streamer
	p.format = format
	p.path = path
	p.loadSeq++

	p.play = streamer
	if format.SampleRate != speakerSampleRate {
		p.play = beep.Resample(4, format.SampleRate, speakerSampleRate, streamer)
	}

	p.state = Stopped
	return nil
}

// Play starts the loaded stream.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil {
		return ErrNoSource
	}
	if p.state == Playing {
		return nil
	}
	if p.ctrl != nil {
		// Paused mid-stream: resume instead of queueing a second sequence.
		speaker.Lock()
		p.ctrl.Paused = false
		speaker.Unlock()
		p.state = Playing
		return nil
	}

	p.ctrl = &beep.Ctrl{Streamer: p.play, Paused: false}
	seq := p.loadSeq

	// The mixer invokes the callback while holding the speaker lock, so
	// hand off to a goroutine before touching the player.
	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		go p.finished(seq)
	})))

	p.state = Playing
	return nil
}

// finished handles natural end of the stream identified by seq.
func (p *Player) finished(seq int64) {
	p.mu.Lock()
	if seq != p.loadSeq {
		p.mu.Unlock()
		return
	}
	var err error
	if p.streamer != nil {
		err = p.streamer.Err()
	}
	p.state = Stopped
	p.ctrl = nil
	ended, failed := p.onEnded, p.onFailed
	p.mu.Unlock()

	if err != nil {
		if failed != nil {
			failed(err)
		}
		return
	}
	if ended != nil {
		ended()
	}
}

// Pause silences the stream without unloading it.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Playing || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
}

// Rewind seeks the loaded stream back to its start.
func (p *Player) Rewind() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return nil
	}
	speaker.Lock()
	err := p.streamer.Seek(0)
	speaker.Unlock()
	return err
}

// State returns the device state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Position returns the playhead position within the loaded stream.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.format.SampleRate.D(p.streamer.Position())
	speaker.Unlock()
	return pos
}

// Duration returns the length of the loaded stream.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

// SetHandlers replaces the end-of-stream and failure callbacks. Passing
// nils detaches them.
func (p *Player) SetHandlers(ended func(), failed func(error)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onEnded = ended
	p.onFailed = failed
}

// Close releases the loaded stream.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clearLocked()
	return nil
}

// clearLocked drops the current stream from the speaker and closes it. The
// cleared stream's end callback is never invoked; loadSeq moves on, so a
// callback already in flight is dropped too.
func (p *Player) clearLocked() {
	if p.streamer == nil && p.ctrl == nil {
		return
	}

	if speakerInitialized {
		speaker.Clear()
	}
	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	if p.file != nil {
		p.file.Close()
		p.file = nil
	}
	p.ctrl = nil
	p.play = nil
	p.path = ""
	p.loadSeq++
	p.state = Stopped
}
