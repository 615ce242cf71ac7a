package tts

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// wavDurationMs reads the length of a WAV file from its header, without
// decoding the samples.
func wavDurationMs(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	dur, err := d.Duration()
	if err != nil {
		return 0, fmt.Errorf("read wav header: %w", err)
	}
	return dur.Milliseconds(), nil
}
