package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/llehouerou/fable/internal/icons"
)

func TestHeightIdle(t *testing.T) {
	if got := Height(State{}); got != 0 {
		t.Errorf("Height(idle) = %d, want 0", got)
	}
}

func TestHeightActive(t *testing.T) {
	if got := Height(State{Playing: true}); got != 3 {
		t.Errorf("Height(playing) = %d, want 3", got)
	}
	if got := Height(State{Waiting: true}); got != 3 {
		t.Errorf("Height(waiting) = %d, want 3", got)
	}
}

func TestRenderIdle(t *testing.T) {
	if got := Render(State{}, 120); got != "" {
		t.Errorf("Render(idle) = %q, want empty", got)
	}
}

func TestRenderPlaying(t *testing.T) {
	icons.Init("unicode")
	defer icons.Init("none")

	s := State{
		Playing:    true,
		Book:       "The Lighthouse",
		Chapter:    "Chapter 3",
		Segment:    12,
		Segments:   48,
		Position:   45 * time.Second,
		Duration:   3 * time.Minute,
		Continuous: true,
	}

	got := Render(s, 120)

	for _, want := range []string{"The Lighthouse", "Chapter 3", "12/48", "auto", "0:45 / 3:00", "▶"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() missing %q in %q", want, got)
		}
	}
}

func TestRenderSingleSegment(t *testing.T) {
	s := State{
		Playing:  true,
		Book:     "The Lighthouse",
		Chapter:  "Chapter 3",
		Segment:  12,
		Segments: 48,
		Duration: time.Minute,
	}

	got := Render(s, 120)

	if strings.Contains(got, "auto") {
		t.Errorf("Render() should not show auto marker for single playback: %q", got)
	}
}

func TestRenderWaiting(t *testing.T) {
	icons.Init("unicode")
	defer icons.Init("none")

	s := State{
		Waiting:    true,
		Book:       "The Lighthouse",
		Chapter:    "Chapter 3",
		Duration:   2 * time.Second,
		Continuous: true,
	}

	got := Render(s, 120)

	if !strings.Contains(got, "…") {
		t.Errorf("Render() missing waiting glyph in %q", got)
	}
	if !strings.Contains(got, "0:00 / 0:02") {
		t.Errorf("Render() missing divider countdown in %q", got)
	}
}

func TestRenderUnknownBook(t *testing.T) {
	got := Render(State{Playing: true, Duration: time.Minute}, 120)

	if !strings.Contains(got, "Unknown Book") {
		t.Errorf("Render() = %q, want fallback title", got)
	}
}

func TestRenderNarrowTruncatesChapter(t *testing.T) {
	s := State{
		Playing:  true,
		Book:     "Short",
		Chapter:  strings.Repeat("A Very Long Chapter Name ", 5),
		Duration: time.Minute,
	}

	got := Render(s, 60)

	if got == "" {
		t.Fatal("Render() should not be empty at narrow width")
	}
	if !strings.Contains(got, "Short") {
		t.Errorf("Render() should keep book title at narrow width: %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{5 * time.Second, "0:05"},
		{65 * time.Second, "1:05"},
		{10 * time.Minute, "10:00"},
		{75 * time.Minute, "75:00"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
