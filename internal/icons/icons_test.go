//nolint:goconst // test cases intentionally repeat strings for readability
package icons

import (
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name          string
		style         string
		expectedStyle Style
	}{
		{"nerd style", "nerd", StyleNerd},
		{"unicode style", "unicode", StyleUnicode},
		{"none style", "none", StyleNone},
		{"empty string defaults to none", "", StyleNone},
		{"unknown style defaults to none", "invalid", StyleNone},
		{"case sensitive - NERD defaults to none", "NERD", StyleNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Init(tt.style)

			switch tt.expectedStyle {
			case StyleNerd:
				if current != nerdIcons {
					t.Error("expected nerd icons to be active")
				}
			case StyleUnicode:
				if current != unicodeIcons {
					t.Error("expected unicode icons to be active")
				}
			case StyleNone:
				if current != noneIcons {
					t.Error("expected none icons to be active")
				}
			}
		})
	}

	// Reset to default
	Init("none")
}

func TestStatusGlyph(t *testing.T) {
	tests := []struct {
		style    string
		status   string
		expected string
	}{
		{"none", "pending", "."},
		{"none", "processing", ":"},
		{"none", "completed", "+"},
		{"none", "failed", "x"},
		{"none", "garbage", "."},
		{"unicode", "pending", "○"},
		{"unicode", "processing", "◐"},
		{"unicode", "completed", "●"},
		{"unicode", "failed", "✗"},
		{"nerd", "completed", ""},
	}

	for _, tt := range tests {
		t.Run(tt.style+"_"+tt.status, func(t *testing.T) {
			Init(tt.style)
			if got := StatusGlyph(tt.status); got != tt.expected {
				t.Errorf("StatusGlyph(%q) = %q, want %q", tt.status, got, tt.expected)
			}
		})
	}

	Init("none")
}

func TestFormatBook(t *testing.T) {
	tests := []struct {
		style    string
		title    string
		expected string
	}{
		{"none", "The Lighthouse", "The Lighthouse"},
		{"nerd", "The Lighthouse", " The Lighthouse"},
		{"unicode", "The Lighthouse", "📖 The Lighthouse"},
		{"none", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.style+"_"+tt.title, func(t *testing.T) {
			Init(tt.style)
			if got := FormatBook(tt.title); got != tt.expected {
				t.Errorf("FormatBook(%q) = %q, want %q", tt.title, got, tt.expected)
			}
		})
	}

	Init("none")
}

func TestFormatChapter(t *testing.T) {
	tests := []struct {
		style    string
		title    string
		expected string
	}{
		{"none", "The Arrival", "The Arrival"},
		{"nerd", "The Arrival", " The Arrival"},
		{"unicode", "The Arrival", "📄 The Arrival"},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			Init(tt.style)
			if got := FormatChapter(tt.title); got != tt.expected {
				t.Errorf("FormatChapter(%q) = %q, want %q", tt.title, got, tt.expected)
			}
		})
	}

	Init("none")
}

func TestPlaybackGlyphs(t *testing.T) {
	tests := []struct {
		style       string
		wantPlaying string
		wantWaiting string
	}{
		{"none", ">", "."},
		{"nerd", "", ""},
		{"unicode", "▶", "…"},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			Init(tt.style)
			if got := Playing(); got != tt.wantPlaying {
				t.Errorf("Playing() = %q, want %q", got, tt.wantPlaying)
			}
			if got := Waiting(); got != tt.wantWaiting {
				t.Errorf("Waiting() = %q, want %q", got, tt.wantWaiting)
			}
		})
	}

	Init("none")
}

func TestIconsStructure(t *testing.T) {
	// Every set must carry a glyph for every synthesis status.
	sets := []struct {
		name  string
		icons Icons
	}{
		{"nerd", nerdIcons},
		{"unicode", unicodeIcons},
		{"none", noneIcons},
	}

	for _, set := range sets {
		t.Run(set.name, func(t *testing.T) {
			if set.icons.Pending == "" {
				t.Error("Pending icon should not be empty")
			}
			if set.icons.Processing == "" {
				t.Error("Processing icon should not be empty")
			}
			if set.icons.Completed == "" {
				t.Error("Completed icon should not be empty")
			}
			if set.icons.Failed == "" {
				t.Error("Failed icon should not be empty")
			}
			if set.icons.Playing == "" {
				t.Error("Playing icon should not be empty")
			}
		})
	}
}

func TestNoneStyleUsesASCII(t *testing.T) {
	Init("none")

	icons := []struct {
		name  string
		value string
	}{
		{"Pending", Pending()},
		{"Processing", Processing()},
		{"Completed", Completed()},
		{"Failed", Failed()},
		{"Playing", Playing()},
		{"Waiting", Waiting()},
	}

	for _, icon := range icons {
		t.Run(icon.name, func(t *testing.T) {
			for _, r := range icon.value {
				if r > 127 {
					t.Errorf("%s icon should only contain ASCII for none style, got %q", icon.name, icon.value)
					break
				}
			}
		})
	}
}

func TestFormatFunctionsWithSpecialCharacters(t *testing.T) {
	Init("unicode")

	specialNames := []string{
		"Name with spaces",
		"Name-with-dashes",
		"Name (with parentheses)",
		"日本語の名前",
	}

	for _, name := range specialNames {
		t.Run("FormatBook_"+name, func(t *testing.T) {
			result := FormatBook(name)
			if !strings.Contains(result, name) {
				t.Errorf("FormatBook should contain original name, got %q", result)
			}
		})

		t.Run("FormatChapter_"+name, func(t *testing.T) {
			result := FormatChapter(name)
			if !strings.Contains(result, name) {
				t.Errorf("FormatChapter should contain original name, got %q", result)
			}
		})
	}

	Init("none")
}
