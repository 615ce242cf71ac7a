//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/books",
			expected: filepath.Join(home, "books"),
		},
		{
			name:     "tilde with nested path",
			input:    "~/books/audio/out",
			expected: filepath.Join(home, "books", "audio", "out"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/var/lib/fable",
			expected: "/var/lib/fable",
		},
		{
			name:     "relative path unchanged",
			input:    "books/audio",
			expected: "books/audio",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestHasEngineConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{
			name: "configured",
			cfg:  Config{Engine: EngineConfig{URL: "http://localhost:8880"}},
			want: true,
		},
		{
			name: "not configured",
			cfg:  Config{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.HasEngineConfig(); got != tt.want {
				t.Errorf("HasEngineConfig() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEngineConfig_Defaults(t *testing.T) {
	cfg := Config{Engine: EngineConfig{URL: "http://localhost:8880"}}

	engine := cfg.GetEngineConfig()

	if engine.Voice != "default" {
		t.Errorf("Voice = %q, want %q", engine.Voice, "default")
	}
	if engine.Speed != 1.0 {
		t.Errorf("Speed = %v, want 1.0", engine.Speed)
	}
	if engine.TimeoutSeconds != 120 {
		t.Errorf("TimeoutSeconds = %d, want 120", engine.TimeoutSeconds)
	}
}

func TestGetEngineConfig_ExplicitValuesKept(t *testing.T) {
	cfg := Config{Engine: EngineConfig{
		URL:            "http://localhost:8880",
		Voice:          "nova",
		Speed:          1.25,
		TimeoutSeconds: 30,
	}}

	engine := cfg.GetEngineConfig()

	if engine.Voice != "nova" || engine.Speed != 1.25 || engine.TimeoutSeconds != 30 {
		t.Errorf("GetEngineConfig() = %+v, want explicit values kept", engine)
	}
}

func TestGetImportConfig_Defaults(t *testing.T) {
	var cfg Config

	if got := cfg.GetImportConfig().MaxSegmentChars; got != 250 {
		t.Errorf("MaxSegmentChars = %d, want 250", got)
	}

	cfg.Import.MaxSegmentChars = 400
	if got := cfg.GetImportConfig().MaxSegmentChars; got != 400 {
		t.Errorf("MaxSegmentChars = %d, want 400", got)
	}
}
