// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Book operations
	OpBookLoad   Op = "load books"
	OpBookRename Op = "rename book"
	OpBookDelete Op = "delete book"

	// Chapter operations
	OpChapterLoad   Op = "load chapters"
	OpChapterRename Op = "rename chapter"

	// Segment operations
	OpSegmentLoad   Op = "load segments"
	OpSegmentEdit   Op = "edit segment"
	OpSegmentDelete Op = "delete segment"
	OpDividerInsert Op = "insert divider"

	// Import operations
	OpImportManuscript Op = "import manuscript"

	// Synthesis operations
	OpSynthesisQueue Op = "queue synthesis"
	OpSynthesisRun   Op = "synthesize segment"
	OpEngineHealth   Op = "reach speech engine"

	// Playback operations
	OpPlaybackStart Op = "start playback"

	// Settings operations
	OpSettingsSave Op = "save settings"

	// Navigation
	OpPositionSave Op = "save reading position"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
