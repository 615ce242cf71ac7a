// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "synthesis", "list", "books", "chapters", "segments"
}

// Bindings contains all key bindings for dispatch and help generation.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit application", "global"},
	{ActionSwitchFocus, []string{"tab"}, "Next pane", "global"},
	{ActionFocusPrev, []string{"shift+tab"}, "Previous pane", "global"},
	{ActionImport, []string{"i"}, "Import manuscript", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},

	// Playback
	{ActionPlayToggle, []string{" "}, "Play from selected segment / stop", "playback"},
	{ActionStop, []string{"x"}, "Stop narration", "playback"},
	{ActionNextSegment, []string{"pgdown"}, "Jump to next segment", "playback"},
	{ActionPrevSegment, []string{"pgup"}, "Jump to previous segment", "playback"},
	{ActionGapShorter, []string{"["}, "Shorten segment gap", "playback"},
	{ActionGapLonger, []string{"]"}, "Lengthen segment gap", "playback"},
	{ActionPauseShorter, []string{"{"}, "Shorten divider pause", "playback"},
	{ActionPauseLonger, []string{"}"}, "Lengthen divider pause", "playback"},

	// Synthesis
	{ActionSynthesizeChapter, []string{"s"}, "Synthesize chapter", "synthesis"},
	{ActionSynthesizeSegment, []string{"S"}, "Synthesize selected segment", "synthesis"},

	// List navigation (handled by the list component, documented here)
	{ActionMoveDown, []string{"j", "down"}, "Move down", "list"},
	{ActionMoveUp, []string{"k", "up"}, "Move up", "list"},
	{ActionJumpStart, []string{"g"}, "First item", "list"},
	{ActionJumpEnd, []string{"G"}, "Last item", "list"},
	{ActionPageDown, []string{"ctrl+d"}, "Half page down", "list"},
	{ActionPageUp, []string{"ctrl+u"}, "Half page up", "list"},

	// Books pane
	{ActionSelect, []string{"enter"}, "Open book", "books"},
	{ActionRename, []string{"r"}, "Rename book", "books"},
	{ActionDelete, []string{"d", "delete"}, "Delete book", "books"},

	// Chapters pane
	{ActionSelect, []string{"enter"}, "Open chapter", "chapters"},
	{ActionRename, []string{"r"}, "Rename chapter", "chapters"},

	// Segments pane
	{ActionSelect, []string{"enter"}, "Play selected segment only", "segments"},
	{ActionEditText, []string{"e"}, "Edit segment text", "segments"},
	{ActionInsertDivider, []string{"b"}, "Insert divider below", "segments"},
	{ActionDelete, []string{"d", "delete"}, "Delete segment", "segments"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
