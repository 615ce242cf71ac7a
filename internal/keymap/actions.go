package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit        Action = "quit"
	ActionSwitchFocus Action = "switch_focus"
	ActionFocusPrev   Action = "focus_prev"
	ActionImport      Action = "import"
	ActionHelp        Action = "help"

	// Playback actions
	ActionPlayToggle   Action = "play_toggle"
	ActionStop         Action = "stop"
	ActionNextSegment  Action = "next_segment"
	ActionPrevSegment  Action = "prev_segment"
	ActionGapShorter   Action = "gap_shorter"
	ActionGapLonger    Action = "gap_longer"
	ActionPauseShorter Action = "pause_shorter"
	ActionPauseLonger  Action = "pause_longer"

	// Synthesis actions
	ActionSynthesizeChapter Action = "synthesize_chapter"
	ActionSynthesizeSegment Action = "synthesize_segment"

	// Navigation actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionPageUp    Action = "page_up"
	ActionPageDown  Action = "page_down"

	// Selection/activation actions
	ActionSelect Action = "select" // enter - pane decides what opening means

	// Editing actions
	ActionRename        Action = "rename"
	ActionDelete        Action = "delete"
	ActionEditText      Action = "edit_text"
	ActionInsertDivider Action = "insert_divider"
)
