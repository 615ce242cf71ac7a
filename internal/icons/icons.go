package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Book       string
	Chapter    string
	Divider    string
	Pending    string
	Processing string
	Completed  string
	Failed     string
	Playing    string
	Waiting    string
}

var (
	nerdIcons = Icons{
		Book:       " ", // nf-fa-book
		Chapter:    " ", // nf-fa-file_text_o
		Divider:    " ", // nf-fa-minus
		Pending:    "",  // nf-fa-circle_o
		Processing: "",  // nf-fa-refresh
		Completed:  "",  // nf-fa-check_circle
		Failed:     "",  // nf-fa-times_circle
		Playing:    "",  // nf-fa-play
		Waiting:    "",  // nf-fa-clock_o
	}

	unicodeIcons = Icons{
		Book:       "📖 ",
		Chapter:    "📄 ",
		Divider:    "〜 ",
		Pending:    "○",
		Processing: "◐",
		Completed:  "●",
		Failed:     "✗",
		Playing:    "▶",
		Waiting:    "…",
	}

	noneIcons = Icons{
		Book:       "",
		Chapter:    "",
		Divider:    "~ ",
		Pending:    ".",
		Processing: ":",
		Completed:  "+",
		Failed:     "x",
		Playing:    ">",
		Waiting:    ".",
	}

	// current holds the active icon set
	current = noneIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	case StyleNone:
		current = noneIcons
	default:
		current = noneIcons
	}
}

// Book returns the book icon.
func Book() string { return current.Book }

// Chapter returns the chapter icon.
func Chapter() string { return current.Chapter }

// Divider returns the divider icon.
func Divider() string { return current.Divider }

// Pending returns the glyph for a segment awaiting synthesis.
func Pending() string { return current.Pending }

// Processing returns the glyph for a segment being synthesized.
func Processing() string { return current.Processing }

// Completed returns the glyph for a segment with narration on disk.
func Completed() string { return current.Completed }

// Failed returns the glyph for a segment whose synthesis failed.
func Failed() string { return current.Failed }

// Playing returns the glyph for the audible segment.
func Playing() string { return current.Playing }

// Waiting returns the glyph shown while a divider pause runs out.
func Waiting() string { return current.Waiting }

// FormatBook returns a book title with its icon prefix.
func FormatBook(title string) string {
	return current.Book + title
}

// FormatChapter returns a chapter title with its icon prefix.
func FormatChapter(title string) string {
	return current.Chapter + title
}

// StatusGlyph maps a synthesis status name to its glyph.
func StatusGlyph(status string) string {
	switch status {
	case "pending":
		return current.Pending
	case "processing":
		return current.Processing
	case "completed":
		return current.Completed
	case "failed":
		return current.Failed
	default:
		return current.Pending
	}
}
