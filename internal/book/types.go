package book

// Book is an imported manuscript.
type Book struct {
	ID        int64
	Title     string
	Author    string
	CoverPath string
	CreatedAt int64
	UpdatedAt int64
}

// Chapter is one playable unit of a book. Segments belong to exactly one
// chapter and play in position order.
type Chapter struct {
	ID       int64
	BookID   int64
	Position int
	Title    string
}

// Kind distinguishes narrated segments from silent dividers.
type Kind string

const (
	KindStandard Kind = "standard"
	KindDivider  Kind = "divider"
)

// Status tracks a segment through the synthesis pipeline.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Segment is one sequence element of a chapter: a narrated sentence run or
// a silent divider. Position is dense and 0-based within the chapter.
type Segment struct {
	ID         int64
	ChapterID  int64
	Position   int
	Kind       Kind
	Text       string
	PauseMs    int64 // divider silence; 0 falls back to the configured default
	Status     Status
	AudioPath  string
	Voice      string
	DurationMs int64
	UpdatedAt  int64
}

// Playable reports whether the segment has synthesized audio on disk.
func (s Segment) Playable() bool {
	return s.Kind == KindStandard && s.Status == StatusCompleted && s.AudioPath != ""
}

// Draft types carry a parsed manuscript into the store in one shot.
type Draft struct {
	Title     string
	Author    string
	CoverPath string
	Chapters  []DraftChapter
}

type DraftChapter struct {
	Title    string
	Segments []DraftSegment
}

type DraftSegment struct {
	Kind    Kind
	Text    string
	PauseMs int64
}
