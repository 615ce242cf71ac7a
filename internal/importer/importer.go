// Package importer parses Markdown manuscripts into book drafts ready for
// the store: chapters split on headings, prose packed into narratable
// segments, thematic breaks turned into silent dividers.
package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"github.com/llehouerou/fable/internal/book"
)

const defaultMaxSegmentChars = 250

var (
	// ErrNoTitle is returned when the manuscript has no level-1 heading
	// and no title override was given.
	ErrNoTitle = errors.New("manuscript has no title heading")
	// ErrNoChapters is returned when no chapter headings were found.
	ErrNoChapters = errors.New("manuscript has no chapters")
)

// Options tune how a manuscript is cut into segments.
type Options struct {
	Title           string // overrides the manuscript's own title
	Author          string
	MaxSegmentChars int // longest narrated segment in characters; 0 means the default
}

// ParseFile reads and parses a Markdown manuscript. A cover image sitting
// next to the manuscript (cover.jpg, cover.png or <manuscript>.jpg) is
// picked up as the book cover.
func ParseFile(path string, opts Options) (*book.Draft, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manuscript: %w", err)
	}

	draft, err := Parse(src, opts)
	if err != nil {
		return nil, err
	}
	draft.CoverPath = findCover(path)
	return draft, nil
}

func findCover(manuscript string) string {
	dir := filepath.Dir(manuscript)
	base := strings.TrimSuffix(filepath.Base(manuscript), filepath.Ext(manuscript))

	candidates := []string{
		filepath.Join(dir, "cover.jpg"),
		filepath.Join(dir, "cover.jpeg"),
		filepath.Join(dir, "cover.png"),
		filepath.Join(dir, base+".jpg"),
		filepath.Join(dir, base+".png"),
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

// Parse cuts a Markdown manuscript into chapters and segments. The first
// level-1 heading names the book, every later heading starts a chapter,
// thematic breaks become silent dividers and prose is packed into
// narrated segments of at most MaxSegmentChars characters. Front matter
// before the first chapter heading is not narrated and is dropped.
func Parse(src []byte, opts Options) (*book.Draft, error) {
	maxChars := opts.MaxSegmentChars
	if maxChars <= 0 {
		maxChars = defaultMaxSegmentChars
	}

	doc := goldmark.New().Parser().Parse(gmtext.NewReader(src))

	b := builder{maxChars: maxChars}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			heading := strings.TrimSpace(flattenText(node, src))
			if node.Level == 1 && b.title == "" {
				b.title = heading
				continue
			}
			b.startChapter(cleanChapterTitle(heading))
		case *ast.ThematicBreak:
			b.divider()
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			// not narrated
		default:
			b.prose(flattenText(n, src))
		}
	}

	draft := b.finish()
	draft.Author = opts.Author
	if opts.Title != "" {
		draft.Title = opts.Title
	}
	if draft.Title == "" {
		return nil, ErrNoTitle
	}
	if len(draft.Chapters) == 0 {
		return nil, ErrNoChapters
	}
	return draft, nil
}

// builder accumulates chapters while walking the document. Content before
// the first chapter heading has nowhere to go and is skipped.
type builder struct {
	maxChars int
	title    string
	chapters []book.DraftChapter
	current  *book.DraftChapter
}

func (b *builder) startChapter(title string) {
	b.flush()
	b.current = &book.DraftChapter{Title: title}
}

func (b *builder) prose(text string) {
	if b.current == nil {
		return
	}
	for _, seg := range packSegments(splitSentences(text), b.maxChars) {
		b.current.Segments = append(b.current.Segments, book.DraftSegment{
			Kind: book.KindStandard,
			Text: seg,
		})
	}
}

func (b *builder) divider() {
	if b.current == nil {
		return
	}
	// PauseMs 0 falls back to the configured divider pause at play time.
	b.current.Segments = append(b.current.Segments, book.DraftSegment{
		Kind: book.KindDivider,
	})
}

func (b *builder) flush() {
	if b.current != nil {
		b.chapters = append(b.chapters, *b.current)
		b.current = nil
	}
}

func (b *builder) finish() *book.Draft {
	b.flush()
	return &book.Draft{Title: b.title, Chapters: b.chapters}
}

var (
	chapterNumberPrefix = regexp.MustCompile(`(?i)^(chapter|kapitel|ch\.?)\s+\d+\s*:\s*`)
	bareNumberPrefix    = regexp.MustCompile(`^\d+[.\-)\s]+`)
)

// cleanChapterTitle strips "Chapter 3:" style numbering so chapter lists
// read as titles. Position already carries the order.
func cleanChapterTitle(raw string) string {
	cleaned := chapterNumberPrefix.ReplaceAllString(raw, "")
	cleaned = bareNumberPrefix.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// flattenText extracts the spoken text of a node, dropping markup. Inline
// code keeps its content, images and raw HTML read as nothing.
func flattenText(n ast.Node, src []byte) string {
	var sb strings.Builder
	writeNodeText(&sb, n, src)
	return sb.String()
}

func writeNodeText(sb *strings.Builder, n ast.Node, src []byte) {
	switch node := n.(type) {
	case *ast.Text:
		sb.Write(node.Segment.Value(src))
		if node.SoftLineBreak() || node.HardLineBreak() {
			sb.WriteByte(' ')
		}
	case *ast.CodeSpan:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				sb.Write(t.Segment.Value(src))
			}
		}
	case *ast.Image:
		// alt text is not prose
	case *ast.AutoLink:
		sb.Write(node.URL(src))
	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			writeNodeText(sb, c, src)
			if c.Type() == ast.TypeBlock {
				sb.WriteByte(' ')
			}
		}
	}
}
