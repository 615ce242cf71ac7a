// Package app wires the panes, popups and playback scheduler into the
// bubbletea program.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/fable/internal/book"
	"github.com/llehouerou/fable/internal/config"
	"github.com/llehouerou/fable/internal/keymap"
	"github.com/llehouerou/fable/internal/playback"
	"github.com/llehouerou/fable/internal/player"
	"github.com/llehouerou/fable/internal/state"
	"github.com/llehouerou/fable/internal/tts"
	"github.com/llehouerou/fable/internal/ui"
	"github.com/llehouerou/fable/internal/ui/confirm"
	"github.com/llehouerou/fable/internal/ui/cover"
	"github.com/llehouerou/fable/internal/ui/helpbindings"
	"github.com/llehouerou/fable/internal/ui/layout"
	"github.com/llehouerou/fable/internal/ui/list"
	"github.com/llehouerou/fable/internal/ui/textinput"
)

// Deps are the collaborators the app model is built from. Everything is
// constructed in main so the model stays testable with fakes.
type Deps struct {
	Config    *config.Config
	StateMgr  *state.Manager
	Store     *book.Store
	Scheduler playback.Scheduler
	Device    player.Device // read-only here: position/duration display
	Worker    *tts.Worker
	Engine    *tts.Client // nil when no engine is configured
	Cover     *cover.Renderer
}

// synthJob tracks the progress of a chapter-wide narration run for the
// job bar.
type synthJob struct {
	chapterID int64
	label     string
	total     int
	done      int
	failed    int
}

// Model is the root application model.
type Model struct {
	cfg       *config.Config
	stateMgr  *state.Manager
	store     *book.Store
	scheduler playback.Scheduler
	device    player.Device
	worker    *tts.Worker
	engine    *tts.Client
	cover     *cover.Renderer

	sub      *playback.Subscription
	resolver *keymap.Resolver

	books    list.Model[book.Book]
	chapters list.Model[chapterRow]
	segments list.Model[book.Segment]
	focus    layout.Pane

	confirm   confirm.Model
	textInput textinput.Model
	showInput bool
	help      helpbindings.Model
	showHelp  bool

	synth        *synthJob
	engineOnline bool

	// Now-playing labels for the status bar, refreshed on item changes.
	npBook    string
	npChapter string
	npIndex   int // 1-based
	npCount   int

	notifications  []Notification
	nextNotifyID   int64
	pendingCoverTx string // kitty transmission, sent once per cover

	width  int
	height int
}

// chapterRow is a chapter with its synthesis tally, as shown in the
// chapters pane.
type chapterRow struct {
	book.Chapter
	Counts book.SegmentCounts
}

// New creates the application model and restores the last reading
// position.
func New(deps Deps) (Model, error) {
	m := Model{
		cfg:       deps.Config,
		stateMgr:  deps.StateMgr,
		store:     deps.Store,
		scheduler: deps.Scheduler,
		device:    deps.Device,
		worker:    deps.Worker,
		engine:    deps.Engine,
		cover:     deps.Cover,
		sub:       deps.Scheduler.Subscribe(),
		resolver:  keymap.NewResolver(keymap.Bindings),
		books:     list.New[book.Book](ui.ScrollMargin),
		chapters:  list.New[chapterRow](ui.ScrollMargin),
		segments:  list.New[book.Segment](ui.ScrollMargin),
		confirm:   confirm.New(),
		textInput: textinput.New(),
		help:      helpbindings.New(),
	}

	if err := m.reloadBooks(0); err != nil {
		return Model{}, err
	}
	m.restoreNavigation()
	m.setFocus(m.focus)

	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.watchPlayback(),
		m.watchSynthesis(),
		watchStderr(),
	}
	if m.engine != nil {
		cmds = append(cmds, m.checkEngineCmd(), engineHealthTickCmd())
	}
	return tea.Batch(cmds...)
}

// restoreNavigation reopens the book, chapter and segment the user was on
// when the previous run ended.
func (m *Model) restoreNavigation() {
	nav, err := m.stateMgr.GetNavigation()
	if err != nil || nav == nil {
		return
	}
	if nav.BookID != 0 && m.books.SelectFunc(func(b book.Book) bool { return b.ID == nav.BookID }) {
		_ = m.reloadChapters(nav.ChapterID)
		if nav.ChapterID != 0 {
			_ = m.reloadSegments(nav.SegmentID)
			m.focus = layout.PaneSegments
			return
		}
		m.focus = layout.PaneChapters
	}
}

// saveNavigation persists the current selection as the reading position.
func (m *Model) saveNavigation() {
	var nav state.NavigationState
	if b, ok := m.books.Selected(); ok {
		nav.BookID = b.ID
	}
	if c, ok := m.chapters.Selected(); ok {
		nav.ChapterID = c.ID
	}
	if s, ok := m.segments.Selected(); ok {
		nav.SegmentID = s.ID
	}
	m.stateMgr.SaveNavigation(nav)
}

// reloadBooks refreshes the books pane, keeping or restoring the
// selection.
func (m *Model) reloadBooks(selectID int64) error {
	books, err := m.store.Books()
	if err != nil {
		return err
	}
	m.books.SetItems(books)
	if selectID != 0 {
		m.books.SelectFunc(func(b book.Book) bool { return b.ID == selectID })
	}
	return nil
}

// reloadChapters refreshes the chapters pane for the selected book.
func (m *Model) reloadChapters(selectID int64) error {
	b, ok := m.books.Selected()
	if !ok {
		m.chapters.SetItems(nil)
		m.segments.SetItems(nil)
		return nil
	}
	chapters, err := m.store.Chapters(b.ID)
	if err != nil {
		return err
	}
	rows := make([]chapterRow, len(chapters))
	for i, c := range chapters {
		counts, err := m.store.CountSegments(c.ID)
		if err != nil {
			return err
		}
		rows[i] = chapterRow{Chapter: c, Counts: counts}
	}
	m.chapters.SetItems(rows)
	if selectID != 0 {
		m.chapters.SelectFunc(func(c chapterRow) bool { return c.ID == selectID })
	}
	return nil
}

// reloadSegments refreshes the segments pane for the selected chapter.
func (m *Model) reloadSegments(selectID int64) error {
	c, ok := m.chapters.Selected()
	if !ok {
		m.segments.SetItems(nil)
		return nil
	}
	segments, err := m.store.Segments(c.ID)
	if err != nil {
		return err
	}
	m.segments.SetItems(segments)
	if selectID != 0 {
		m.segments.SelectFunc(func(s book.Segment) bool { return s.ID == selectID })
	}
	return nil
}

// setFocus moves keyboard focus to a pane.
func (m *Model) setFocus(p layout.Pane) {
	m.focus = p
	m.books.SetFocused(p == layout.PaneBooks)
	m.chapters.SetFocused(p == layout.PaneChapters)
	m.segments.SetFocused(p == layout.PaneSegments)
}

// notify pushes a transient notification line and returns the command
// that clears it.
func (m *Model) notify(message string) tea.Cmd {
	m.nextNotifyID++
	id := m.nextNotifyID
	m.notifications = append(m.notifications, Notification{ID: id, Message: message})
	m.resizePanes()
	return notificationClearCmd(id)
}

// clearNotification removes a notification by id.
func (m *Model) clearNotification(id int64) {
	for i, n := range m.notifications {
		if n.ID == id {
			m.notifications = append(m.notifications[:i], m.notifications[i+1:]...)
			m.resizePanes()
			return
		}
	}
}
