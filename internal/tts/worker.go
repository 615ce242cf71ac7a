package tts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/llehouerou/fable/internal/book"
)

const updateBufferSize = 64

// Update is emitted whenever a queued segment changes status.
type Update struct {
	SegmentID int64
	Status    book.Status
	Err       error // set when Status is failed
}

// SegmentStore is the slice of the book store the worker needs.
type SegmentStore interface {
	Segment(id int64) (*book.Segment, error)
	SetSegmentStatus(id int64, status book.Status) error
	SetSegmentAudio(id int64, path, voice string, durationMs int64) error
}

// Worker narrates queued segments one at a time. Serial on purpose: local
// engines saturate on a single request, and narration should land in
// reading order.
type Worker struct {
	client   *Client
	store    SegmentStore
	audioDir string

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	queue   []int64
	queued  map[int64]struct{}
	current int64

	wake    chan struct{}
	updates chan Update

	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewWorker creates a worker writing narration files into audioDir. The
// directory must exist. client may be nil when no engine is configured;
// queued segments then fail with ErrNotConfigured.
func NewWorker(client *Client, store SegmentStore, audioDir string) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		client:   client,
		store:    store,
		audioDir: audioDir,
		ctx:      ctx,
		cancel:   cancel,
		queued:   make(map[int64]struct{}),
		wake:     make(chan struct{}, 1),
		updates:  make(chan Update, updateBufferSize),
	}
}

// Start launches the processing loop.
func (w *Worker) Start() {
	w.wg.Add(1)
	go w.loop()
}

// Enqueue adds segments to the narration queue, skipping ones already
// queued or in flight.
func (w *Worker) Enqueue(ids ...int64) {
	w.mu.Lock()
	for _, id := range ids {
		if _, ok := w.queued[id]; ok || id == w.current {
			continue
		}
		w.queued[id] = struct{}{}
		w.queue = append(w.queue, id)
	}
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// QueueLen returns the number of segments waiting or in flight.
func (w *Worker) QueueLen() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := len(w.queue)
	if w.current != 0 {
		n++
	}
	return n
}

// Updates returns the status event channel. Events are dropped rather
// than blocking the worker when nobody drains them.
func (w *Worker) Updates() <-chan Update {
	return w.updates
}

// Close aborts the in-flight request and stops the loop. Segments left in
// processing are re-queued by the startup reset of the next run.
func (w *Worker) Close() {
	w.closeOnce.Do(func() {
		w.cancel()
		w.wg.Wait()
	})
}

func (w *Worker) loop() {
	defer w.wg.Done()
	for {
		id, ok := w.next()
		if !ok {
			select {
			case <-w.wake:
				continue
			case <-w.ctx.Done():
				return
			}
		}
		if w.ctx.Err() != nil {
			return
		}
		w.process(id)
	}
}

func (w *Worker) next() (int64, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.queue) == 0 {
		w.current = 0
		return 0, false
	}
	id := w.queue[0]
	w.queue = w.queue[1:]
	delete(w.queued, id)
	w.current = id
	return id, true
}

func (w *Worker) process(id int64) {
	defer func() {
		w.mu.Lock()
		w.current = 0
		w.mu.Unlock()
	}()

	seg, err := w.store.Segment(id)
	if err != nil {
		w.fail(id, err)
		return
	}
	// Deleted, divider or empty segments have nothing to narrate.
	if seg == nil || seg.Kind != book.KindStandard || strings.TrimSpace(seg.Text) == "" {
		return
	}
	if w.client == nil {
		w.fail(id, ErrNotConfigured)
		return
	}

	if err := w.store.SetSegmentStatus(id, book.StatusProcessing); err != nil {
		w.fail(id, err)
		return
	}
	w.emit(Update{SegmentID: id, Status: book.StatusProcessing})

	data, err := w.client.Synthesize(w.ctx, seg.Text)
	if err != nil {
		if w.ctx.Err() != nil {
			return
		}
		w.fail(id, err)
		return
	}

	path := filepath.Join(w.audioDir, fmt.Sprintf("segment_%d.wav", id))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		w.fail(id, err)
		return
	}

	durationMs, err := wavDurationMs(path)
	if err != nil {
		w.fail(id, err)
		return
	}

	if err := w.store.SetSegmentAudio(id, path, w.client.Voice(), durationMs); err != nil {
		w.fail(id, err)
		return
	}
	w.emit(Update{SegmentID: id, Status: book.StatusCompleted})
}

func (w *Worker) fail(id int64, err error) {
	_ = w.store.SetSegmentStatus(id, book.StatusFailed)
	w.emit(Update{SegmentID: id, Status: book.StatusFailed, Err: err})
}

func (w *Worker) emit(u Update) {
	select {
	case w.updates <- u:
	default:
	}
}
