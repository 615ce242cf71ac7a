package tts

import (
	"bytes"
	"encoding/binary"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/llehouerou/fable/internal/book"
)

// testWAV builds a minimal mono 16-bit PCM file at 22050 Hz, so 2205
// samples make 100ms of audio.
func testWAV(t *testing.T, samples int) []byte {
	t.Helper()

	const (
		sampleRate = 22050
		blockAlign = 2
	)
	dataSize := uint32(samples * blockAlign)

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*blockAlign))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, dataSize)
	buf.Write(make([]byte, dataSize))
	return buf.Bytes()
}

type statusCall struct {
	id     int64
	status book.Status
}

type audioCall struct {
	id         int64
	path       string
	voice      string
	durationMs int64
}

type fakeSegmentStore struct {
	mu       sync.Mutex
	segments map[int64]*book.Segment
	statuses []statusCall
	audio    []audioCall
}

func newFakeSegmentStore(segs ...*book.Segment) *fakeSegmentStore {
	s := &fakeSegmentStore{segments: make(map[int64]*book.Segment)}
	for _, seg := range segs {
		s.segments[seg.ID] = seg
	}
	return s
}

func (s *fakeSegmentStore) Segment(id int64) (*book.Segment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seg, ok := s.segments[id]
	if !ok {
		return nil, nil //nolint:nilnil
	}
	copied := *seg
	return &copied, nil
}

func (s *fakeSegmentStore) SetSegmentStatus(id int64, status book.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = append(s.statuses, statusCall{id: id, status: status})
	return nil
}

func (s *fakeSegmentStore) SetSegmentAudio(id int64, path, voice string, durationMs int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audio = append(s.audio, audioCall{id: id, path: path, voice: voice, durationMs: durationMs})
	return nil
}

func (s *fakeSegmentStore) statusHistory(id int64) []book.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []book.Status
	for _, c := range s.statuses {
		if c.id == id {
			out = append(out, c.status)
		}
	}
	return out
}

func (s *fakeSegmentStore) lastAudio() (audioCall, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.audio) == 0 {
		return audioCall{}, false
	}
	return s.audio[len(s.audio)-1], true
}

func receiveUpdate(t *testing.T, w *Worker) Update {
	t.Helper()
	select {
	case u := <-w.Updates():
		return u
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for worker update")
		return Update{}
	}
}

func standardSegment(id int64, text string) *book.Segment {
	return &book.Segment{ID: id, ChapterID: 1, Kind: book.KindStandard, Text: text, Status: book.StatusPending}
}

func TestWorker_NarratesSegment(t *testing.T) {
	dir := t.TempDir()
	audio := testWAV(t, 2205)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(audio)
	}))
	defer srv.Close()

	store := newFakeSegmentStore(standardSegment(1, "Hello there."))
	w := NewWorker(NewClient(srv.URL, "af_heart", 1.0, 2*time.Second), store, dir)
	w.Start()
	t.Cleanup(w.Close)

	w.Enqueue(1)

	if u := receiveUpdate(t, w); u.Status != book.StatusProcessing {
		t.Fatalf("first update status = %q, want processing", u.Status)
	}
	u := receiveUpdate(t, w)
	if u.Status != book.StatusCompleted || u.SegmentID != 1 {
		t.Fatalf("second update = %+v, want segment 1 completed", u)
	}

	call, ok := store.lastAudio()
	if !ok {
		t.Fatal("SetSegmentAudio was never called")
	}
	wantPath := filepath.Join(dir, "segment_1.wav")
	if call.path != wantPath {
		t.Errorf("audio path = %q, want %q", call.path, wantPath)
	}
	if call.voice != "af_heart" {
		t.Errorf("voice = %q, want af_heart", call.voice)
	}
	if call.durationMs != 100 {
		t.Errorf("durationMs = %d, want 100", call.durationMs)
	}

	written, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("read narration file: %v", err)
	}
	if !bytes.Equal(written, audio) {
		t.Error("narration file does not match engine response")
	}
}

func TestWorker_EngineFailureMarksFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "engine exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	store := newFakeSegmentStore(standardSegment(1, "Hello."))
	w := NewWorker(NewClient(srv.URL, "voice", 1.0, 2*time.Second), store, t.TempDir())
	w.Start()
	t.Cleanup(w.Close)

	w.Enqueue(1)

	if u := receiveUpdate(t, w); u.Status != book.StatusProcessing {
		t.Fatalf("first update status = %q, want processing", u.Status)
	}
	u := receiveUpdate(t, w)
	if u.Status != book.StatusFailed {
		t.Fatalf("second update status = %q, want failed", u.Status)
	}
	if u.Err == nil {
		t.Error("failed update carries no error")
	}

	want := []book.Status{book.StatusProcessing, book.StatusFailed}
	got := store.statusHistory(1)
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("status history = %v, want %v", got, want)
	}

	if _, ok := store.lastAudio(); ok {
		t.Error("SetSegmentAudio called despite engine failure")
	}
}

func TestWorker_SkipsUnnarratable(t *testing.T) {
	audio := testWAV(t, 2205)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(audio)
	}))
	defer srv.Close()

	divider := &book.Segment{ID: 1, ChapterID: 1, Kind: book.KindDivider, Status: book.StatusCompleted}
	blank := standardSegment(2, "   ")
	spoken := standardSegment(3, "Read me.")

	store := newFakeSegmentStore(divider, blank, spoken)
	w := NewWorker(NewClient(srv.URL, "voice", 1.0, 2*time.Second), store, t.TempDir())
	w.Start()
	t.Cleanup(w.Close)

	// 4 does not exist at all.
	w.Enqueue(1, 2, 4, 3)

	if u := receiveUpdate(t, w); u.SegmentID != 3 {
		t.Fatalf("first update for segment %d, want 3", u.SegmentID)
	}
	if u := receiveUpdate(t, w); u.Status != book.StatusCompleted {
		t.Fatalf("segment 3 status = %q, want completed", u.Status)
	}

	for _, id := range []int64{1, 2, 4} {
		if h := store.statusHistory(id); len(h) != 0 {
			t.Errorf("segment %d got status writes %v, want none", id, h)
		}
	}
}

func TestWorker_DedupesQueue(t *testing.T) {
	store := newFakeSegmentStore()
	w := NewWorker(NewClient("", "voice", 1.0, time.Second), store, t.TempDir())

	w.Enqueue(1, 1, 2, 1)

	if n := w.QueueLen(); n != 2 {
		t.Errorf("QueueLen() = %d, want 2", n)
	}
}

func TestWorker_CloseIsIdempotent(t *testing.T) {
	store := newFakeSegmentStore()
	w := NewWorker(NewClient("", "voice", 1.0, time.Second), store, t.TempDir())
	w.Start()

	w.Close()
	w.Close()
}
