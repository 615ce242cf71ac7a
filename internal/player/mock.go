package player

import (
	"sync"
	"time"
)

// MockDevice is an in-memory Device for tests. End-of-stream and failure
// events are driven explicitly with SimulateEnded and SimulateError, and
// both run the handler synchronously on the calling goroutine.
type MockDevice struct {
	mu sync.Mutex

	state    State
	path     string
	duration time.Duration

	loadErr error
	playErr error

	loadCalls   []string
	playCount   int
	pauseCount  int
	rewindCount int

	onEnded  func()
	onFailed func(error)
}

var _ Device = (*MockDevice)(nil)

func NewMock() *MockDevice {
	return &MockDevice{state: Stopped}
}

func (m *MockDevice) Load(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadCalls = append(m.loadCalls, path)
	if m.loadErr != nil {
		return m.loadErr
	}
	m.path = path
	m.state = Stopped
	return nil
}

func (m *MockDevice) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCount++
	if m.playErr != nil {
		return m.playErr
	}
	if m.path == "" {
		return ErrNoSource
	}
	m.state = Playing
	return nil
}

func (m *MockDevice) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauseCount++
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *MockDevice) Rewind() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rewindCount++
	return nil
}

func (m *MockDevice) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *MockDevice) Position() time.Duration { return 0 }

func (m *MockDevice) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *MockDevice) SetHandlers(ended func(), failed func(error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEnded = ended
	m.onFailed = failed
}

func (m *MockDevice) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.path = ""
	m.state = Stopped
	return nil
}

// SimulateEnded plays out a natural end of the loaded stream: the device
// stops and the ended handler, if any, runs synchronously.
func (m *MockDevice) SimulateEnded() {
	m.mu.Lock()
	m.state = Stopped
	ended := m.onEnded
	m.mu.Unlock()
	if ended != nil {
		ended()
	}
}

// SimulateError plays out a mid-stream failure.
func (m *MockDevice) SimulateError(err error) {
	m.mu.Lock()
	m.state = Stopped
	failed := m.onFailed
	m.mu.Unlock()
	if failed != nil {
		failed(err)
	}
}

// EndedHandler returns the currently attached ended handler so a test can
// hold on to it and invoke it after it has gone stale.
func (m *MockDevice) EndedHandler() func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.onEnded
}

// ErrorHandler returns the currently attached failure handler.
func (m *MockDevice) ErrorHandler() func(error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.onFailed
}

func (m *MockDevice) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

func (m *MockDevice) SetPlayError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErr = err
}

func (m *MockDevice) SetDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = d
}

func (m *MockDevice) LoadCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]string, len(m.loadCalls))
	copy(calls, m.loadCalls)
	return calls
}

func (m *MockDevice) PlayCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCount
}

func (m *MockDevice) PauseCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauseCount
}

func (m *MockDevice) RewindCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rewindCount
}

func (m *MockDevice) LoadedPath() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.path
}
