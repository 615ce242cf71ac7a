package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "fable"
	dbFileName   = "fable.db"
	saveDebounce = 500 * time.Millisecond
)

// Manager owns the application database: book content, synthesis progress,
// playback settings and the last reading position.
type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *NavigationState
}

// Open opens the database at its XDG data path, creating it on first run.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	return OpenPath(dbPath)
}

// OpenPath opens the database at an explicit path. Tests use ":memory:".
func OpenPath(path string) (*Manager, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Pragmas apply per connection; keep a single one so they stick, and
	// so ":memory:" stays one database.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL`); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db}, nil
}

// Close flushes any pending navigation save and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	if pending != nil {
		_ = saveNavigation(m.db, *pending)
	}

	return m.db.Close()
}

// DB exposes the handle for the stores that share this database.
func (m *Manager) DB() *sql.DB {
	return m.db
}

// GetNavigation returns the saved reading position.
func (m *Manager) GetNavigation() (*NavigationState, error) {
	return getNavigation(m.db)
}

// SaveNavigation persists the reading position, debounced so cursor
// movement does not hammer the database.
func (m *Manager) SaveNavigation(state NavigationState) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &state

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = saveNavigation(m.db, *pending)
		}
	})
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
