package state

import (
	"database/sql"
	"errors"
	"strconv"
	"time"
)

// Defaults for settings that have never been written.
const (
	defaultSegmentGapMs   = 500
	defaultDividerPauseMs = 2000
)

const (
	keySegmentGap   = "playback.segment_gap_ms"
	keyDividerPause = "playback.divider_pause_ms"
)

func (m *Manager) setting(key string) (string, bool, error) {
	var value string
	err := m.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (m *Manager) setSetting(key, value string) error {
	_, err := m.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// intSetting reads an integer setting, falling back to the default on a
// missing key, unreadable value or database error.
func (m *Manager) intSetting(key string, fallback int64) int64 {
	value, ok, err := m.setting(key)
	if err != nil || !ok {
		return fallback
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

// SegmentGap returns the silence inserted between consecutive narrated
// segments. The playback scheduler consults it at every transition, so a
// change applies from the next one on.
func (m *Manager) SegmentGap() time.Duration {
	return time.Duration(m.intSetting(keySegmentGap, defaultSegmentGapMs)) * time.Millisecond
}

// SetSegmentGap persists the inter-segment silence.
func (m *Manager) SetSegmentGap(d time.Duration) error {
	return m.setSetting(keySegmentGap, strconv.FormatInt(d.Milliseconds(), 10))
}

// DividerPause returns the silence for dividers that do not carry their
// own duration.
func (m *Manager) DividerPause() time.Duration {
	return time.Duration(m.intSetting(keyDividerPause, defaultDividerPauseMs)) * time.Millisecond
}

// SetDividerPause persists the default divider silence.
func (m *Manager) SetDividerPause(d time.Duration) error {
	return m.setSetting(keyDividerPause, strconv.FormatInt(d.Milliseconds(), 10))
}
