package state

import (
	"database/sql"
)

const currentSchemaVersion = 2

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS books (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			author TEXT NOT NULL DEFAULT '',
			cover_path TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS chapters (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			book_id INTEGER NOT NULL REFERENCES books(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			title TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_chapters_book ON chapters(book_id, position);

		CREATE TABLE IF NOT EXISTS segments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			chapter_id INTEGER NOT NULL REFERENCES chapters(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			kind TEXT NOT NULL DEFAULT 'standard',
			text TEXT NOT NULL DEFAULT '',
			pause_ms INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'pending',
			audio_path TEXT NOT NULL DEFAULT '',
			voice TEXT NOT NULL DEFAULT '',
			duration_ms INTEGER NOT NULL DEFAULT 0,
			updated_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_segments_chapter ON segments(chapter_id, position);
		CREATE INDEX IF NOT EXISTS idx_segments_status ON segments(status);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS navigation_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			book_id INTEGER,
			chapter_id INTEGER,
			segment_id INTEGER
		);
	`)
	if err != nil {
		return err
	}

	// Set initial version if not exists
	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	if err != nil {
		return err
	}

	// Migrations: add columns introduced after the first release
	_, _ = db.Exec(`ALTER TABLE segments ADD COLUMN voice TEXT NOT NULL DEFAULT ''`)
	_, _ = db.Exec(`ALTER TABLE books ADD COLUMN cover_path TEXT NOT NULL DEFAULT ''`)

	return nil
}
