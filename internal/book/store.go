package book

import (
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/fable/internal/db"
)

// Store provides database operations for books, chapters and segments.
type Store struct {
	db *sql.DB
}

// New creates a new Store instance.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Books returns all books ordered by title.
func (s *Store) Books() ([]Book, error) {
	rows, err := s.db.Query(`
		SELECT id, title, author, cover_path, created_at, updated_at
		FROM books ORDER BY title COLLATE NOCASE
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.CoverPath, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// Book returns a single book, or nil if it does not exist.
func (s *Store) Book(id int64) (*Book, error) {
	var b Book
	err := s.db.QueryRow(`
		SELECT id, title, author, cover_path, created_at, updated_at FROM books WHERE id = ?
	`, id).Scan(&b.ID, &b.Title, &b.Author, &b.CoverPath, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // missing book is not an error
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// RenameBook renames a book.
func (s *Store) RenameBook(id int64, title string) error {
	_, err := s.db.Exec(`
		UPDATE books SET title = ?, updated_at = ? WHERE id = ?
	`, title, time.Now().Unix(), id)
	return err
}

// DeleteBook deletes a book with its chapters and segments.
func (s *Store) DeleteBook(id int64) error {
	return dbutil.WithTx(s.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			DELETE FROM segments WHERE chapter_id IN (SELECT id FROM chapters WHERE book_id = ?)
		`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM chapters WHERE book_id = ?`, id); err != nil {
			return err
		}
		_, err := tx.Exec(`DELETE FROM books WHERE id = ?`, id)
		return err
	})
}

// ImportBook inserts a parsed manuscript as one book. Everything lands in
// a single transaction; a half-imported book never survives.
func (s *Store) ImportBook(d Draft) (int64, error) {
	now := time.Now().Unix()
	var bookID int64

	err := dbutil.WithTx(s.db, func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			INSERT INTO books (title, author, cover_path, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		`, d.Title, d.Author, d.CoverPath, now, now)
		if err != nil {
			return err
		}
		bookID, err = res.LastInsertId()
		if err != nil {
			return err
		}

		for chPos, ch := range d.Chapters {
			res, err := tx.Exec(`
				INSERT INTO chapters (book_id, position, title) VALUES (?, ?, ?)
			`, bookID, chPos, ch.Title)
			if err != nil {
				return err
			}
			chapterID, err := res.LastInsertId()
			if err != nil {
				return err
			}

			for segPos, seg := range ch.Segments {
				status := StatusPending
				if seg.Kind == KindDivider {
					status = StatusCompleted
				}
				_, err := tx.Exec(`
					INSERT INTO segments (chapter_id, position, kind, text, pause_ms, status, audio_path, voice, duration_ms, updated_at)
					VALUES (?, ?, ?, ?, ?, ?, '', '', 0, ?)
				`, chapterID, segPos, string(seg.Kind), seg.Text, seg.PauseMs, string(status), now)
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return bookID, nil
}
