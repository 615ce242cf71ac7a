package book

import (
	"database/sql"
	"errors"
)

// Chapters returns a book's chapters in reading order.
func (s *Store) Chapters(bookID int64) ([]Chapter, error) {
	rows, err := s.db.Query(`
		SELECT id, book_id, position, title
		FROM chapters WHERE book_id = ? ORDER BY position
	`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chapters []Chapter
	for rows.Next() {
		var c Chapter
		if err := rows.Scan(&c.ID, &c.BookID, &c.Position, &c.Title); err != nil {
			return nil, err
		}
		chapters = append(chapters, c)
	}
	return chapters, rows.Err()
}

// Chapter returns a single chapter, or nil if it does not exist.
func (s *Store) Chapter(id int64) (*Chapter, error) {
	var c Chapter
	err := s.db.QueryRow(`
		SELECT id, book_id, position, title FROM chapters WHERE id = ?
	`, id).Scan(&c.ID, &c.BookID, &c.Position, &c.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // missing chapter is not an error
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// RenameChapter renames a chapter.
func (s *Store) RenameChapter(id int64, title string) error {
	_, err := s.db.Exec(`UPDATE chapters SET title = ? WHERE id = ?`, title, id)
	return err
}
