package state

import (
	"database/sql"
	"errors"

	dbutil "github.com/llehouerou/fable/internal/db"
)

// NavigationState is the last reading position: which book, chapter and
// segment the user was on. Zero ids mean nothing was selected.
type NavigationState struct {
	BookID    int64
	ChapterID int64
	SegmentID int64
}

func getNavigation(db *sql.DB) (*NavigationState, error) {
	row := db.QueryRow(`
		SELECT book_id, chapter_id, segment_id FROM navigation_state WHERE id = 1
	`)

	var bookID, chapterID, segmentID sql.NullInt64
	err := row.Scan(&bookID, &chapterID, &segmentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved position is valid on first run
	}
	if err != nil {
		return nil, err
	}

	return &NavigationState{
		BookID:    dbutil.NullInt64Value(bookID),
		ChapterID: dbutil.NullInt64Value(chapterID),
		SegmentID: dbutil.NullInt64Value(segmentID),
	}, nil
}

func saveNavigation(db *sql.DB, state NavigationState) error {
	_, err := db.Exec(`
		INSERT INTO navigation_state (id, book_id, chapter_id, segment_id)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			book_id = excluded.book_id,
			chapter_id = excluded.chapter_id,
			segment_id = excluded.segment_id
	`, nullableID(state.BookID), nullableID(state.ChapterID), nullableID(state.SegmentID))
	return err
}

func nullableID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
