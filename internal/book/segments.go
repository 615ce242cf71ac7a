package book

import (
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/fable/internal/db"
)

const segmentColumns = `id, chapter_id, position, kind, text, pause_ms, status, audio_path, voice, duration_ms, updated_at`

func scanSegment(row interface{ Scan(...any) error }) (Segment, error) {
	var seg Segment
	err := row.Scan(&seg.ID, &seg.ChapterID, &seg.Position, &seg.Kind, &seg.Text, &seg.PauseMs,
		&seg.Status, &seg.AudioPath, &seg.Voice, &seg.DurationMs, &seg.UpdatedAt)
	return seg, err
}

// Segments returns a chapter's segments in playback order.
func (s *Store) Segments(chapterID int64) ([]Segment, error) {
	rows, err := s.db.Query(`
		SELECT `+segmentColumns+` FROM segments WHERE chapter_id = ? ORDER BY position
	`, chapterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var segments []Segment
	for rows.Next() {
		seg, err := scanSegment(rows)
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}
	return segments, rows.Err()
}

// Segment returns a single segment, or nil if it does not exist.
func (s *Store) Segment(id int64) (*Segment, error) {
	seg, err := scanSegment(s.db.QueryRow(`
		SELECT `+segmentColumns+` FROM segments WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // missing segment is not an error
	}
	if err != nil {
		return nil, err
	}
	return &seg, nil
}

// SetSegmentText rewrites a narrated segment's text. The old narration no
// longer matches, so the segment drops back to pending and its audio is
// forgotten.
func (s *Store) SetSegmentText(id int64, text string) error {
	_, err := s.db.Exec(`
		UPDATE segments
		SET text = ?, status = ?, audio_path = '', duration_ms = 0, updated_at = ?
		WHERE id = ? AND kind = ?
	`, text, string(StatusPending), time.Now().Unix(), id, string(KindStandard))
	return err
}

// SetSegmentStatus moves a segment through the synthesis pipeline.
func (s *Store) SetSegmentStatus(id int64, status Status) error {
	_, err := s.db.Exec(`
		UPDATE segments SET status = ?, updated_at = ? WHERE id = ?
	`, string(status), time.Now().Unix(), id)
	return err
}

// SetSegmentAudio records finished narration for a segment.
func (s *Store) SetSegmentAudio(id int64, path, voice string, durationMs int64) error {
	_, err := s.db.Exec(`
		UPDATE segments
		SET status = ?, audio_path = ?, voice = ?, duration_ms = ?, updated_at = ?
		WHERE id = ?
	`, string(StatusCompleted), path, voice, durationMs, time.Now().Unix(), id)
	return err
}

// ResetProcessingSegments drops segments stuck in processing back to
// pending. Called once at startup: a previous run may have died mid-job.
func (s *Store) ResetProcessingSegments() error {
	_, err := s.db.Exec(`
		UPDATE segments SET status = ? WHERE status = ?
	`, string(StatusPending), string(StatusProcessing))
	return err
}

// PendingSegments returns the ids of a chapter's narrated segments that
// still need synthesis, in playback order.
func (s *Store) PendingSegments(chapterID int64) ([]int64, error) {
	rows, err := s.db.Query(`
		SELECT id FROM segments
		WHERE chapter_id = ? AND kind = ? AND status IN (?, ?)
		ORDER BY position
	`, chapterID, string(KindStandard), string(StatusPending), string(StatusFailed))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SegmentCounts summarizes a chapter's synthesis progress.
type SegmentCounts struct {
	Total     int
	Completed int
	Failed    int
}

// CountSegments tallies a chapter's narrated segments by status.
func (s *Store) CountSegments(chapterID int64) (SegmentCounts, error) {
	var c SegmentCounts
	err := s.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(status = ?), 0),
		       COALESCE(SUM(status = ?), 0)
		FROM segments WHERE chapter_id = ? AND kind = ?
	`, string(StatusCompleted), string(StatusFailed), chapterID, string(KindStandard)).
		Scan(&c.Total, &c.Completed, &c.Failed)
	return c, err
}

// InsertDividerAfter adds a silent divider right after the given segment,
// shifting everything behind it one position back.
func (s *Store) InsertDividerAfter(segmentID, pauseMs int64) (int64, error) {
	var chapterID int64
	var pos int
	err := s.db.QueryRow(`
		SELECT chapter_id, position FROM segments WHERE id = ?
	`, segmentID).Scan(&chapterID, &pos)
	if err != nil {
		return 0, err
	}

	var dividerID int64
	err = dbutil.WithTx(s.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			UPDATE segments SET position = position + 1 WHERE chapter_id = ? AND position > ?
		`, chapterID, pos); err != nil {
			return err
		}
		res, err := tx.Exec(`
			INSERT INTO segments (chapter_id, position, kind, text, pause_ms, status, audio_path, voice, duration_ms, updated_at)
			VALUES (?, ?, ?, '', ?, ?, '', '', 0, ?)
		`, chapterID, pos+1, string(KindDivider), pauseMs, string(StatusCompleted), time.Now().Unix())
		if err != nil {
			return err
		}
		dividerID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, err
	}
	return dividerID, nil
}

// DeleteSegment removes a segment and closes the position gap it leaves.
func (s *Store) DeleteSegment(id int64) error {
	var chapterID int64
	var pos int
	err := s.db.QueryRow(`
		SELECT chapter_id, position FROM segments WHERE id = ?
	`, id).Scan(&chapterID, &pos)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	return dbutil.WithTx(s.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM segments WHERE id = ?`, id); err != nil {
			return err
		}
		_, err := tx.Exec(`
			UPDATE segments SET position = position - 1 WHERE chapter_id = ? AND position > ?
		`, chapterID, pos)
		return err
	})
}
