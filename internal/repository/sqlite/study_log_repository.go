package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/hmori/jflash/internal/logger"
	"github.com/hmori/jflash/internal/models"
	"github.com/hmori/jflash/internal/repository"
)

type studyLogRepository struct {
	db *sql.DB
}

// NewStudyLogRepository creates a new StudyLogRepository implementation
func NewStudyLogRepository(db *sql.DB) repository.StudyLogRepository {
	return &studyLogRepository{db: db}
}

func (r *studyLogRepository) Insert(ctx context.Context, entry models.StudyLog) error {
	log := logger.FromContext(ctx).WithPrefix("study_log_repo")
	log.Debug("inserting study log: device=%s, vocab_id=%d, grade=%d", entry.DeviceID, entry.VocabID, entry.Grade)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO study_log (device_id, vocab_id, grade, studied_at)
VALUES (?, ?, ?, ?)
`, entry.DeviceID, entry.VocabID, entry.Grade, entry.StudiedAt)
	if err != nil {
		log.Error("failed to insert study log: %v", err)
	}
	return err
}

func (r *studyLogRepository) ListSince(ctx context.Context, deviceID string, since time.Time) ([]models.StudyLog, error) {
	log := logger.FromContext(ctx).WithPrefix("study_log_repo")
	log.Debug("listing study log: device=%s, since=%s", deviceID, since.Format("2006-01-02"))

	rows, err := r.db.QueryContext(ctx, `
SELECT id, device_id, vocab_id, grade, studied_at
FROM study_log
WHERE device_id = ? AND studied_at >= ?
ORDER BY studied_at ASC
`, deviceID, since)
	if err != nil {
		log.Error("failed to query study log: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.StudyLog
	for rows.Next() {
		var e models.StudyLog
		if err := rows.Scan(&e.ID, &e.DeviceID, &e.VocabID, &e.Grade, &e.StudiedAt); err != nil {
			log.Error("failed to scan study log row: %v", err)
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// StudyDates returns the distinct local dates (YYYY-MM-DD) with at least one
// review event, newest first.
func (r *studyLogRepository) StudyDates(ctx context.Context, deviceID string) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("study_log_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT DISTINCT date(studied_at, 'localtime')
FROM study_log
WHERE device_id = ?
ORDER BY 1 DESC
`, deviceID)
	if err != nil {
		log.Error("failed to query study dates: %v", err)
		return nil, err
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			log.Error("failed to scan study date: %v", err)
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}
