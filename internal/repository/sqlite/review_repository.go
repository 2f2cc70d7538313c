package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/hmori/jflash/internal/logger"
	"github.com/hmori/jflash/internal/models"
	"github.com/hmori/jflash/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new ReviewRepository implementation
func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Get(ctx context.Context, deviceID string, vocabID int64) (*models.ReviewRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("getting review record: device=%s, vocab_id=%d", deviceID, vocabID)

	var rec models.ReviewRecord
	err := r.db.QueryRowContext(ctx, `
SELECT device_id, vocab_id, interval_days, ease_factor, next_review, reps, updated_at
FROM review_records
WHERE device_id = ? AND vocab_id = ?
`, deviceID, vocabID).Scan(&rec.DeviceID, &rec.VocabID, &rec.IntervalDays, &rec.EaseFactor, &rec.NextReview, &rec.Reps, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no review record: device=%s, vocab_id=%d", deviceID, vocabID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get review record: %v", err)
		return nil, err
	}
	return &rec, nil
}

func (r *reviewRepository) MapForDevice(ctx context.Context, deviceID string) (map[int64]models.ReviewRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("loading review records: device=%s", deviceID)

	rows, err := r.db.QueryContext(ctx, `
SELECT device_id, vocab_id, interval_days, ease_factor, next_review, reps, updated_at
FROM review_records
WHERE device_id = ?
`, deviceID)
	if err != nil {
		log.Error("failed to query review records: %v", err)
		return nil, err
	}
	defer rows.Close()

	states := make(map[int64]models.ReviewRecord)
	for rows.Next() {
		var rec models.ReviewRecord
		if err := rows.Scan(&rec.DeviceID, &rec.VocabID, &rec.IntervalDays, &rec.EaseFactor, &rec.NextReview, &rec.Reps, &rec.UpdatedAt); err != nil {
			log.Error("failed to scan review record: %v", err)
			return nil, err
		}
		states[rec.VocabID] = rec
	}
	log.Debug("loaded %d review records", len(states))
	return states, rows.Err()
}

// Upsert writes the record atomically, keyed on (device_id, vocab_id).
// Concurrent writers resolve last-write-wins.
func (r *reviewRepository) Upsert(ctx context.Context, rec models.ReviewRecord) error {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("upserting review record: device=%s, vocab_id=%d, interval=%d, ease=%.2f, reps=%d",
		rec.DeviceID, rec.VocabID, rec.IntervalDays, rec.EaseFactor, rec.Reps)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO review_records (device_id, vocab_id, interval_days, ease_factor, next_review, reps, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (device_id, vocab_id) DO UPDATE SET
    interval_days = excluded.interval_days,
    ease_factor = excluded.ease_factor,
    next_review = excluded.next_review,
    reps = excluded.reps,
    updated_at = excluded.updated_at
`, rec.DeviceID, rec.VocabID, rec.IntervalDays, rec.EaseFactor, rec.NextReview, rec.Reps, rec.UpdatedAt)
	if err != nil {
		log.Error("failed to upsert review record: %v", err)
	}
	return err
}

func (r *reviewRepository) Delete(ctx context.Context, deviceID string, vocabID int64) error {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("deleting review record: device=%s, vocab_id=%d", deviceID, vocabID)

	_, err := r.db.ExecContext(ctx, `DELETE FROM review_records WHERE device_id = ? AND vocab_id = ?`, deviceID, vocabID)
	if err != nil {
		log.Error("failed to delete review record: %v", err)
	}
	return err
}

func (r *reviewRepository) DueCards(ctx context.Context, deviceID string, cutoff time.Time, limit int) ([]models.ReviewCard, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("fetching due cards: device=%s, limit=%d", deviceID, limit)

	rows, err := r.db.QueryContext(ctx, `
SELECT v.id, v.kanji, v.reading, v.meaning, v.pos, v.jlpt_level, v.example_sentence, v.example_meaning, v.notes, v.status, v.created_at,
       r.interval_days, r.ease_factor, r.reps
FROM review_records r
JOIN vocabulary v ON v.id = r.vocab_id
WHERE r.device_id = ? AND r.next_review <= ? AND v.status = 'active'
ORDER BY r.next_review ASC
LIMIT ?
`, deviceID, cutoff, limit)
	if err != nil {
		log.Error("failed to query due cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.ReviewCard
	for rows.Next() {
		var c models.ReviewCard
		var reading, meaning, pos, jlpt, exSentence, exMeaning, notes sql.NullString
		if err := rows.Scan(&c.ID, &c.Kanji, &reading, &meaning, &pos, &jlpt, &exSentence, &exMeaning, &notes, &c.Status, &c.CreatedAt,
			&c.IntervalDays, &c.EaseFactor, &c.Reps); err != nil {
			log.Error("failed to scan due card: %v", err)
			return nil, err
		}
		c.Reading = reading.String
		c.Meaning = meaning.String
		c.POS = pos.String
		c.JLPTLevel = jlpt.String
		c.ExampleSentence = exSentence.String
		c.ExampleMeaning = exMeaning.String
		c.Notes = notes.String
		cards = append(cards, c)
	}
	log.Debug("found %d due cards", len(cards))
	return cards, rows.Err()
}

func (r *reviewRepository) CountDue(ctx context.Context, deviceID string, cutoff time.Time) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")

	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*)
FROM review_records r
JOIN vocabulary v ON v.id = r.vocab_id
WHERE r.device_id = ? AND r.next_review <= ? AND v.status = 'active'
`, deviceID, cutoff).Scan(&count)
	if err != nil {
		log.Error("failed to count due cards: %v", err)
		return 0, err
	}
	return count, nil
}
