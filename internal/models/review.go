package models

import "time"

// ReviewRecord is the per-(device, vocabulary) scheduling state. At most one
// record exists per pair, enforced by a UNIQUE constraint. Absence of a
// record means the item has never been reviewed on that device.
type ReviewRecord struct {
	DeviceID     string    `json:"device_id"`
	VocabID      int64     `json:"vocab_id"`
	IntervalDays int       `json:"interval_days"`
	EaseFactor   float64   `json:"ease_factor"`
	NextReview   time.Time `json:"next_review"`
	Reps         int       `json:"reps"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StudyLog is one row per review event, kept for daily stats and streaks.
type StudyLog struct {
	ID        int64     `json:"id"`
	DeviceID  string    `json:"device_id"`
	VocabID   int64     `json:"vocab_id"`
	Grade     int       `json:"grade"`
	StudiedAt time.Time `json:"studied_at"`
}

// ReviewCard joins a due scheduling record with its catalog entry for the
// review queue endpoint.
type ReviewCard struct {
	Vocabulary
	IntervalDays int     `json:"interval_days"`
	EaseFactor   float64 `json:"ease_factor"`
	Reps         int     `json:"reps"`
}
