package repository

import (
	"context"
	"time"

	"github.com/hmori/jflash/internal/models"
)

// VocabularyRepository handles catalog data access
type VocabularyRepository interface {
	Get(ctx context.Context, id int64) (*models.Vocabulary, error)
	List(ctx context.Context, filter models.VocabFilter) ([]models.Vocabulary, error)
	Count(ctx context.Context, filter models.VocabFilter) (int, error)
	Insert(ctx context.Context, v models.Vocabulary) (int64, error)
	InsertBatch(ctx context.Context, vs []models.Vocabulary) ([]int64, error)
	Update(ctx context.Context, v models.Vocabulary) error
	SetStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, kanji, reading, meaning string) (bool, error)
}

// ReviewRepository handles per-device scheduling state access
type ReviewRepository interface {
	Get(ctx context.Context, deviceID string, vocabID int64) (*models.ReviewRecord, error)
	MapForDevice(ctx context.Context, deviceID string) (map[int64]models.ReviewRecord, error)
	Upsert(ctx context.Context, rec models.ReviewRecord) error
	Delete(ctx context.Context, deviceID string, vocabID int64) error
	DueCards(ctx context.Context, deviceID string, cutoff time.Time, limit int) ([]models.ReviewCard, error)
	CountDue(ctx context.Context, deviceID string, cutoff time.Time) (int, error)
}

// StudyLogRepository handles review event history access
type StudyLogRepository interface {
	Insert(ctx context.Context, entry models.StudyLog) error
	ListSince(ctx context.Context, deviceID string, since time.Time) ([]models.StudyLog, error)
	StudyDates(ctx context.Context, deviceID string) ([]string, error)
}

// StatsRepository handles persisted statistics snapshots
type StatsRepository interface {
	InsertSnapshot(ctx context.Context, deviceID string, stats models.OverviewStats, takenAt time.Time) error
	Devices(ctx context.Context) ([]string, error)
}
