package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/hmori/jflash/internal/logger"
	"github.com/hmori/jflash/internal/models"
	"github.com/hmori/jflash/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) InsertSnapshot(ctx context.Context, deviceID string, stats models.OverviewStats, takenAt time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("inserting stats snapshot: device=%s, total=%d, learned=%d", deviceID, stats.TotalWords, stats.LearnedWords)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO stats_snapshots (device_id, total_words, learned_words, mastered_words, new_words, due_today, taken_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, deviceID, stats.TotalWords, stats.LearnedWords, stats.MasteredWords, stats.NewWords, stats.DueToday, takenAt)
	if err != nil {
		log.Error("failed to insert stats snapshot: %v", err)
	}
	return err
}

// Devices returns every device id with at least one review record.
func (r *statsRepository) Devices(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")

	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT device_id FROM review_records ORDER BY device_id`)
	if err != nil {
		log.Error("failed to query devices: %v", err)
		return nil, err
	}
	defer rows.Close()

	var devices []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			log.Error("failed to scan device id: %v", err)
			return nil, err
		}
		devices = append(devices, d)
	}
	return devices, rows.Err()
}
