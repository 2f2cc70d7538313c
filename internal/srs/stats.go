package srs

import (
	"time"

	"github.com/hmori/jflash/internal/models"
)

// Learning reports whether a record is in the learning band: reviewed at
// least once but not yet at the mastery threshold. Ranking and stats share
// this predicate so their views of "learning" never drift apart.
func Learning(rec models.ReviewRecord) bool {
	return rec.Reps > 0 && rec.Reps < MasteryThreshold
}

// Mastered reports whether a record has reached the mastery threshold.
func Mastered(rec models.ReviewRecord) bool {
	return rec.Reps >= MasteryThreshold
}

// Summarize folds the catalog and scheduling states into overview counts.
// Items without a record count as new. "Due today" means next review at or
// before the end of the local day containing now.
func Summarize(items []models.Vocabulary, states map[int64]models.ReviewRecord, now time.Time) models.OverviewStats {
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())

	stats := models.OverviewStats{TotalWords: len(items)}
	for _, item := range items {
		rec, ok := states[item.ID]
		if !ok {
			stats.NewWords++
			continue
		}
		if rec.Reps > 0 {
			stats.LearnedWords++
		}
		if Mastered(rec) {
			stats.MasteredWords++
		}
		if !rec.NextReview.After(endOfDay) {
			stats.DueToday++
		}
	}
	if stats.TotalWords > 0 {
		stats.LearningProgress = float64(stats.LearnedWords) / float64(stats.TotalWords) * 100
	}
	return stats
}
