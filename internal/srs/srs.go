// Package srs implements the spaced-repetition scheduling engine, an SM-2
// variant operating on per-device review records. All functions are pure:
// the caller supplies the clock and persists the result.
package srs

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/hmori/jflash/internal/models"
)

const (
	// DefaultEase is the ease factor assigned on first review.
	DefaultEase = 2.5
	// MinEase is the floor below which the ease factor never drops.
	MinEase = 1.3
	// EaseFailPenalty is subtracted from the ease factor on a failed review.
	EaseFailPenalty = 0.2
	// MaxIntervalDays caps interval growth so a run of easy reviews cannot
	// push an item out more than a year.
	MaxIntervalDays = 365
	// MasteryThreshold is the repetition count at which an item counts as
	// mastered in stats and ranking.
	MasteryThreshold = 5
)

var (
	ErrInvalidGrade = errors.New("grade outside the 0-5 range")
	ErrInvalidState = errors.New("review record violates scheduling invariants")
)

// Grade is the reviewer's quality signal on the SM-2 0-5 scale.
// Grades of 3 and above are passing.
type Grade int

const (
	GradeFail Grade = 1
	GradeHard Grade = 3
	GradeGood Grade = 4
	GradeEasy Grade = 5

	passingGrade Grade = 3
)

// Valid reports whether g is within the enumerated domain.
func (g Grade) Valid() bool {
	return g >= 0 && g <= 5
}

// Passing reports whether g counts as a successful review.
func (g Grade) Passing() bool {
	return g >= passingGrade
}

// Apply computes the next scheduling state for a single review event.
// A nil prev means the item has never been reviewed: scheduling starts from
// the defaults (interval 0, ease 2.5, reps 0). Device and vocabulary
// identifiers are carried through unchanged; on a nil prev they are left
// zero for the caller to fill in.
//
// On a failing grade the repetition count resets to 0, the interval resets
// to 1 day and the ease factor drops by EaseFailPenalty. On a passing grade
// the repetition count increments and the interval follows the SM-2
// schedule: 1 day, then 6 days, then round(interval * ease).
func Apply(prev *models.ReviewRecord, grade Grade, now time.Time) (models.ReviewRecord, error) {
	if !grade.Valid() {
		return models.ReviewRecord{}, fmt.Errorf("%w: %d", ErrInvalidGrade, grade)
	}

	rec := models.ReviewRecord{EaseFactor: DefaultEase}
	if prev != nil {
		if prev.IntervalDays < 0 {
			return models.ReviewRecord{}, fmt.Errorf("%w: negative interval %d", ErrInvalidState, prev.IntervalDays)
		}
		if prev.EaseFactor <= 0 {
			return models.ReviewRecord{}, fmt.Errorf("%w: non-positive ease factor %g", ErrInvalidState, prev.EaseFactor)
		}
		rec = *prev
	}

	if grade.Passing() {
		switch rec.Reps {
		case 0:
			rec.IntervalDays = 1
		case 1:
			rec.IntervalDays = 6
		default:
			rec.IntervalDays = int(math.Round(float64(rec.IntervalDays) * rec.EaseFactor))
		}
		if rec.IntervalDays > MaxIntervalDays {
			rec.IntervalDays = MaxIntervalDays
		}
		rec.EaseFactor = clampEase(rec.EaseFactor + easeDelta(grade))
		rec.Reps++
	} else {
		rec.IntervalDays = 1
		rec.EaseFactor = clampEase(rec.EaseFactor - EaseFailPenalty)
		rec.Reps = 0
	}

	rec.NextReview = now.AddDate(0, 0, rec.IntervalDays)
	rec.UpdatedAt = now
	return rec, nil
}

// easeDelta is the standard SM-2 ease adjustment for a passing grade q:
// 0.1 - (5-q)*(0.08 + (5-q)*0.02).
func easeDelta(grade Grade) float64 {
	q := float64(grade)
	return 0.1 - (5-q)*(0.08+(5-q)*0.02)
}

func clampEase(ef float64) float64 {
	if ef < MinEase {
		return MinEase
	}
	return ef
}
