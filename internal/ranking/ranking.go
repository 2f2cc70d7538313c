// Package ranking orders the vocabulary catalog for review and display.
// Rankers are pure: they never mutate the catalog or the scheduling states,
// and every criterion uses a stable sort so ties keep their input order.
package ranking

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hmori/jflash/internal/models"
	"github.com/hmori/jflash/internal/srs"
)

// ErrUnknownCriterion is returned when a sort criterion is outside the
// enumerated set.
var ErrUnknownCriterion = errors.New("unknown sort criterion")

// Criterion selects the comparator strategy used by Rank.
type Criterion string

const (
	// CriterionPriority surfaces the weakest items first using a composite
	// urgency score (smaller means more urgent).
	CriterionPriority Criterion = "priority"
	// CriterionNewFirst puts items with no scheduling state before seen ones.
	CriterionNewFirst Criterion = "new-first"
	// CriterionLearningFirst puts items in the learning band first,
	// struggling (low ease) items leading.
	CriterionLearningFirst Criterion = "learning-first"
	// CriterionMasteryFirst orders by repetition count, most reviewed first.
	CriterionMasteryFirst Criterion = "mastery-first"
	// CriterionRecency orders by identifier descending, a proxy for catalog
	// insertion recency.
	CriterionRecency Criterion = "recency"
)

// ParseCriterion validates a criterion supplied by a caller.
func ParseCriterion(s string) (Criterion, error) {
	switch c := Criterion(s); c {
	case CriterionPriority, CriterionNewFirst, CriterionLearningFirst,
		CriterionMasteryFirst, CriterionRecency:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCriterion, s)
}

// lessFunc compares two catalog entries given their scheduling states.
// A nil record means the item has never been reviewed.
type lessFunc func(a, b models.Vocabulary, ra, rb *models.ReviewRecord) bool

var comparators = map[Criterion]lessFunc{
	CriterionPriority:      priorityLess,
	CriterionNewFirst:      newFirstLess,
	CriterionLearningFirst: learningFirstLess,
	CriterionMasteryFirst:  masteryFirstLess,
	CriterionRecency:       recencyLess,
}

// Rank returns a new slice with items ordered by the given criterion.
// Items absent from states are treated per the criterion's default (new,
// zero reps, zero score), never as an error.
func Rank(items []models.Vocabulary, states map[int64]models.ReviewRecord, criterion Criterion) ([]models.Vocabulary, error) {
	less, ok := comparators[criterion]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCriterion, criterion)
	}

	ranked := make([]models.Vocabulary, len(items))
	copy(ranked, items)

	sort.SliceStable(ranked, func(i, j int) bool {
		return less(ranked[i], ranked[j], lookup(states, ranked[i].ID), lookup(states, ranked[j].ID))
	})
	return ranked, nil
}

func lookup(states map[int64]models.ReviewRecord, id int64) *models.ReviewRecord {
	if rec, ok := states[id]; ok {
		return &rec
	}
	return nil
}

// PriorityScore is the composite urgency rank key: 0 for unseen items, 1
// for seen items that have never passed, otherwise
// 2 + min(reps, 10) - (2.5 - ease) * 10. Smaller sorts first.
func PriorityScore(rec *models.ReviewRecord) float64 {
	switch {
	case rec == nil:
		return 0
	case rec.Reps == 0:
		return 1
	}
	reps := rec.Reps
	if reps > 10 {
		reps = 10
	}
	return 2 + float64(reps) - (srs.DefaultEase-rec.EaseFactor)*10
}

func priorityLess(_, _ models.Vocabulary, ra, rb *models.ReviewRecord) bool {
	return PriorityScore(ra) < PriorityScore(rb)
}

func newFirstLess(_, _ models.Vocabulary, ra, rb *models.ReviewRecord) bool {
	return ra == nil && rb != nil
}

func learningFirstLess(_, _ models.Vocabulary, ra, rb *models.ReviewRecord) bool {
	la := ra != nil && srs.Learning(*ra)
	lb := rb != nil && srs.Learning(*rb)
	if la && lb {
		return ra.EaseFactor < rb.EaseFactor
	}
	return la && !lb
}

func masteryFirstLess(_, _ models.Vocabulary, ra, rb *models.ReviewRecord) bool {
	return reps(ra) > reps(rb)
}

func recencyLess(a, b models.Vocabulary, _, _ *models.ReviewRecord) bool {
	return a.ID > b.ID
}

func reps(rec *models.ReviewRecord) int {
	if rec == nil {
		return 0
	}
	return rec.Reps
}
