package ranking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmori/jflash/internal/models"
	"github.com/hmori/jflash/internal/ranking"
)

func ids(items []models.Vocabulary) []int64 {
	out := make([]int64, len(items))
	for i, v := range items {
		out[i] = v.ID
	}
	return out
}

func TestParseCriterion(t *testing.T) {
	for _, s := range []string{"priority", "new-first", "learning-first", "mastery-first", "recency"} {
		c, err := ranking.ParseCriterion(s)
		require.NoError(t, err)
		assert.Equal(t, ranking.Criterion(s), c)
	}

	_, err := ranking.ParseCriterion("alphabetical")
	assert.ErrorIs(t, err, ranking.ErrUnknownCriterion)
}

func TestRank_UnknownCriterion(t *testing.T) {
	_, err := ranking.Rank([]models.Vocabulary{{ID: 1}}, nil, "shuffle")
	assert.ErrorIs(t, err, ranking.ErrUnknownCriterion)
}

func TestRank_Priority(t *testing.T) {
	items := []models.Vocabulary{{ID: 1}, {ID: 2}, {ID: 3}}
	states := map[int64]models.ReviewRecord{
		// Seen but never passed: score 1
		1: {Reps: 0, EaseFactor: 2.3},
		// Well established: score 2 + 6 - 0 = 8
		3: {Reps: 6, EaseFactor: 2.5},
	}
	// Item 2 is unseen: score 0

	ranked, err := ranking.Rank(items, states, ranking.CriterionPriority)
	require.NoError(t, err)

	assert.Equal(t, []int64{2, 1, 3}, ids(ranked))
}

func TestRank_PriorityLowEaseBeforeHighEase(t *testing.T) {
	items := []models.Vocabulary{{ID: 1}, {ID: 2}}
	states := map[int64]models.ReviewRecord{
		// Struggling item: 2 + 3 - (2.5-1.3)*10 = -7
		1: {Reps: 3, EaseFactor: 1.3},
		// Comfortable item: 2 + 3 - 0 = 5
		2: {Reps: 3, EaseFactor: 2.5},
	}

	ranked, err := ranking.Rank(items, states, ranking.CriterionPriority)
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2}, ids(ranked), "low ease means struggling, so it should surface first")
}

func TestRank_PriorityCapsReps(t *testing.T) {
	a := &models.ReviewRecord{Reps: 10, EaseFactor: 2.5}
	b := &models.ReviewRecord{Reps: 50, EaseFactor: 2.5}

	assert.Equal(t, ranking.PriorityScore(a), ranking.PriorityScore(b), "repetitions above 10 should not raise the score")
}

func TestRank_NewFirst(t *testing.T) {
	items := []models.Vocabulary{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}
	states := map[int64]models.ReviewRecord{
		1: {Reps: 2, EaseFactor: 2.5},
		3: {Reps: 1, EaseFactor: 2.5},
	}

	ranked, err := ranking.Rank(items, states, ranking.CriterionNewFirst)
	require.NoError(t, err)

	assert.Equal(t, []int64{2, 4, 1, 3}, ids(ranked), "unseen items lead and both groups keep input order")
}

func TestRank_LearningFirst(t *testing.T) {
	items := []models.Vocabulary{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}
	states := map[int64]models.ReviewRecord{
		// Mastered, outside the learning band
		1: {Reps: 5, EaseFactor: 2.5},
		// Learning, struggling
		2: {Reps: 2, EaseFactor: 1.7},
		// Learning, comfortable
		3: {Reps: 2, EaseFactor: 2.5},
	}
	// Item 4 unseen, outside the learning band

	ranked, err := ranking.Rank(items, states, ranking.CriterionLearningFirst)
	require.NoError(t, err)

	assert.Equal(t, []int64{2, 3, 1, 4}, ids(ranked), "learning items lead, lowest ease first, rest keep input order")
}

func TestRank_MasteryFirst(t *testing.T) {
	items := []models.Vocabulary{{ID: 1}, {ID: 2}, {ID: 3}}
	states := map[int64]models.ReviewRecord{
		1: {Reps: 2, EaseFactor: 2.5},
		3: {Reps: 9, EaseFactor: 2.5},
	}

	ranked, err := ranking.Rank(items, states, ranking.CriterionMasteryFirst)
	require.NoError(t, err)

	assert.Equal(t, []int64{3, 1, 2}, ids(ranked))
}

func TestRank_Recency(t *testing.T) {
	items := []models.Vocabulary{{ID: 5}, {ID: 12}, {ID: 3}}

	ranked, err := ranking.Rank(items, nil, ranking.CriterionRecency)
	require.NoError(t, err)

	assert.Equal(t, []int64{12, 5, 3}, ids(ranked))
}

func TestRank_EmptyInput(t *testing.T) {
	ranked, err := ranking.Rank(nil, nil, ranking.CriterionPriority)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	items := []models.Vocabulary{{ID: 1}, {ID: 2}, {ID: 3}}

	_, err := ranking.Rank(items, nil, ranking.CriterionRecency)
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2, 3}, ids(items))
}

func TestPriorityScore(t *testing.T) {
	tests := []struct {
		name     string
		rec      *models.ReviewRecord
		expected float64
	}{
		{name: "unseen", rec: nil, expected: 0},
		{name: "seen never passed", rec: &models.ReviewRecord{Reps: 0, EaseFactor: 2.1}, expected: 1},
		{name: "one rep default ease", rec: &models.ReviewRecord{Reps: 1, EaseFactor: 2.5}, expected: 3},
		{name: "low ease", rec: &models.ReviewRecord{Reps: 4, EaseFactor: 1.5}, expected: -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ranking.PriorityScore(tt.rec), 1e-9)
		})
	}
}
