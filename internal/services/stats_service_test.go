package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hmori/jflash/internal/models"
	"github.com/hmori/jflash/internal/services"
	"github.com/hmori/jflash/internal/testutil/mocks"
)

func newStatsServiceWithMocks() (services.StatsService, *mocks.MockVocabularyRepository, *mocks.MockReviewRepository, *mocks.MockStudyLogRepository, *mocks.MockStatsRepository) {
	vocab := new(mocks.MockVocabularyRepository)
	reviews := new(mocks.MockReviewRepository)
	studyLog := new(mocks.MockStudyLogRepository)
	stats := new(mocks.MockStatsRepository)
	svc := services.NewStatsService(vocab, reviews, studyLog, stats)
	return svc, vocab, reviews, studyLog, stats
}

func TestOverview(t *testing.T) {
	svc, vocab, reviews, _, _ := newStatsServiceWithMocks()
	ctx := context.Background()

	items := []models.Vocabulary{{ID: 1}, {ID: 2}, {ID: 3}}
	states := map[int64]models.ReviewRecord{
		1: {Reps: 2, NextReview: time.Now().AddDate(0, 0, 3)},
		2: {Reps: 6, NextReview: time.Now().AddDate(0, 0, -1)},
	}
	vocab.On("List", ctx, mock.AnythingOfType("models.VocabFilter")).Return(items, nil)
	reviews.On("MapForDevice", ctx, "d1").Return(states, nil)

	overview, err := svc.Overview(ctx, "d1")
	require.NoError(t, err)

	assert.Equal(t, 3, overview.TotalWords)
	assert.Equal(t, 1, overview.NewWords)
	assert.Equal(t, 2, overview.LearnedWords)
	assert.Equal(t, 1, overview.MasteredWords)
	assert.Equal(t, 1, overview.DueToday)
}

func TestDaily(t *testing.T) {
	svc, _, _, studyLog, _ := newStatsServiceWithMocks()
	ctx := context.Background()

	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	entries := []models.StudyLog{
		{DeviceID: "d1", VocabID: 1, Grade: 4, StudiedAt: yesterday},
		{DeviceID: "d1", VocabID: 2, Grade: 1, StudiedAt: yesterday},
		{DeviceID: "d1", VocabID: 3, Grade: 5, StudiedAt: now},
	}
	studyLog.On("ListSince", ctx, "d1", mock.AnythingOfType("time.Time")).Return(entries, nil)

	daily, err := svc.Daily(ctx, "d1", 7)
	require.NoError(t, err)
	require.Len(t, daily, 7, "window is zero-filled for days without reviews")

	today := daily[6]
	assert.Equal(t, now.Format("2006-01-02"), today.Date, "days run oldest to newest")
	assert.Equal(t, 1, today.TotalReviews)
	assert.Equal(t, 1, today.Correct)
	assert.InDelta(t, 100.0, today.Accuracy, 1e-9)

	prior := daily[5]
	assert.Equal(t, 2, prior.TotalReviews)
	assert.Equal(t, 1, prior.Correct)
	assert.Equal(t, 1, prior.Incorrect, "grades below 3 count as incorrect")
	assert.InDelta(t, 50.0, prior.Accuracy, 1e-9)

	assert.Zero(t, daily[0].TotalReviews)
	assert.Zero(t, daily[0].Accuracy)
}

func TestDaily_ClampsWindow(t *testing.T) {
	svc, _, _, studyLog, _ := newStatsServiceWithMocks()
	ctx := context.Background()

	studyLog.On("ListSince", ctx, "d1", mock.AnythingOfType("time.Time")).Return([]models.StudyLog{}, nil)

	daily, err := svc.Daily(ctx, "d1", 500)
	require.NoError(t, err)
	assert.Len(t, daily, services.MaxDailyStatsDays)

	daily, err = svc.Daily(ctx, "d1", 0)
	require.NoError(t, err)
	assert.Len(t, daily, services.DefaultDailyStatsDays)
}

func TestStreak(t *testing.T) {
	svc, _, _, studyLog, _ := newStatsServiceWithMocks()
	ctx := context.Background()

	today := time.Now()
	day := func(offset int) string {
		return today.AddDate(0, 0, offset).Format("2006-01-02")
	}
	// Three-day current run, a gap, then an older two-day run.
	dates := []string{day(0), day(-1), day(-2), day(-5), day(-6)}
	studyLog.On("StudyDates", ctx, "d1").Return(dates, nil)

	streak, err := svc.Streak(ctx, "d1")
	require.NoError(t, err)

	assert.Equal(t, 3, streak.CurrentStreak)
	assert.Equal(t, 3, streak.LongestStreak)
	assert.Equal(t, day(0), streak.LastStudyDate)
}

func TestStreak_BrokenToday(t *testing.T) {
	svc, _, _, studyLog, _ := newStatsServiceWithMocks()
	ctx := context.Background()

	today := time.Now()
	day := func(offset int) string {
		return today.AddDate(0, 0, offset).Format("2006-01-02")
	}
	// Last study was the day before yesterday: streak is over.
	dates := []string{day(-2), day(-3), day(-4), day(-5)}
	studyLog.On("StudyDates", ctx, "d1").Return(dates, nil)

	streak, err := svc.Streak(ctx, "d1")
	require.NoError(t, err)

	assert.Equal(t, 0, streak.CurrentStreak)
	assert.Equal(t, 4, streak.LongestStreak)
}

func TestStreak_YesterdayStillCounts(t *testing.T) {
	svc, _, _, studyLog, _ := newStatsServiceWithMocks()
	ctx := context.Background()

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	studyLog.On("StudyDates", ctx, "d1").Return([]string{yesterday}, nil)

	streak, err := svc.Streak(ctx, "d1")
	require.NoError(t, err)

	assert.Equal(t, 1, streak.CurrentStreak, "studying yesterday keeps the streak alive")
}

func TestStreak_NoHistory(t *testing.T) {
	svc, _, _, studyLog, _ := newStatsServiceWithMocks()
	ctx := context.Background()

	studyLog.On("StudyDates", ctx, "d1").Return([]string{}, nil)

	streak, err := svc.Streak(ctx, "d1")
	require.NoError(t, err)

	assert.Zero(t, streak.CurrentStreak)
	assert.Zero(t, streak.LongestStreak)
	assert.Empty(t, streak.LastStudyDate)
}

func TestSnapshot(t *testing.T) {
	svc, vocab, reviews, _, stats := newStatsServiceWithMocks()
	ctx := context.Background()

	stats.On("Devices", ctx).Return([]string{"phone", "tablet"}, nil)
	vocab.On("List", ctx, mock.AnythingOfType("models.VocabFilter")).Return([]models.Vocabulary{{ID: 1}}, nil)
	reviews.On("MapForDevice", ctx, "phone").Return(map[int64]models.ReviewRecord{}, nil)
	reviews.On("MapForDevice", ctx, "tablet").Return(map[int64]models.ReviewRecord{}, nil)
	stats.On("InsertSnapshot", ctx, "phone", mock.AnythingOfType("models.OverviewStats"), mock.AnythingOfType("time.Time")).Return(nil)
	stats.On("InsertSnapshot", ctx, "tablet", mock.AnythingOfType("models.OverviewStats"), mock.AnythingOfType("time.Time")).Return(nil)

	err := svc.Snapshot(ctx)
	require.NoError(t, err)
	stats.AssertExpectations(t)
}
