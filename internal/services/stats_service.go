package services

import (
	"context"
	"time"

	"github.com/hmori/jflash/internal/errors"
	"github.com/hmori/jflash/internal/logger"
	"github.com/hmori/jflash/internal/models"
	"github.com/hmori/jflash/internal/repository"
	"github.com/hmori/jflash/internal/srs"
)

const (
	// DefaultDailyStatsDays is the default window for the daily breakdown.
	DefaultDailyStatsDays = 7
	// MaxDailyStatsDays bounds the daily breakdown window.
	MaxDailyStatsDays = 90
)

// StatsService handles learning statistics
type StatsService interface {
	Overview(ctx context.Context, deviceID string) (models.OverviewStats, error)
	Daily(ctx context.Context, deviceID string, days int) ([]models.DailyStat, error)
	Streak(ctx context.Context, deviceID string) (models.StreakInfo, error)
	Dashboard(ctx context.Context, deviceID string) (*models.Dashboard, error)
	Snapshot(ctx context.Context) error
}

type statsService struct {
	vocab    repository.VocabularyRepository
	reviews  repository.ReviewRepository
	studyLog repository.StudyLogRepository
	stats    repository.StatsRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(vocab repository.VocabularyRepository, reviews repository.ReviewRepository,
	studyLog repository.StudyLogRepository, stats repository.StatsRepository) StatsService {
	return &statsService{vocab: vocab, reviews: reviews, studyLog: studyLog, stats: stats}
}

func (s *statsService) Overview(ctx context.Context, deviceID string) (models.OverviewStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing overview stats: device=%s", deviceID)

	items, err := s.vocab.List(ctx, models.VocabFilter{Limit: catalogLoadLimit})
	if err != nil {
		log.Error("failed to load catalog: %v", err)
		return models.OverviewStats{}, errors.NewInternalError(err)
	}
	states, err := s.reviews.MapForDevice(ctx, deviceID)
	if err != nil {
		log.Error("failed to load review records: %v", err)
		return models.OverviewStats{}, errors.NewInternalError(err)
	}
	return srs.Summarize(items, states, time.Now()), nil
}

func (s *statsService) Daily(ctx context.Context, deviceID string, days int) ([]models.DailyStat, error) {
	log := logger.FromContext(ctx)
	if days <= 0 {
		days = DefaultDailyStatsDays
	}
	if days > MaxDailyStatsDays {
		days = MaxDailyStatsDays
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	since := today.AddDate(0, 0, -(days - 1))

	entries, err := s.studyLog.ListSince(ctx, deviceID, since)
	if err != nil {
		log.Error("failed to load study log: %v", err)
		return nil, errors.NewInternalError(err)
	}

	type bucket struct{ total, correct int }
	byDate := make(map[string]bucket)
	for _, e := range entries {
		key := e.StudiedAt.In(now.Location()).Format("2006-01-02")
		b := byDate[key]
		b.total++
		if srs.Grade(e.Grade).Passing() {
			b.correct++
		}
		byDate[key] = b
	}

	result := make([]models.DailyStat, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i)
		key := date.Format("2006-01-02")
		b := byDate[key]
		stat := models.DailyStat{
			Date:         key,
			TotalReviews: b.total,
			Correct:      b.correct,
			Incorrect:    b.total - b.correct,
		}
		if b.total > 0 {
			stat.Accuracy = float64(b.correct) / float64(b.total) * 100
		}
		result = append(result, stat)
	}
	return result, nil
}

func (s *statsService) Streak(ctx context.Context, deviceID string) (models.StreakInfo, error) {
	log := logger.FromContext(ctx)

	dates, err := s.studyLog.StudyDates(ctx, deviceID)
	if err != nil {
		log.Error("failed to load study dates: %v", err)
		return models.StreakInfo{}, errors.NewInternalError(err)
	}
	if len(dates) == 0 {
		return models.StreakInfo{}, nil
	}

	parsed := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		t, err := time.ParseInLocation("2006-01-02", d, time.Local)
		if err != nil {
			log.Warn("skipping unparseable study date %q: %v", d, err)
			continue
		}
		parsed = append(parsed, t)
	}
	if len(parsed) == 0 {
		return models.StreakInfo{}, nil
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	// Current streak: consecutive days ending today or yesterday.
	current := 0
	check := today
	for _, d := range parsed {
		if d.Equal(check) || d.Equal(check.AddDate(0, 0, -1)) {
			current++
			check = d.AddDate(0, 0, -1)
		} else {
			break
		}
	}

	// Longest streak over all history. Dates arrive newest first.
	longest := 1
	run := 1
	for i := 1; i < len(parsed); i++ {
		if parsed[i-1].AddDate(0, 0, -1).Equal(parsed[i]) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}
	if current > longest {
		longest = current
	}

	return models.StreakInfo{
		CurrentStreak: current,
		LongestStreak: longest,
		LastStudyDate: parsed[0].Format("2006-01-02"),
	}, nil
}

func (s *statsService) Dashboard(ctx context.Context, deviceID string) (*models.Dashboard, error) {
	overview, err := s.Overview(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	daily, err := s.Daily(ctx, deviceID, DefaultDailyStatsDays)
	if err != nil {
		return nil, err
	}
	streak, err := s.Streak(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return &models.Dashboard{Overview: overview, Daily: daily, Streak: streak}, nil
}

// Snapshot persists an overview row per known device. Run daily by the
// scheduler so progress trends survive study-log pruning.
func (s *statsService) Snapshot(ctx context.Context) error {
	log := logger.FromContext(ctx)

	devices, err := s.stats.Devices(ctx)
	if err != nil {
		log.Error("failed to list devices: %v", err)
		return err
	}

	now := time.Now()
	for _, device := range devices {
		overview, err := s.Overview(ctx, device)
		if err != nil {
			log.Error("failed to compute overview for device %s: %v", device, err)
			return err
		}
		if err := s.stats.InsertSnapshot(ctx, device, overview, now); err != nil {
			log.Error("failed to store snapshot for device %s: %v", device, err)
			return err
		}
	}
	log.Info("stored stats snapshots for %d devices", len(devices))
	return nil
}
