package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/hmori/jflash/internal/errors"
	"github.com/hmori/jflash/internal/logger"
	"github.com/hmori/jflash/internal/models"
	"github.com/hmori/jflash/internal/repository"
	"github.com/hmori/jflash/internal/srs"
)

// ReviewService handles review-session business logic
type ReviewService interface {
	DueCards(ctx context.Context, deviceID string, limit int) ([]models.ReviewCard, int, error)
	SubmitAnswer(ctx context.Context, deviceID string, vocabID int64, grade int) (*models.ReviewRecord, error)
	ResetProgress(ctx context.Context, deviceID string, vocabID int64) error
}

type reviewService struct {
	vocab    repository.VocabularyRepository
	reviews  repository.ReviewRepository
	studyLog repository.StudyLogRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(vocab repository.VocabularyRepository, reviews repository.ReviewRepository, studyLog repository.StudyLogRepository) ReviewService {
	return &reviewService{vocab: vocab, reviews: reviews, studyLog: studyLog}
}

func (s *reviewService) DueCards(ctx context.Context, deviceID string, limit int) ([]models.ReviewCard, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("fetching due cards: device=%s, limit=%d", deviceID, limit)

	if limit <= 0 {
		limit = 20
	}
	now := time.Now()

	cards, err := s.reviews.DueCards(ctx, deviceID, now, limit)
	if err != nil {
		log.Error("failed to load due cards: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.reviews.CountDue(ctx, deviceID, now)
	if err != nil {
		log.Error("failed to count due cards: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	return cards, total, nil
}

// SubmitAnswer runs one review event: load the previous scheduling state
// (absent means first review), apply the scheduling update and persist the
// result. The study log write is best-effort; a failure there never loses
// the review itself.
func (s *reviewService) SubmitAnswer(ctx context.Context, deviceID string, vocabID int64, grade int) (*models.ReviewRecord, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting answer: device=%s, vocab_id=%d, grade=%d", deviceID, vocabID, grade)

	v, err := s.vocab.Get(ctx, vocabID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if v == nil {
		return nil, errors.NewNotFoundError("vocabulary", vocabID)
	}

	prev, err := s.reviews.Get(ctx, deviceID, vocabID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	now := time.Now()
	updated, err := srs.Apply(prev, srs.Grade(grade), now)
	if err != nil {
		switch {
		case stderrors.Is(err, srs.ErrInvalidGrade):
			return nil, errors.NewValidationError("grade", err.Error())
		case stderrors.Is(err, srs.ErrInvalidState):
			return nil, errors.NewValidationError("review record", err.Error())
		}
		return nil, errors.NewInternalError(err)
	}
	updated.DeviceID = deviceID
	updated.VocabID = vocabID

	log.Debug("applied review: interval=%d days, ease=%.2f, reps=%d", updated.IntervalDays, updated.EaseFactor, updated.Reps)

	if err := s.reviews.Upsert(ctx, updated); err != nil {
		log.Error("failed to persist review record: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if err := s.studyLog.Insert(ctx, models.StudyLog{
		DeviceID:  deviceID,
		VocabID:   vocabID,
		Grade:     grade,
		StudiedAt: now,
	}); err != nil {
		log.Warn("failed to record study log: %v", err)
	}

	return &updated, nil
}

// ResetProgress puts the record back to the never-reviewed defaults so the
// item re-enters rotation immediately.
func (s *reviewService) ResetProgress(ctx context.Context, deviceID string, vocabID int64) error {
	log := logger.FromContext(ctx)
	log.Debug("resetting progress: device=%s, vocab_id=%d", deviceID, vocabID)

	existing, err := s.reviews.Get(ctx, deviceID, vocabID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if existing == nil {
		return errors.NewNotFoundError("review record", vocabID)
	}

	now := time.Now()
	reset := models.ReviewRecord{
		DeviceID:     deviceID,
		VocabID:      vocabID,
		IntervalDays: 0,
		EaseFactor:   srs.DefaultEase,
		NextReview:   now,
		Reps:         0,
		UpdatedAt:    now,
	}
	if err := s.reviews.Upsert(ctx, reset); err != nil {
		log.Error("failed to reset review record: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}
