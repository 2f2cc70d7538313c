package services

import (
	"context"

	"github.com/hmori/jflash/internal/errors"
	"github.com/hmori/jflash/internal/logger"
	"github.com/hmori/jflash/internal/models"
	"github.com/hmori/jflash/internal/ranking"
	"github.com/hmori/jflash/internal/repository"
)

// catalogLoadLimit bounds in-memory loads of the full filtered catalog for
// ranking. The catalog is personal-scale; this is a safety valve, not a page
// size.
const catalogLoadLimit = 10000

// VocabService handles catalog business logic
type VocabService interface {
	GetVocabulary(ctx context.Context, id int64) (*models.Vocabulary, error)
	ListVocabulary(ctx context.Context, deviceID string, filter models.VocabFilter, sortBy string) ([]models.Vocabulary, int, error)
	CreateVocabulary(ctx context.Context, v models.Vocabulary) (*models.Vocabulary, error)
	UpdateVocabulary(ctx context.Context, v models.Vocabulary) error
	SetStatus(ctx context.Context, id int64, status string) error
	DeleteVocabulary(ctx context.Context, id int64) error
}

type vocabService struct {
	vocab   repository.VocabularyRepository
	reviews repository.ReviewRepository
}

// NewVocabService creates a new VocabService
func NewVocabService(vocab repository.VocabularyRepository, reviews repository.ReviewRepository) VocabService {
	return &vocabService{vocab: vocab, reviews: reviews}
}

func (s *vocabService) GetVocabulary(ctx context.Context, id int64) (*models.Vocabulary, error) {
	v, err := s.vocab.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if v == nil {
		return nil, errors.NewNotFoundError("vocabulary", id)
	}
	return v, nil
}

// ListVocabulary returns one page of the filtered catalog. When sortBy names
// a ranking criterion the full filtered set is loaded, ranked against the
// device's scheduling states and paginated in memory; otherwise pagination
// happens in SQL with a stable id order.
func (s *vocabService) ListVocabulary(ctx context.Context, deviceID string, filter models.VocabFilter, sortBy string) ([]models.Vocabulary, int, error) {
	log := logger.FromContext(ctx)

	total, err := s.vocab.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count vocabulary: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	if sortBy == "" {
		items, err := s.vocab.List(ctx, filter)
		if err != nil {
			log.Error("failed to list vocabulary: %v", err)
			return nil, 0, errors.NewInternalError(err)
		}
		return items, total, nil
	}

	criterion, err := ranking.ParseCriterion(sortBy)
	if err != nil {
		return nil, 0, errors.NewValidationError("sort", err.Error())
	}

	full := filter
	full.Limit = catalogLoadLimit
	full.Offset = 0
	items, err := s.vocab.List(ctx, full)
	if err != nil {
		log.Error("failed to list vocabulary: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	states, err := s.reviews.MapForDevice(ctx, deviceID)
	if err != nil {
		log.Error("failed to load review records: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	ranked, err := ranking.Rank(items, states, criterion)
	if err != nil {
		return nil, 0, errors.NewValidationError("sort", err.Error())
	}

	return page(ranked, filter.Offset, filter.Limit), total, nil
}

func (s *vocabService) CreateVocabulary(ctx context.Context, v models.Vocabulary) (*models.Vocabulary, error) {
	if v.Kanji == "" {
		return nil, errors.NewValidationError("kanji", "cannot be empty")
	}
	if v.Status != "" && v.Status != models.StatusActive && v.Status != models.StatusMastered {
		return nil, errors.NewValidationError("status", "must be active or mastered")
	}

	id, err := s.vocab.Insert(ctx, v)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return s.GetVocabulary(ctx, id)
}

func (s *vocabService) UpdateVocabulary(ctx context.Context, v models.Vocabulary) error {
	if v.Kanji == "" {
		return errors.NewValidationError("kanji", "cannot be empty")
	}
	if v.Status != models.StatusActive && v.Status != models.StatusMastered {
		return errors.NewValidationError("status", "must be active or mastered")
	}

	existing, err := s.vocab.Get(ctx, v.ID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if existing == nil {
		return errors.NewNotFoundError("vocabulary", v.ID)
	}

	if err := s.vocab.Update(ctx, v); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *vocabService) SetStatus(ctx context.Context, id int64, status string) error {
	if status != models.StatusActive && status != models.StatusMastered {
		return errors.NewValidationError("status", "must be active or mastered")
	}

	existing, err := s.vocab.Get(ctx, id)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if existing == nil {
		return errors.NewNotFoundError("vocabulary", id)
	}

	if err := s.vocab.SetStatus(ctx, id, status); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *vocabService) DeleteVocabulary(ctx context.Context, id int64) error {
	existing, err := s.vocab.Get(ctx, id)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if existing == nil {
		return errors.NewNotFoundError("vocabulary", id)
	}

	if err := s.vocab.Delete(ctx, id); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func page(items []models.Vocabulary, offset, limit int) []models.Vocabulary {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
