package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hmori/jflash/internal/models"
)

// MockVocabularyRepository is a mock implementation of repository.VocabularyRepository
type MockVocabularyRepository struct {
	mock.Mock
}

func (m *MockVocabularyRepository) Get(ctx context.Context, id int64) (*models.Vocabulary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vocabulary), args.Error(1)
}

func (m *MockVocabularyRepository) List(ctx context.Context, filter models.VocabFilter) ([]models.Vocabulary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vocabulary), args.Error(1)
}

func (m *MockVocabularyRepository) Count(ctx context.Context, filter models.VocabFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockVocabularyRepository) Insert(ctx context.Context, v models.Vocabulary) (int64, error) {
	args := m.Called(ctx, v)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVocabularyRepository) InsertBatch(ctx context.Context, vs []models.Vocabulary) ([]int64, error) {
	args := m.Called(ctx, vs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockVocabularyRepository) Update(ctx context.Context, v models.Vocabulary) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVocabularyRepository) SetStatus(ctx context.Context, id int64, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockVocabularyRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVocabularyRepository) Exists(ctx context.Context, kanji, reading, meaning string) (bool, error) {
	args := m.Called(ctx, kanji, reading, meaning)
	return args.Bool(0), args.Error(1)
}
