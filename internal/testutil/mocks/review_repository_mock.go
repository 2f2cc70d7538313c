package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/hmori/jflash/internal/models"
)

// MockReviewRepository is a mock implementation of repository.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Get(ctx context.Context, deviceID string, vocabID int64) (*models.ReviewRecord, error) {
	args := m.Called(ctx, deviceID, vocabID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewRecord), args.Error(1)
}

func (m *MockReviewRepository) MapForDevice(ctx context.Context, deviceID string) (map[int64]models.ReviewRecord, error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]models.ReviewRecord), args.Error(1)
}

func (m *MockReviewRepository) Upsert(ctx context.Context, rec models.ReviewRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, deviceID string, vocabID int64) error {
	args := m.Called(ctx, deviceID, vocabID)
	return args.Error(0)
}

func (m *MockReviewRepository) DueCards(ctx context.Context, deviceID string, cutoff time.Time, limit int) ([]models.ReviewCard, error) {
	args := m.Called(ctx, deviceID, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewCard), args.Error(1)
}

func (m *MockReviewRepository) CountDue(ctx context.Context, deviceID string, cutoff time.Time) (int, error) {
	args := m.Called(ctx, deviceID, cutoff)
	return args.Int(0), args.Error(1)
}
