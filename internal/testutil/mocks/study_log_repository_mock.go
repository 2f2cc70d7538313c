package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/hmori/jflash/internal/models"
)

// MockStudyLogRepository is a mock implementation of repository.StudyLogRepository
type MockStudyLogRepository struct {
	mock.Mock
}

func (m *MockStudyLogRepository) Insert(ctx context.Context, entry models.StudyLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockStudyLogRepository) ListSince(ctx context.Context, deviceID string, since time.Time) ([]models.StudyLog, error) {
	args := m.Called(ctx, deviceID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StudyLog), args.Error(1)
}

func (m *MockStudyLogRepository) StudyDates(ctx context.Context, deviceID string) ([]string, error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
