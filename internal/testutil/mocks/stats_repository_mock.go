package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/hmori/jflash/internal/models"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) InsertSnapshot(ctx context.Context, deviceID string, stats models.OverviewStats, takenAt time.Time) error {
	args := m.Called(ctx, deviceID, stats, takenAt)
	return args.Error(0)
}

func (m *MockStatsRepository) Devices(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
