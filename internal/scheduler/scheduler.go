// Package scheduler runs recurring maintenance tasks, currently the daily
// stats snapshot.
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/hmori/jflash/internal/logger"
	"github.com/hmori/jflash/internal/worker"
)

// Scheduler wires recurring jobs onto the worker pool so they share its
// logging and failure handling with one-off jobs.
type Scheduler struct {
	scheduler *gocron.Scheduler
	pool      *worker.Pool
	log       *logger.Logger
}

// New creates a scheduler submitting to the given pool.
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		pool:      pool,
		log:       logger.Default().WithPrefix("scheduler"),
	}
}

// Start registers the daily snapshot job at the given local hour and begins
// running asynchronously.
func (s *Scheduler) Start(snapshotHour int, job worker.Job) error {
	at := fmt.Sprintf("%02d:00", snapshotHour)
	if _, err := s.scheduler.Every(1).Day().At(at).Do(func() {
		s.pool.Submit(job)
	}); err != nil {
		return err
	}
	s.log.Info("daily snapshot scheduled at %s", at)
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.log.Info("scheduler stopped")
}
