package worker

import (
	"context"

	"github.com/hmori/jflash/internal/logger"
	"github.com/hmori/jflash/internal/services"
)

// ImportVocabularyJob parses an uploaded vocabulary file and inserts new
// catalog entries. The payload is already read into memory by the handler;
// the job owns parsing and persistence.
type ImportVocabularyJob struct {
	Transfer services.TransferService
	Filename string
	Payload  []byte
}

func (j *ImportVocabularyJob) Name() string { return "import-vocabulary" }

func (j *ImportVocabularyJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	result, err := j.Transfer.Import(ctx, j.Filename, j.Payload)
	if err != nil {
		return err
	}
	log.Info("vocabulary import: file=%s, imported=%d, skipped=%d, errors=%d",
		j.Filename, result.Imported, result.Skipped, len(result.Errors))
	for _, msg := range result.Errors {
		log.Warn("import issue: %s", msg)
	}
	return nil
}

// SnapshotStatsJob stores a stats snapshot per device, scheduled daily.
type SnapshotStatsJob struct {
	Stats services.StatsService
}

func (j *SnapshotStatsJob) Name() string { return "snapshot-stats" }

func (j *SnapshotStatsJob) Run(ctx context.Context) error {
	return j.Stats.Snapshot(ctx)
}
