package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hmori/jflash/internal/errors"
	"github.com/hmori/jflash/internal/logger"
	"github.com/hmori/jflash/internal/models"
	"github.com/hmori/jflash/internal/repository"
)

var exportHeader = []string{
	"kanji", "reading", "meaning", "pos", "jlpt_level",
	"example_sentence", "example_meaning", "notes", "status",
	"reps", "interval_days", "ease_factor", "next_review",
}

// exportItem is the JSON export shape: a catalog entry plus the device's
// scheduling state, zero-valued when the item was never reviewed.
type exportItem struct {
	models.Vocabulary
	Reps         int     `json:"reps"`
	IntervalDays int     `json:"interval_days"`
	EaseFactor   float64 `json:"ease_factor,omitempty"`
	NextReview   string  `json:"next_review,omitempty"`
}

// TransferService handles catalog export and import
type TransferService interface {
	ExportCSV(ctx context.Context, deviceID string, w io.Writer) error
	ExportJSON(ctx context.Context, deviceID string, w io.Writer) error
	Import(ctx context.Context, filename string, payload []byte) (*models.ImportResult, error)
}

type transferService struct {
	vocab   repository.VocabularyRepository
	reviews repository.ReviewRepository
}

// NewTransferService creates a new TransferService
func NewTransferService(vocab repository.VocabularyRepository, reviews repository.ReviewRepository) TransferService {
	return &transferService{vocab: vocab, reviews: reviews}
}

func (s *transferService) export(ctx context.Context, deviceID string) ([]exportItem, error) {
	items, err := s.vocab.List(ctx, models.VocabFilter{Limit: catalogLoadLimit})
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	states, err := s.reviews.MapForDevice(ctx, deviceID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	out := make([]exportItem, 0, len(items))
	for _, v := range items {
		item := exportItem{Vocabulary: v}
		if rec, ok := states[v.ID]; ok {
			item.Reps = rec.Reps
			item.IntervalDays = rec.IntervalDays
			item.EaseFactor = rec.EaseFactor
			item.NextReview = rec.NextReview.Format(time.RFC3339)
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *transferService) ExportCSV(ctx context.Context, deviceID string, w io.Writer) error {
	log := logger.FromContext(ctx)
	log.Debug("exporting catalog as CSV: device=%s", deviceID)

	items, err := s.export(ctx, deviceID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return errors.NewInternalError(err)
	}
	for _, item := range items {
		row := []string{
			item.Kanji, item.Reading, item.Meaning, item.POS, item.JLPTLevel,
			item.ExampleSentence, item.ExampleMeaning, item.Notes, item.Status,
			fmt.Sprintf("%d", item.Reps),
			fmt.Sprintf("%d", item.IntervalDays),
			fmt.Sprintf("%g", item.EaseFactor),
			item.NextReview,
		}
		if err := cw.Write(row); err != nil {
			return errors.NewInternalError(err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.NewInternalError(err)
	}
	log.Info("exported %d catalog entries as CSV", len(items))
	return nil
}

func (s *transferService) ExportJSON(ctx context.Context, deviceID string, w io.Writer) error {
	log := logger.FromContext(ctx)
	log.Debug("exporting catalog as JSON: device=%s", deviceID)

	items, err := s.export(ctx, deviceID)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return errors.NewInternalError(err)
	}
	log.Info("exported %d catalog entries as JSON", len(items))
	return nil
}

// Import parses an uploaded CSV, JSON or XLSX vocabulary list and inserts
// the entries that are not already present. Duplicates are detected on the
// (kanji, reading, meaning) triple: the same written form with a different
// reading or meaning is a distinct entry.
func (s *transferService) Import(ctx context.Context, filename string, payload []byte) (*models.ImportResult, error) {
	log := logger.FromContext(ctx)
	log.Info("importing vocabulary: file=%s, size=%d bytes", filename, len(payload))

	var (
		parsed []models.Vocabulary
		err    error
	)
	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".csv"):
		parsed, err = parseCSV(payload)
	case strings.HasSuffix(strings.ToLower(filename), ".json"):
		parsed, err = parseJSON(payload)
	case strings.HasSuffix(strings.ToLower(filename), ".xlsx"):
		parsed, err = parseXLSX(payload)
	default:
		return nil, errors.NewBadRequestError("unsupported file type, expected .csv, .json or .xlsx")
	}
	if err != nil {
		return nil, errors.NewBadRequestError(fmt.Sprintf("failed to parse %s: %v", filename, err))
	}

	result := &models.ImportResult{}
	var fresh []models.Vocabulary
	for i, v := range parsed {
		if v.Kanji == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("entry %d: missing kanji", i+1))
			continue
		}
		exists, err := s.vocab.Exists(ctx, v.Kanji, v.Reading, v.Meaning)
		if err != nil {
			return nil, errors.NewInternalError(err)
		}
		if exists {
			result.Skipped++
			continue
		}
		fresh = append(fresh, v)
	}

	if len(fresh) > 0 {
		if _, err := s.vocab.InsertBatch(ctx, fresh); err != nil {
			return nil, errors.NewInternalError(err)
		}
	}
	result.Imported = len(fresh)

	log.Info("import finished: imported=%d, skipped=%d, errors=%d", result.Imported, result.Skipped, len(result.Errors))
	return result, nil
}

// CSV column order matches exportHeader; scheduling columns beyond "status"
// are ignored on import since state belongs to a device, not the catalog.
func parseCSV(payload []byte) ([]models.Vocabulary, error) {
	reader := csv.NewReader(bytes.NewReader(payload))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if isHeaderRow(rows[0]) {
		rows = rows[1:]
	}

	var items []models.Vocabulary
	for _, row := range rows {
		items = append(items, vocabularyFromRow(row))
	}
	return items, nil
}

func parseJSON(payload []byte) ([]models.Vocabulary, error) {
	var items []models.Vocabulary
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, err
	}
	for i := range items {
		items[i].ID = 0
		if items[i].Status == "" {
			items[i].Status = models.StatusActive
		}
	}
	return items, nil
}

func parseXLSX(payload []byte) ([]models.Vocabulary, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if isHeaderRow(rows[0]) {
		rows = rows[1:]
	}

	var items []models.Vocabulary
	for _, row := range rows {
		items = append(items, vocabularyFromRow(row))
	}
	return items, nil
}

func isHeaderRow(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "kanji")
}

func vocabularyFromRow(row []string) models.Vocabulary {
	col := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	v := models.Vocabulary{
		Kanji:           col(0),
		Reading:         col(1),
		Meaning:         col(2),
		POS:             col(3),
		JLPTLevel:       col(4),
		ExampleSentence: col(5),
		ExampleMeaning:  col(6),
		Notes:           col(7),
		Status:          col(8),
	}
	if v.Status != models.StatusMastered {
		v.Status = models.StatusActive
	}
	return v
}
