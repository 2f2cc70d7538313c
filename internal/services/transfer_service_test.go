package services_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hmori/jflash/internal/errors"
	"github.com/hmori/jflash/internal/models"
	"github.com/hmori/jflash/internal/services"
	"github.com/hmori/jflash/internal/testutil/mocks"
)

func newTransferServiceWithMocks() (services.TransferService, *mocks.MockVocabularyRepository, *mocks.MockReviewRepository) {
	vocab := new(mocks.MockVocabularyRepository)
	reviews := new(mocks.MockReviewRepository)
	svc := services.NewTransferService(vocab, reviews)
	return svc, vocab, reviews
}

func TestExportCSV(t *testing.T) {
	svc, vocab, reviews := newTransferServiceWithMocks()
	ctx := context.Background()

	items := []models.Vocabulary{
		{ID: 1, Kanji: "水", Reading: "みず", Meaning: "water", Status: models.StatusActive},
		{ID: 2, Kanji: "火", Reading: "ひ", Meaning: "fire", Status: models.StatusActive},
	}
	next := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	states := map[int64]models.ReviewRecord{
		1: {VocabID: 1, Reps: 2, IntervalDays: 6, EaseFactor: 2.5, NextReview: next},
	}
	vocab.On("List", ctx, mock.AnythingOfType("models.VocabFilter")).Return(items, nil)
	reviews.On("MapForDevice", ctx, "d1").Return(states, nil)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(ctx, "d1", &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3, "header plus one row per word")
	assert.True(t, strings.HasPrefix(lines[0], "kanji,reading,meaning"))
	assert.Contains(t, lines[1], "水")
	assert.Contains(t, lines[1], "2.5")
	assert.Contains(t, lines[1], next.Format(time.RFC3339))
	assert.Contains(t, lines[2], "火,ひ,fire")
}

func TestExportJSON(t *testing.T) {
	svc, vocab, reviews := newTransferServiceWithMocks()
	ctx := context.Background()

	items := []models.Vocabulary{{ID: 1, Kanji: "水", Status: models.StatusActive}}
	vocab.On("List", ctx, mock.AnythingOfType("models.VocabFilter")).Return(items, nil)
	reviews.On("MapForDevice", ctx, "d1").Return(map[int64]models.ReviewRecord{}, nil)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportJSON(ctx, "d1", &buf))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "水", decoded[0]["kanji"])
	assert.EqualValues(t, 0, decoded[0]["reps"], "unreviewed items export zero scheduling state")
}

func TestImport_CSV(t *testing.T) {
	svc, vocab, _ := newTransferServiceWithMocks()
	ctx := context.Background()

	payload := []byte("kanji,reading,meaning,pos,jlpt_level\n" +
		"水,みず,water,noun,N5\n" +
		"火,ひ,fire,noun,N5\n")

	vocab.On("Exists", ctx, "水", "みず", "water").Return(false, nil)
	vocab.On("Exists", ctx, "火", "ひ", "fire").Return(true, nil)
	vocab.On("InsertBatch", ctx, mock.MatchedBy(func(vs []models.Vocabulary) bool {
		return len(vs) == 1 && vs[0].Kanji == "水" && vs[0].Status == models.StatusActive
	})).Return([]int64{1}, nil)

	result, err := svc.Import(ctx, "words.csv", payload)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Errors)
	vocab.AssertExpectations(t)
}

func TestImport_CSVWithoutHeader(t *testing.T) {
	svc, vocab, _ := newTransferServiceWithMocks()
	ctx := context.Background()

	payload := []byte("木,き,tree,noun,N5\n")
	vocab.On("Exists", ctx, "木", "き", "tree").Return(false, nil)
	vocab.On("InsertBatch", ctx, mock.AnythingOfType("[]models.Vocabulary")).Return([]int64{1}, nil)

	result, err := svc.Import(ctx, "words.csv", payload)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
}

func TestImport_CSVMissingKanji(t *testing.T) {
	svc, vocab, _ := newTransferServiceWithMocks()
	ctx := context.Background()

	payload := []byte("kanji,reading,meaning\n,よみ,reading only\n")

	result, err := svc.Import(ctx, "words.csv", payload)
	require.NoError(t, err)

	assert.Zero(t, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "missing kanji")
	vocab.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
}

func TestImport_JSON(t *testing.T) {
	svc, vocab, _ := newTransferServiceWithMocks()
	ctx := context.Background()

	payload := []byte(`[{"kanji":"山","reading":"やま","meaning":"mountain","jlpt_level":"N5"}]`)
	vocab.On("Exists", ctx, "山", "やま", "mountain").Return(false, nil)
	vocab.On("InsertBatch", ctx, mock.MatchedBy(func(vs []models.Vocabulary) bool {
		return len(vs) == 1 && vs[0].Status == models.StatusActive
	})).Return([]int64{1}, nil)

	result, err := svc.Import(ctx, "words.json", payload)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
}

func TestImport_XLSX(t *testing.T) {
	svc, vocab, _ := newTransferServiceWithMocks()
	ctx := context.Background()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"kanji", "reading", "meaning"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"川", "かわ", "river"}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	vocab.On("Exists", ctx, "川", "かわ", "river").Return(false, nil)
	vocab.On("InsertBatch", ctx, mock.AnythingOfType("[]models.Vocabulary")).Return([]int64{1}, nil)

	result, err := svc.Import(ctx, "words.xlsx", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
}

func TestImport_UnsupportedExtension(t *testing.T) {
	svc, _, _ := newTransferServiceWithMocks()

	_, err := svc.Import(context.Background(), "words.txt", []byte("data"))
	require.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeBadRequest, appErr.Code)
}

func TestImport_MalformedJSON(t *testing.T) {
	svc, _, _ := newTransferServiceWithMocks()

	_, err := svc.Import(context.Background(), "words.json", []byte("{broken"))
	require.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeBadRequest, appErr.Code)
}
