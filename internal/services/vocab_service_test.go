package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hmori/jflash/internal/errors"
	"github.com/hmori/jflash/internal/models"
	"github.com/hmori/jflash/internal/services"
	"github.com/hmori/jflash/internal/testutil/mocks"
)

func newVocabServiceWithMocks() (services.VocabService, *mocks.MockVocabularyRepository, *mocks.MockReviewRepository) {
	vocab := new(mocks.MockVocabularyRepository)
	reviews := new(mocks.MockReviewRepository)
	svc := services.NewVocabService(vocab, reviews)
	return svc, vocab, reviews
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok, "expected an AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

func TestListVocabulary_NoSort(t *testing.T) {
	svc, vocab, _ := newVocabServiceWithMocks()
	ctx := context.Background()

	filter := models.VocabFilter{Status: models.StatusActive, Limit: 10}
	items := []models.Vocabulary{{ID: 1, Kanji: "一"}, {ID: 2, Kanji: "二"}}
	vocab.On("Count", ctx, filter).Return(12, nil)
	vocab.On("List", ctx, filter).Return(items, nil)

	got, total, err := svc.ListVocabulary(ctx, "d1", filter, "")
	require.NoError(t, err)
	assert.Equal(t, items, got)
	assert.Equal(t, 12, total)
}

func TestListVocabulary_Ranked(t *testing.T) {
	svc, vocab, reviews := newVocabServiceWithMocks()
	ctx := context.Background()

	filter := models.VocabFilter{Limit: 2}
	items := []models.Vocabulary{{ID: 1}, {ID: 2}, {ID: 3}}
	states := map[int64]models.ReviewRecord{
		1: {Reps: 6, EaseFactor: 2.5},
		3: {Reps: 0, EaseFactor: 2.5},
	}

	vocab.On("Count", ctx, filter).Return(3, nil)
	vocab.On("List", ctx, mock.MatchedBy(func(f models.VocabFilter) bool {
		return f.Offset == 0 && f.Limit > 100
	})).Return(items, nil)
	reviews.On("MapForDevice", ctx, "d1").Return(states, nil)

	got, total, err := svc.ListVocabulary(ctx, "d1", filter, "priority")
	require.NoError(t, err)
	require.Len(t, got, 2, "ranked listing still honors the page size")
	assert.Equal(t, 3, total)
	assert.Equal(t, int64(2), got[0].ID, "unseen item is most urgent")
	assert.Equal(t, int64(3), got[1].ID, "seen-but-unpassed item comes next")
}

func TestListVocabulary_UnknownSort(t *testing.T) {
	svc, vocab, _ := newVocabServiceWithMocks()
	ctx := context.Background()

	vocab.On("Count", ctx, mock.AnythingOfType("models.VocabFilter")).Return(0, nil)

	_, _, err := svc.ListVocabulary(ctx, "d1", models.VocabFilter{}, "alphabetical")
	assertAppErrorCode(t, err, errors.ErrCodeValidation)
}

func TestCreateVocabulary(t *testing.T) {
	svc, vocab, _ := newVocabServiceWithMocks()
	ctx := context.Background()

	created := models.Vocabulary{Kanji: "新しい", Reading: "あたらしい", Meaning: "new"}
	vocab.On("Insert", ctx, created).Return(int64(7), nil)
	vocab.On("Get", ctx, int64(7)).Return(&models.Vocabulary{ID: 7, Kanji: "新しい"}, nil)

	got, err := svc.CreateVocabulary(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
}

func TestCreateVocabulary_EmptyKanji(t *testing.T) {
	svc, vocab, _ := newVocabServiceWithMocks()

	_, err := svc.CreateVocabulary(context.Background(), models.Vocabulary{Reading: "かな"})
	assertAppErrorCode(t, err, errors.ErrCodeValidation)
	vocab.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateVocabulary_BadStatus(t *testing.T) {
	svc, _, _ := newVocabServiceWithMocks()

	_, err := svc.CreateVocabulary(context.Background(), models.Vocabulary{Kanji: "語", Status: "archived"})
	assertAppErrorCode(t, err, errors.ErrCodeValidation)
}

func TestUpdateVocabulary_NotFound(t *testing.T) {
	svc, vocab, _ := newVocabServiceWithMocks()
	ctx := context.Background()

	vocab.On("Get", ctx, int64(99)).Return(nil, nil)

	err := svc.UpdateVocabulary(ctx, models.Vocabulary{ID: 99, Kanji: "語", Status: models.StatusActive})
	assertAppErrorCode(t, err, errors.ErrCodeNotFound)
}

func TestSetStatus(t *testing.T) {
	svc, vocab, _ := newVocabServiceWithMocks()
	ctx := context.Background()

	vocab.On("Get", ctx, int64(1)).Return(&models.Vocabulary{ID: 1}, nil)
	vocab.On("SetStatus", ctx, int64(1), models.StatusMastered).Return(nil)

	require.NoError(t, svc.SetStatus(ctx, 1, models.StatusMastered))
	vocab.AssertExpectations(t)
}

func TestSetStatus_InvalidStatus(t *testing.T) {
	svc, vocab, _ := newVocabServiceWithMocks()

	err := svc.SetStatus(context.Background(), 1, "paused")
	assertAppErrorCode(t, err, errors.ErrCodeValidation)
	vocab.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteVocabulary_NotFound(t *testing.T) {
	svc, vocab, _ := newVocabServiceWithMocks()
	ctx := context.Background()

	vocab.On("Get", ctx, int64(5)).Return(nil, nil)

	err := svc.DeleteVocabulary(ctx, 5)
	assertAppErrorCode(t, err, errors.ErrCodeNotFound)
}
