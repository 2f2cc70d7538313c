package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/hmori/jflash/internal/logger"
	"github.com/hmori/jflash/internal/models"
	"github.com/hmori/jflash/internal/repository"
)

var vocabColumns = []string{
	"id", "kanji", "reading", "meaning", "pos", "jlpt_level",
	"example_sentence", "example_meaning", "notes", "status", "created_at",
}

type vocabRepository struct {
	db *sql.DB
}

// NewVocabularyRepository creates a new VocabularyRepository implementation
func NewVocabularyRepository(db *sql.DB) repository.VocabularyRepository {
	return &vocabRepository{db: db}
}

func (r *vocabRepository) Get(ctx context.Context, id int64) (*models.Vocabulary, error) {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")
	log.Debug("getting vocabulary: id=%d", id)

	row := r.db.QueryRowContext(ctx, `
SELECT id, kanji, reading, meaning, pos, jlpt_level, example_sentence, example_meaning, notes, status, created_at
FROM vocabulary
WHERE id = ?
`, id)
	v, err := scanVocabulary(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("vocabulary not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get vocabulary: %v", err)
		return nil, err
	}
	return v, nil
}

func (r *vocabRepository) List(ctx context.Context, filter models.VocabFilter) ([]models.Vocabulary, error) {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")
	log.Debug("listing vocabulary: status=%s, pos=%s, jlpt=%s, search=%s",
		filter.Status, filter.POS, filter.JLPTLevel, filter.Search)

	query := applyVocabFilter(sqlBuilder.Select(vocabColumns...).From("vocabulary"), filter).
		OrderBy("id ASC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list vocabulary: %v", err)
		return nil, err
	}
	defer rows.Close()

	var items []models.Vocabulary
	for rows.Next() {
		v, err := scanVocabulary(rows)
		if err != nil {
			log.Error("failed to scan vocabulary row: %v", err)
			return nil, err
		}
		items = append(items, *v)
	}
	log.Debug("found %d vocabulary entries", len(items))
	return items, rows.Err()
}

func (r *vocabRepository) Count(ctx context.Context, filter models.VocabFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")

	sqlStr, args, err := applyVocabFilter(sqlBuilder.Select("COUNT(*)").From("vocabulary"), filter).ToSql()
	if err != nil {
		log.Error("failed to build count query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count vocabulary: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *vocabRepository) Insert(ctx context.Context, v models.Vocabulary) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")
	log.Debug("inserting vocabulary: kanji=%s", v.Kanji)

	status := v.Status
	if status == "" {
		status = models.StatusActive
	}
	res, err := r.db.ExecContext(ctx, `
INSERT INTO vocabulary (kanji, reading, meaning, pos, jlpt_level, example_sentence, example_meaning, notes, status)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, v.Kanji, v.Reading, v.Meaning, v.POS, v.JLPTLevel, v.ExampleSentence, v.ExampleMeaning, v.Notes, status)
	if err != nil {
		log.Error("failed to insert vocabulary: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get vocabulary id: %v", err)
		return 0, err
	}
	log.Debug("vocabulary inserted: id=%d", id)
	return id, nil
}

func (r *vocabRepository) InsertBatch(ctx context.Context, vs []models.Vocabulary) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")
	log.Debug("inserting %d vocabulary entries", len(vs))

	ids := make([]int64, 0, len(vs))
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO vocabulary (kanji, reading, meaning, pos, jlpt_level, example_sentence, example_meaning, notes, status)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, v := range vs {
			status := v.Status
			if status == "" {
				status = models.StatusActive
			}
			res, err := stmt.ExecContext(ctx, v.Kanji, v.Reading, v.Meaning, v.POS, v.JLPTLevel,
				v.ExampleSentence, v.ExampleMeaning, v.Notes, status)
			if err != nil {
				return err
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to insert vocabulary batch: %v", err)
		return nil, err
	}
	return ids, nil
}

func (r *vocabRepository) Update(ctx context.Context, v models.Vocabulary) error {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")
	log.Debug("updating vocabulary: id=%d", v.ID)

	_, err := r.db.ExecContext(ctx, `
UPDATE vocabulary
SET kanji = ?, reading = ?, meaning = ?, pos = ?, jlpt_level = ?, example_sentence = ?, example_meaning = ?, notes = ?, status = ?
WHERE id = ?
`, v.Kanji, v.Reading, v.Meaning, v.POS, v.JLPTLevel, v.ExampleSentence, v.ExampleMeaning, v.Notes, v.Status, v.ID)
	if err != nil {
		log.Error("failed to update vocabulary: %v", err)
	}
	return err
}

func (r *vocabRepository) SetStatus(ctx context.Context, id int64, status string) error {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")
	log.Debug("setting vocabulary status: id=%d, status=%s", id, status)

	_, err := r.db.ExecContext(ctx, `UPDATE vocabulary SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		log.Error("failed to set vocabulary status: %v", err)
	}
	return err
}

func (r *vocabRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("vocab_repo")
	log.Debug("deleting vocabulary: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM vocabulary WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete vocabulary: %v", err)
	}
	return err
}

func (r *vocabRepository) Exists(ctx context.Context, kanji, reading, meaning string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM vocabulary WHERE kanji = ? AND reading = ? AND meaning = ?
`, kanji, reading, meaning).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func applyVocabFilter(query squirrel.SelectBuilder, filter models.VocabFilter) squirrel.SelectBuilder {
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.POS != "" {
		query = query.Where(squirrel.Eq{"pos": filter.POS})
	}
	if filter.JLPTLevel != "" {
		query = query.Where(squirrel.Eq{"jlpt_level": filter.JLPTLevel})
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.Like{"kanji": like},
			squirrel.Like{"reading": like},
			squirrel.Like{"meaning": like},
		})
	}
	return query
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVocabulary(row rowScanner) (*models.Vocabulary, error) {
	var v models.Vocabulary
	var reading, meaning, pos, jlpt, exSentence, exMeaning, notes sql.NullString
	err := row.Scan(&v.ID, &v.Kanji, &reading, &meaning, &pos, &jlpt, &exSentence, &exMeaning, &notes, &v.Status, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	v.Reading = reading.String
	v.Meaning = meaning.String
	v.POS = pos.String
	v.JLPTLevel = jlpt.String
	v.ExampleSentence = exSentence.String
	v.ExampleMeaning = exMeaning.String
	v.Notes = notes.String
	return &v, nil
}
