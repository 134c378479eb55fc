package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lugatapp/lugat-api/internal/domain"
	"github.com/lugatapp/lugat-api/internal/platform/logger"
	"github.com/lugatapp/lugat-api/internal/store"
)

// PostgresWordStore implements the store.WordStore interface
// using a PostgreSQL database as the storage backend.
type PostgresWordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordStore creates a new PostgreSQL implementation of the WordStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresWordStore(db store.DBTX, logger *slog.Logger) *PostgresWordStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWordStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_store")),
	}
}

// Ensure PostgresWordStore implements store.WordStore interface
var _ store.WordStore = (*PostgresWordStore)(nil)

const wordColumns = `id, ottoman, turkish, COALESCE(meaning, ''),
	COALESCE(example_ottoman, ''), COALESCE(example_turkish, ''),
	category_id, difficulty, COALESCE(etymology, ''), COALESCE(audio_url, ''),
	created_at`

// scanWord reads one word row in wordColumns order.
func scanWord(row interface{ Scan(...any) error }) (*domain.Word, error) {
	var word domain.Word
	err := row.Scan(
		&word.ID,
		&word.Ottoman,
		&word.Turkish,
		&word.Meaning,
		&word.ExampleOttoman,
		&word.ExampleTurkish,
		&word.CategoryID,
		&word.Difficulty,
		&word.Etymology,
		&word.AudioURL,
		&word.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &word, nil
}

// CreateWord implements store.WordStore.CreateWord
// It saves a new word, letting the database assign the identifier and
// creation time. A foreign key violation on category_id means the caller
// referenced a missing category, which is an input problem, so it surfaces
// wrapped with store.ErrInvalidEntity.
func (s *PostgresWordStore) CreateWord(ctx context.Context, word *domain.Word) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := word.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO words (ottoman, turkish, meaning, example_ottoman, example_turkish,
			category_id, difficulty, etymology, audio_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	now := time.Now().UTC()
	err := s.db.QueryRowContext(ctx, query,
		word.Ottoman,
		word.Turkish,
		word.Meaning,
		word.ExampleOttoman,
		word.ExampleTurkish,
		word.CategoryID,
		word.Difficulty,
		word.Etymology,
		word.AudioURL,
		now,
	).Scan(&word.ID, &word.CreatedAt)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("word references missing category",
				slog.Int64("category_id", word.CategoryID))
			return fmt.Errorf("%w: %w", store.ErrInvalidEntity, store.ErrCategoryNotFound)
		}

		log.Error("failed to create word",
			slog.String("error", err.Error()),
			slog.String("turkish", word.Turkish))
		return store.NewStoreError("word", "create", "insert failed", err)
	}

	log.Debug("word created",
		slog.Int64("word_id", word.ID),
		slog.String("turkish", word.Turkish))
	return nil
}

// GetWord implements store.WordStore.GetWord
// Returns store.ErrWordNotFound if the word does not exist.
func (s *PostgresWordStore) GetWord(ctx context.Context, id int64) (*domain.Word, error) {
	query := `SELECT ` + wordColumns + ` FROM words WHERE id = $1`

	word, err := scanWord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrWordNotFound
		}
		return nil, store.NewStoreError("word", "get", "query failed", err)
	}

	return word, nil
}

// ListWords implements store.WordStore.ListWords
// The text query is matched case-insensitively against the Ottoman text,
// the Turkish text, and the meaning.
func (s *PostgresWordStore) ListWords(ctx context.Context, filter store.WordFilter) ([]*domain.Word, error) {
	query := `SELECT ` + wordColumns + ` FROM words`

	var clauses []string
	var args []any

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		clauses = append(clauses, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.TextQuery != "" {
		args = append(args, "%"+filter.TextQuery+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(
			"(ottoman ILIKE $%d OR turkish ILIKE $%d OR meaning ILIKE $%d)", n, n, n))
	}

	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, store.NewStoreError("word", "list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*domain.Word
	for rows.Next() {
		word, err := scanWord(rows)
		if err != nil {
			return nil, store.NewStoreError("word", "list", "scan failed", err)
		}
		out = append(out, word)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("word", "list", "iteration failed", err)
	}

	return out, nil
}

// AddRelated implements store.WordStore.AddRelated
// Duplicate relations are allowed, matching the data model. A foreign key
// violation on either side maps to store.ErrWordNotFound.
func (s *PostgresWordStore) AddRelated(ctx context.Context, wordID, relatedWordID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO related_words (word_id, related_word_id)
		VALUES ($1, $2)
	`

	if _, err := s.db.ExecContext(ctx, query, wordID, relatedWordID); err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrWordNotFound
		}

		log.Error("failed to link related word",
			slog.String("error", err.Error()),
			slog.Int64("word_id", wordID),
			slog.Int64("related_word_id", relatedWordID))
		return store.NewStoreError("word", "link", "insert failed", err)
	}

	return nil
}

// GetRelated implements store.WordStore.GetRelated
func (s *PostgresWordStore) GetRelated(ctx context.Context, wordID int64) ([]*domain.Word, error) {
	query := `
		SELECT w.id, w.ottoman, w.turkish, COALESCE(w.meaning, ''),
			COALESCE(w.example_ottoman, ''), COALESCE(w.example_turkish, ''),
			w.category_id, w.difficulty, COALESCE(w.etymology, ''), COALESCE(w.audio_url, ''),
			w.created_at
		FROM related_words r
		JOIN words w ON w.id = r.related_word_id
		WHERE r.word_id = $1
		ORDER BY r.id
	`

	rows, err := s.db.QueryContext(ctx, query, wordID)
	if err != nil {
		return nil, store.NewStoreError("word", "related", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*domain.Word
	for rows.Next() {
		word, err := scanWord(rows)
		if err != nil {
			return nil, store.NewStoreError("word", "related", "scan failed", err)
		}
		out = append(out, word)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("word", "related", "iteration failed", err)
	}

	return out, nil
}
