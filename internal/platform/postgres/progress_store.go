package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/lugatapp/lugat-api/internal/domain"
	"github.com/lugatapp/lugat-api/internal/platform/logger"
	"github.com/lugatapp/lugat-api/internal/store"
)

// PostgresProgressStore implements the store.ProgressStore interface
// using a PostgreSQL database as the storage backend.
//
// Unlike the other stores it holds a *sql.DB rather than a DBTX: recording
// an attempt updates both the progress row and the practice-activity table,
// and the two writes must land in one transaction.
type PostgresProgressStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresProgressStore creates a new PostgreSQL implementation of the
// ProgressStore interface. If logger is nil, a default logger will be used.
func NewPostgresProgressStore(db *sql.DB, logger *slog.Logger) *PostgresProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure PostgresProgressStore implements store.ProgressStore interface
var _ store.ProgressStore = (*PostgresProgressStore)(nil)

const progressColumns = `learner_id, word_id, correct_count, incorrect_count, last_practiced_at, is_mastered`

func scanProgress(row interface{ Scan(...any) error }) (*domain.Progress, error) {
	var (
		progress      domain.Progress
		lastPracticed sql.NullTime
	)
	err := row.Scan(
		&progress.LearnerID,
		&progress.WordID,
		&progress.CorrectCount,
		&progress.IncorrectCount,
		&lastPracticed,
		&progress.IsMastered,
	)
	if err != nil {
		return nil, err
	}
	if lastPracticed.Valid {
		practiced := lastPracticed.Time.UTC()
		progress.LastPracticedAt = &practiced
	}
	return &progress, nil
}

// RecordAttempt implements store.ProgressStore.RecordAttempt
//
// The counter update is a single atomic upsert: the increment and the
// mastery recomputation happen inside the database, so two concurrent
// attempts on the same (learner, word) pair can never both read the same
// prior counters. The mastery expression mirrors domain.ComputeMastered,
// with the thresholds passed in as parameters so there is one source of
// truth for the numbers.
func (s *PostgresProgressStore) RecordAttempt(ctx context.Context, learnerID, wordID int64, correct bool, at time.Time) (*domain.Progress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	correctInc, incorrectInc := 0, 0
	if correct {
		correctInc = 1
	} else {
		incorrectInc = 1
	}
	practicedAt := at.UTC()
	practiceDay := practicedAt.Truncate(24 * time.Hour)

	upsert := `
		INSERT INTO user_progress (learner_id, word_id, correct_count, incorrect_count, last_practiced_at, is_mastered)
		VALUES ($1, $2, $3, $4, $5, false)
		ON CONFLICT (learner_id, word_id) DO UPDATE SET
			correct_count     = user_progress.correct_count + EXCLUDED.correct_count,
			incorrect_count   = user_progress.incorrect_count + EXCLUDED.incorrect_count,
			last_practiced_at = EXCLUDED.last_practiced_at,
			is_mastered =
				(user_progress.correct_count + EXCLUDED.correct_count
					+ user_progress.incorrect_count + EXCLUDED.incorrect_count) >= $6
				AND (user_progress.correct_count + EXCLUDED.correct_count)::float8
					/ (user_progress.correct_count + EXCLUDED.correct_count
						+ user_progress.incorrect_count + EXCLUDED.incorrect_count) >= $7
		RETURNING ` + progressColumns

	var progress *domain.Progress
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		progress, err = scanProgress(tx.QueryRowContext(ctx, upsert,
			learnerID,
			wordID,
			correctInc,
			incorrectInc,
			practicedAt,
			domain.MasteryMinAttempts,
			domain.MasteryMinRatio,
		))
		if err != nil {
			return err
		}

		activity := `
			INSERT INTO practice_activity (learner_id, day)
			VALUES ($1, $2)
			ON CONFLICT (learner_id, day) DO NOTHING
		`
		_, err = tx.ExecContext(ctx, activity, learnerID, practiceDay)
		return err
	})

	if err != nil {
		if isForeignKeyViolation(err) {
			if strings.Contains(violatedConstraint(err), "word") {
				return nil, store.ErrWordNotFound
			}
			return nil, store.ErrLearnerNotFound
		}

		log.Error("failed to record attempt",
			slog.String("error", err.Error()),
			slog.Int64("learner_id", learnerID),
			slog.Int64("word_id", wordID))
		return nil, store.NewStoreError("progress", "record", "attempt upsert failed", err)
	}

	log.Debug("attempt recorded",
		slog.Int64("learner_id", learnerID),
		slog.Int64("word_id", wordID),
		slog.Bool("correct", correct),
		slog.Bool("is_mastered", progress.IsMastered))
	return progress, nil
}

// GetProgress implements store.ProgressStore.GetProgress
// Returns store.ErrProgressNotFound if the learner has never attempted the word.
func (s *PostgresProgressStore) GetProgress(ctx context.Context, learnerID, wordID int64) (*domain.Progress, error) {
	query := `SELECT ` + progressColumns + ` FROM user_progress WHERE learner_id = $1 AND word_id = $2`

	progress, err := scanProgress(s.db.QueryRowContext(ctx, query, learnerID, wordID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProgressNotFound
		}
		return nil, store.NewStoreError("progress", "get", "query failed", err)
	}

	return progress, nil
}

// ListByLearner implements store.ProgressStore.ListByLearner
func (s *PostgresProgressStore) ListByLearner(ctx context.Context, learnerID int64) ([]*domain.Progress, error) {
	query := `SELECT ` + progressColumns + ` FROM user_progress WHERE learner_id = $1 ORDER BY word_id`

	rows, err := s.db.QueryContext(ctx, query, learnerID)
	if err != nil {
		return nil, store.NewStoreError("progress", "list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*domain.Progress
	for rows.Next() {
		progress, err := scanProgress(rows)
		if err != nil {
			return nil, store.NewStoreError("progress", "list", "scan failed", err)
		}
		out = append(out, progress)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("progress", "list", "iteration failed", err)
	}

	return out, nil
}

// ActiveDays implements store.ProgressStore.ActiveDays
// The day column is a DATE; rows come back normalized to UTC midnight so
// callers can compare them directly against truncated times.
func (s *PostgresProgressStore) ActiveDays(ctx context.Context, learnerID int64, since time.Time) ([]time.Time, error) {
	query := `
		SELECT day
		FROM practice_activity
		WHERE learner_id = $1 AND day >= $2
		ORDER BY day
	`

	rows, err := s.db.QueryContext(ctx, query, learnerID, since.UTC().Truncate(24*time.Hour))
	if err != nil {
		return nil, store.NewStoreError("progress", "activity", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	var out []time.Time
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, store.NewStoreError("progress", "activity", "scan failed", err)
		}
		out = append(out, time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC))
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("progress", "activity", "iteration failed", err)
	}

	return out, nil
}
