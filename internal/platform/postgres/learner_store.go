package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/lugatapp/lugat-api/internal/domain"
	"github.com/lugatapp/lugat-api/internal/platform/logger"
	"github.com/lugatapp/lugat-api/internal/store"
)

// PostgresLearnerStore implements the store.LearnerStore interface
// using a PostgreSQL database as the storage backend. Credentials are
// hashed with bcrypt before they touch the database.
type PostgresLearnerStore struct {
	db         store.DBTX
	logger     *slog.Logger
	bcryptCost int
}

// NewPostgresLearnerStore creates a new PostgreSQL implementation of the
// LearnerStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. A bcryptCost of 0
// selects bcrypt.DefaultCost. If logger is nil, a default logger will be used.
func NewPostgresLearnerStore(db store.DBTX, logger *slog.Logger, bcryptCost int) *PostgresLearnerStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	return &PostgresLearnerStore{
		db:         db,
		logger:     logger.With(slog.String("component", "learner_store")),
		bcryptCost: bcryptCost,
	}
}

// Ensure PostgresLearnerStore implements store.LearnerStore interface
var _ store.LearnerStore = (*PostgresLearnerStore)(nil)

const learnerColumns = `id, handle, hashed_credential, daily_streak, last_activity`

func scanLearner(row interface{ Scan(...any) error }) (*domain.Learner, error) {
	var learner domain.Learner
	err := row.Scan(
		&learner.ID,
		&learner.Handle,
		&learner.HashedCredential,
		&learner.DailyStreak,
		&learner.LastActivity,
	)
	if err != nil {
		return nil, err
	}
	return &learner, nil
}

// CreateLearner implements store.LearnerStore.CreateLearner
// The plain credential is hashed here and discarded; only the hash is stored.
// Returns store.ErrHandleExists when the unique handle constraint fires.
func (s *PostgresLearnerStore) CreateLearner(ctx context.Context, handle, credential string) (*domain.Learner, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	learner := &domain.Learner{
		Handle:       handle,
		LastActivity: time.Now().UTC(),
	}
	if err := learner.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(credential), s.bcryptCost)
	if err != nil {
		log.Error("failed to hash credential",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("learner", "create", "credential hashing failed", err)
	}
	learner.HashedCredential = string(hashed)

	query := `
		INSERT INTO learners (handle, hashed_credential, daily_streak, last_activity)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err = s.db.QueryRowContext(ctx, query,
		learner.Handle,
		learner.HashedCredential,
		learner.DailyStreak,
		learner.LastActivity,
	).Scan(&learner.ID)

	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("duplicate learner handle",
				slog.String("handle", handle))
			return nil, store.ErrHandleExists
		}

		log.Error("failed to create learner",
			slog.String("error", err.Error()),
			slog.String("handle", handle))
		return nil, store.NewStoreError("learner", "create", "insert failed", err)
	}

	log.Debug("learner created",
		slog.Int64("learner_id", learner.ID),
		slog.String("handle", learner.Handle))
	return learner, nil
}

// GetLearner implements store.LearnerStore.GetLearner
// Returns store.ErrLearnerNotFound if the learner does not exist.
func (s *PostgresLearnerStore) GetLearner(ctx context.Context, id int64) (*domain.Learner, error) {
	query := `SELECT ` + learnerColumns + ` FROM learners WHERE id = $1`

	learner, err := scanLearner(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrLearnerNotFound
		}
		return nil, store.NewStoreError("learner", "get", "query failed", err)
	}

	return learner, nil
}

// GetLearnerByHandle implements store.LearnerStore.GetLearnerByHandle
// Returns store.ErrLearnerNotFound if the learner does not exist.
func (s *PostgresLearnerStore) GetLearnerByHandle(ctx context.Context, handle string) (*domain.Learner, error) {
	query := `SELECT ` + learnerColumns + ` FROM learners WHERE handle = $1`

	learner, err := scanLearner(s.db.QueryRowContext(ctx, query, handle))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrLearnerNotFound
		}
		return nil, store.NewStoreError("learner", "get", "query failed", err)
	}

	return learner, nil
}

// UpdateStreak implements store.LearnerStore.UpdateStreak
// Returns store.ErrLearnerNotFound for a missing learner and wraps any other
// failure in store.ErrUpdateFailed.
func (s *PostgresLearnerStore) UpdateStreak(ctx context.Context, id int64, streak int) (*domain.Learner, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if streak < 0 {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrLearnerStreakNegative)
	}

	query := `
		UPDATE learners
		SET daily_streak = $2
		WHERE id = $1
		RETURNING ` + learnerColumns

	learner, err := scanLearner(s.db.QueryRowContext(ctx, query, id, streak))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrLearnerNotFound
		}

		log.Error("failed to update streak",
			slog.String("error", err.Error()),
			slog.Int64("learner_id", id))
		return nil, fmt.Errorf("%w: streak: %w", store.ErrUpdateFailed, err)
	}

	return learner, nil
}

// TouchActivity implements store.LearnerStore.TouchActivity
// Returns store.ErrLearnerNotFound for a missing learner and wraps any other
// failure in store.ErrUpdateFailed.
func (s *PostgresLearnerStore) TouchActivity(ctx context.Context, id int64, at time.Time) (*domain.Learner, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE learners
		SET last_activity = $2
		WHERE id = $1
		RETURNING ` + learnerColumns

	learner, err := scanLearner(s.db.QueryRowContext(ctx, query, id, at.UTC()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrLearnerNotFound
		}

		log.Error("failed to touch activity",
			slog.String("error", err.Error()),
			slog.Int64("learner_id", id))
		return nil, fmt.Errorf("%w: activity: %w", store.ErrUpdateFailed, err)
	}

	return learner, nil
}
