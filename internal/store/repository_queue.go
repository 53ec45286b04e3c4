package store

import (
	"context"
	"fmt"

	"github.com/scorebook-app/scorebook/internal/logger"
	"github.com/scorebook-app/scorebook/models"
)

// queueRepository is the SQLite-backed implementation of [QueueRepository].
// The sync_queue table mirrors the in-memory queue: one row per entity
// reference, replaced in place when a newer mutation coalesces.
type queueRepository struct {
	*DB
	logger *logger.Logger
}

// NewQueueRepository constructs a [QueueRepository] backed by the provided
// database connection and logger.
func NewQueueRepository(db *DB, logger *logger.Logger) QueueRepository {
	return &queueRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveIntent implements [QueueRepository].
func (r *queueRepository) SaveIntent(ctx context.Context, intent models.SyncIntent, status models.IntentStatus) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, upsertIntent,
		intent.Ref.Kind,
		intent.Ref.ID,
		intent.OwnerID,
		intent.Kind,
		string(intent.Payload),
		intent.UpdatedAt,
		intent.EnqueuedAt,
		intent.RetryCount,
		intent.LastError,
		status,
	)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.SaveIntent").
			Str("entity", intent.Ref.String()).
			Str("status", string(status)).
			Msg("failed to persist sync intent")
		return fmt.Errorf("failed to save intent for %s: %w", intent.Ref, err)
	}

	return nil
}

// DeleteIntent implements [QueueRepository]. Deleting an absent row is not
// an error: a settled intent may already have been superseded and removed.
func (r *queueRepository) DeleteIntent(ctx context.Context, ref models.EntityRef) error {
	log := logger.FromContext(ctx)

	if _, err := r.DB.ExecContext(ctx, deleteIntent, ref.Kind, ref.ID); err != nil {
		log.Err(err).
			Str("func", "queueRepository.DeleteIntent").
			Str("entity", ref.String()).
			Msg("failed to delete sync intent")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// ListIntents implements [QueueRepository].
func (r *queueRepository) ListIntents(ctx context.Context) ([]models.StoredIntent, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listIntents)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.ListIntents").
			Msg("failed to read sync queue")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	intents := make([]models.StoredIntent, 0, 16)
	for rows.Next() {
		var (
			item    models.StoredIntent
			payload string
		)
		if scanErr := rows.Scan(
			&item.Ref.Kind,
			&item.Ref.ID,
			&item.OwnerID,
			&item.Kind,
			&payload,
			&item.UpdatedAt,
			&item.EnqueuedAt,
			&item.RetryCount,
			&item.LastError,
			&item.Status,
		); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		if payload != "" {
			item.Payload = []byte(payload)
		}
		intents = append(intents, item)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return intents, nil
}
