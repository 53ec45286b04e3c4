package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scorebook-app/scorebook/internal/config"
	"github.com/scorebook-app/scorebook/internal/logger"
	"github.com/scorebook-app/scorebook/models"
)

const (
	pgInsertRecord = `
		INSERT INTO records (owner_id, kind, id, payload, version, updated_at, deleted)
		VALUES ($1, $2, $3, $4, 1, $5, $6)
		ON CONFLICT (owner_id, kind, id) DO NOTHING
		RETURNING version;`

	pgUpdateRecord = `
		UPDATE records
		SET payload = $4, version = version + 1, updated_at = $5, deleted = $6
		WHERE owner_id = $1 AND kind = $2 AND id = $3 AND version = $7
		RETURNING version;`

	pgSelectRecord = `
		SELECT payload, version, updated_at, deleted
		FROM records
		WHERE owner_id = $1 AND kind = $2 AND id = $3;`

	pgSelectAllRecords = `
		SELECT kind, id, payload, version, updated_at, deleted
		FROM records
		WHERE owner_id = $1
		ORDER BY kind, id;`
)

type postgresRemoteTransport struct {
	pool   *pgxpool.Pool
	logger *logger.Logger
}

// NewPostgresRemoteTransport constructs a [RemoteTransport] that reaches the
// shared replica directly over PostgreSQL, for deployments without the
// scorebook API in between. Optimistic concurrency is enforced by a
// version-guarded UPDATE; a guard miss or a raced first INSERT surfaces as
// [ErrConflict], matching the HTTP transport's behaviour.
func NewPostgresRemoteTransport(ctx context.Context, adapterCfg config.ClientAdapter, log *logger.Logger) (RemoteTransport, error) {
	pool, err := pgxpool.New(ctx, adapterCfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("create remote postgres pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		log.Err(err).Str("func", "NewPostgresRemoteTransport").Msg("error connecting remote database (ping)")
		return nil, fmt.Errorf("ping remote postgres: %w", err)
	}
	log.Debug().Str("func", "NewPostgresRemoteTransport").Msg("connected to remote database")

	return &postgresRemoteTransport{pool: pool, logger: log}, nil
}

// SetToken implements [RemoteTransport]. The direct-DB transport carries no
// bearer token; authentication happens at connection time via the DSN.
func (p *postgresRemoteTransport) SetToken(string) {}

// Token implements [RemoteTransport].
func (p *postgresRemoteTransport) Token() string { return "" }

// Push implements [RemoteTransport]. A zero ExpectedVersion attempts a first
// insert; anything else a version-guarded update. Both paths return
// [ErrConflict] (wrapped) when another writer got there first.
func (p *postgresRemoteTransport) Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error) {
	var (
		newVersion int64
		err        error
	)

	if req.ExpectedVersion == 0 {
		err = p.pool.QueryRow(ctx, pgInsertRecord,
			req.OwnerID, req.Kind, req.ID, req.Payload, req.UpdatedAt, req.Deleted,
		).Scan(&newVersion)
	} else {
		err = p.pool.QueryRow(ctx, pgUpdateRecord,
			req.OwnerID, req.Kind, req.ID, req.Payload, req.UpdatedAt, req.Deleted, req.ExpectedVersion,
		).Scan(&newVersion)
	}

	if err != nil {
		// No row back means the guard did not match: either the record
		// already exists (raced insert) or its version moved on.
		if errors.Is(err, pgx.ErrNoRows) {
			return models.PushResponse{}, fmt.Errorf("%w: version %d is stale for %s/%s",
				ErrConflict, req.ExpectedVersion, req.Kind, req.ID)
		}
		return models.PushResponse{}, fmt.Errorf("push %s/%s: %w", req.Kind, req.ID, mapPgError(err))
	}

	return models.PushResponse{Version: newVersion}, nil
}

// Pull implements [RemoteTransport].
func (p *postgresRemoteTransport) Pull(ctx context.Context, ownerID int64, ref models.EntityRef) (models.PullResponse, error) {
	record := models.PullResponse{Kind: ref.Kind, ID: ref.ID}

	err := p.pool.QueryRow(ctx, pgSelectRecord, ownerID, ref.Kind, ref.ID).
		Scan(&record.Payload, &record.Version, &record.UpdatedAt, &record.Deleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.PullResponse{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
		}
		return models.PullResponse{}, fmt.Errorf("pull %s: %w", ref, mapPgError(err))
	}

	return record, nil
}

// PullAll implements [RemoteTransport].
func (p *postgresRemoteTransport) PullAll(ctx context.Context, ownerID int64) ([]models.PullResponse, error) {
	rows, err := p.pool.Query(ctx, pgSelectAllRecords, ownerID)
	if err != nil {
		return nil, fmt.Errorf("pull-all for owner %d: %w", ownerID, mapPgError(err))
	}
	defer rows.Close()

	var records []models.PullResponse
	for rows.Next() {
		var record models.PullResponse
		if err = rows.Scan(&record.Kind, &record.ID, &record.Payload,
			&record.Version, &record.UpdatedAt, &record.Deleted); err != nil {
			return nil, fmt.Errorf("scan pull-all row: %w", err)
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pull-all rows: %w", mapPgError(err))
	}

	return records, nil
}

// Close releases the underlying connection pool.
func (p *postgresRemoteTransport) Close() {
	p.pool.Close()
}
