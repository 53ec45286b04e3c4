package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/scorebook-app/scorebook/internal/logger"
	"github.com/scorebook-app/scorebook/models"
)

// entityRepository is the SQLite-backed implementation of
// [EntityRepository]. It executes all record CRUD operations directly
// against the "entities" table using the embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (kind, id, owner_id).
type entityRepository struct {
	*DB
	logger *logger.Logger
}

// NewEntityRepository constructs an [EntityRepository] backed by the
// provided database connection and logger.
func NewEntityRepository(db *DB, logger *logger.Logger) EntityRepository {
	return &entityRepository{
		DB:     db,
		logger: logger,
	}
}

// Save implements [EntityRepository]. Each record is written with a full
// upsert so that pulls, pushes, and local edits all go through the same
// statement.
func (r *entityRepository) Save(ctx context.Context, entities ...models.Entity) error {
	log := logger.FromContext(ctx)

	for _, item := range entities {
		_, err := r.DB.ExecContext(ctx, upsertEntity,
			item.Kind,
			item.ID,
			item.OwnerID,
			string(item.Payload),
			item.Version,
			item.UpdatedAt,
			item.Deleted,
			item.Dirty,
			item.Hash,
		)
		if err != nil {
			log.Err(err).
				Str("func", "entityRepository.Save").
				Str("entity", item.Ref().String()).
				Int64("owner_id", item.OwnerID).
				Msg("failed to execute upsert for entity")
			return fmt.Errorf("failed to save entity %s: %w", item.Ref(), err)
		}
	}

	return nil
}

// Get implements [EntityRepository].
func (r *entityRepository) Get(ctx context.Context, ref models.EntityRef) (models.Entity, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getSingleEntity, ref.Kind, ref.ID)

	item, err := scanEntity(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Entity{}, fmt.Errorf("%w: %s", ErrEntityNotFound, ref)
		}
		log.Err(err).
			Str("func", "entityRepository.Get").
			Str("entity", ref.String()).
			Msg("failed to read entity")
		return models.Entity{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return item, nil
}

// List implements [EntityRepository]. The WHERE clause is assembled
// dynamically with squirrel from the filter.
func (r *entityRepository) List(ctx context.Context, ownerID int64, filter EntityFilter) ([]models.Entity, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListEntitiesQuery(ownerID, filter)
	if err != nil {
		log.Err(err).
			Str("func", "entityRepository.List").
			Int64("owner_id", ownerID).
			Msg("failed to build list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "entityRepository.List").
			Int64("owner_id", ownerID).
			Msg("failed to execute list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Entity, 0, 16)
	for rows.Next() {
		item, scanErr := scanEntity(rows.Scan)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "entityRepository.List").
				Int64("owner_id", ownerID).
				Msg("failed to scan entity row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		results = append(results, item)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// buildListEntitiesQuery assembles the dynamic SELECT for List.
func buildListEntitiesQuery(ownerID int64, filter EntityFilter) (string, []any, error) {
	builder := sq.Select("kind", "id", "owner_id", "payload", "version", "updated_at", "deleted", "dirty", "hash").
		From("entities").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("kind", "id")

	if len(filter.Kinds) > 0 {
		builder = builder.Where(sq.Eq{"kind": filter.Kinds})
	}
	if !filter.IncludeDeleted {
		builder = builder.Where(sq.Eq{"deleted": false})
	}

	return builder.ToSql()
}

// GetAllStates implements [EntityRepository].
func (r *entityRepository) GetAllStates(ctx context.Context, ownerID int64) ([]models.EntityState, error) {
	return r.queryStates(ctx, getAllEntityStates, ownerID)
}

// GetDirtyStates implements [EntityRepository].
func (r *entityRepository) GetDirtyStates(ctx context.Context, ownerID int64) ([]models.EntityState, error) {
	return r.queryStates(ctx, getDirtyEntityStates, ownerID)
}

func (r *entityRepository) queryStates(ctx context.Context, query string, ownerID int64) ([]models.EntityState, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Err(err).
			Str("func", "entityRepository.queryStates").
			Int64("owner_id", ownerID).
			Msg("failed to execute states query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	states := make([]models.EntityState, 0, 16)
	for rows.Next() {
		var st models.EntityState
		if scanErr := rows.Scan(&st.Kind, &st.ID, &st.Hash, &st.Version,
			&st.Deleted, &st.Dirty, &st.UpdatedAt); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		states = append(states, st)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return states, nil
}

// SetClean implements [EntityRepository].
func (r *entityRepository) SetClean(ctx context.Context, ref models.EntityRef, version int64) error {
	log := logger.FromContext(ctx)

	res, err := r.DB.ExecContext(ctx, setEntityClean, version, ref.Kind, ref.ID)
	if err != nil {
		log.Err(err).
			Str("func", "entityRepository.SetClean").
			Str("entity", ref.String()).
			Msg("failed to clear dirty marker")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrEntityNotFound, ref)
	}

	return nil
}

// HardDelete implements [EntityRepository].
func (r *entityRepository) HardDelete(ctx context.Context, ref models.EntityRef) error {
	log := logger.FromContext(ctx)

	if _, err := r.DB.ExecContext(ctx, hardDeleteEntity, ref.Kind, ref.ID); err != nil {
		log.Err(err).
			Str("func", "entityRepository.HardDelete").
			Str("entity", ref.String()).
			Msg("failed to delete entity row")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func scanEntity(scan func(dest ...any) error) (models.Entity, error) {
	var (
		item    models.Entity
		payload string
	)

	if err := scan(
		&item.Kind,
		&item.ID,
		&item.OwnerID,
		&payload,
		&item.Version,
		&item.UpdatedAt,
		&item.Deleted,
		&item.Dirty,
		&item.Hash,
	); err != nil {
		return models.Entity{}, err
	}

	item.Payload = []byte(payload)
	return item, nil
}
