package adapter

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// mapPgError translates a pgx driver error into the package's sentinel
// errors so that the engine handles the direct-DB transport exactly like the
// HTTP one.
//
// Mapping, by SQLSTATE class
// (https://www.postgresql.org/docs/current/errcodes-appendix.html):
//
//   - Class 40 (transaction rollback) — the optimistic-concurrency conflict
//     signal. Serialization failures and deadlocks mean another writer won;
//     the caller must pull the remote's current state and resolve.
//   - Class 08 (connection exceptions) and 57P03 (cannot connect now) —
//     transient, safe to retry with backoff.
//   - Class 22 (data exceptions) and 23 (integrity violations, except the
//     unique violation raced on first insert) — the payload itself is bad;
//     retrying can never succeed.
//
// Unrecognised driver errors pass through unchanged.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	// Class 40 — transaction rollback
	case pgerrcode.TransactionRollback, // 40000
		pgerrcode.SerializationFailure, // 40001
		pgerrcode.DeadlockDetected:     // 40P01
		return fmt.Errorf("%w: %s", ErrConflict, pgErr.Message)

	// A concurrent first insert of the same record is a conflict too.
	case pgerrcode.UniqueViolation:
		return fmt.Errorf("%w: %s", ErrConflict, pgErr.Message)

	// Class 08 — connection exceptions
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.CannotConnectNow: // 57P03
		return fmt.Errorf("%w: %s", ErrUnavailable, pgErr.Message)
	}

	switch pgErr.Code {
	// Class 22 — data exceptions
	case pgerrcode.DataException,
		pgerrcode.NullValueNotAllowedDataException,
		pgerrcode.InvalidTextRepresentation:
		return fmt.Errorf("%w: %s", ErrBadPayload, pgErr.Message)

	// Class 23 — integrity constraint violations (unique handled above)
	case pgerrcode.IntegrityConstraintViolation,
		pgerrcode.RestrictViolation,
		pgerrcode.NotNullViolation,
		pgerrcode.ForeignKeyViolation,
		pgerrcode.CheckViolation:
		return fmt.Errorf("%w: %s", ErrBadPayload, pgErr.Message)
	}

	return err
}
