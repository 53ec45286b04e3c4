package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEntityNotFound is returned when a query or update targets a record
	// (identified by kind and id) that does not exist in the local replica.
	ErrEntityNotFound = errors.New("entity was not found")

	// ErrIntentNotFound is returned when a queue operation targets an
	// intent row that does not exist.
	ErrIntentNotFound = errors.New("sync intent was not found")

	// ErrEntityNotSaved is returned when an upsert completes without error
	// but the number of affected rows is zero, indicating that no data was
	// actually persisted.
	ErrEntityNotSaved = errors.New("entity was not saved")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when a result row cannot be scanned into
	// the destination model.
	ErrScanningRow = errors.New("error scanning sql row")

	// ErrScanningRows is returned when an iteration error is detected after
	// the result set is exhausted.
	ErrScanningRows = errors.New("error iterating sql rows")
)
