package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrAccountNotRegistered is returned when the device has no local
	// account row yet.
	ErrAccountNotRegistered = errors.New("local account is not registered")

	// ErrThreadNotFound is returned when the note-to-self thread of the
	// local account does not exist.
	ErrThreadNotFound = errors.New("note to self thread was not found")

	// ErrOutboxEntryNotFound is returned when an update targets an outbox
	// entry that does not exist.
	ErrOutboxEntryNotFound = errors.New("outbox entry was not found")

	// ErrEnvelopeExists is returned when an envelope with the same id has
	// already been stored by the relay.
	ErrEnvelopeExists = errors.New("envelope already exists")

	// ErrStorageUnavailable wraps transient database failures that may
	// succeed if retried.
	ErrStorageUnavailable = errors.New("storage is temporarily unavailable")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
