package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/go-link-sync/internal/logger"
)

// DB is a database connection shared by the repositories of one process.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
	now                func() time.Time
}

// Read opens a read-only transaction, pins the current time as the snapshot
// timestamp and hands it to fn. The transaction is always rolled back.
func (db *DB) Read(ctx context.Context, fn func(tx Snapshot) error) error {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*DB.Read").Msg("error opening read snapshot")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback() //nolint:errcheck

	return fn(&ReadTx{
		tx:        tx,
		timestamp: uint64(db.clock().UnixMilli()),
	})
}

func (db *DB) clock() time.Time {
	if db.now == nil {
		return time.Now()
	}
	return db.now()
}

// classify maps a driver error onto the store sentinels. Non-retryable
// errors are returned wrapped in fallback.
func (db *DB) classify(err, fallback error) error {
	if db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%w: %w", fallback, err)
}
