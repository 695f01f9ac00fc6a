package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-link-sync/internal/logger"
	"github.com/MKhiriev/go-link-sync/models"
)

// ReadTx is the [Snapshot] handed out by [DB.Read]. It is only valid inside
// the callback it was passed to.
type ReadTx struct {
	tx        *sql.Tx
	timestamp uint64
}

// Timestamp implements syncmsg.Snapshot.
func (t *ReadTx) Timestamp() uint64 {
	return t.timestamp
}

// LocalAccount returns the single account row of the device. A device that
// never registered has no row and gets [ErrAccountNotRegistered].
func (t *ReadTx) LocalAccount(ctx context.Context) (models.AccountState, error) {
	log := logger.FromContext(ctx)

	var (
		account      models.AccountState
		registeredAt sql.NullTime
	)
	err := t.tx.QueryRowContext(ctx, selectLocalAccount).Scan(
		&account.ACI,
		&account.E164,
		&account.DeviceID,
		&account.DeviceName,
		&account.State,
		&registeredAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AccountState{}, ErrAccountNotRegistered
	}
	if err != nil {
		log.Err(err).Str("func", "*ReadTx.LocalAccount").Msg("failed to scan local account")
		return models.AccountState{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if registeredAt.Valid {
		account.RegisteredAt = &registeredAt.Time
	}

	return account, nil
}

// LocalThread returns the note-to-self thread of the local account.
func (t *ReadTx) LocalThread(ctx context.Context) (models.ThreadReference, error) {
	log := logger.FromContext(ctx)

	var thread models.ThreadReference
	err := t.tx.QueryRowContext(ctx, selectLocalThread).Scan(&thread.ThreadID, &thread.RecipientACI)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ThreadReference{}, ErrThreadNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*ReadTx.LocalThread").Msg("failed to scan note to self thread")
		return models.ThreadReference{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return thread, nil
}
