package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-link-sync/internal/logger"
	"github.com/MKhiriev/go-link-sync/internal/utils"
	"github.com/MKhiriev/go-link-sync/models"
)

// accountRepository is the SQLite-backed implementation of
// [AccountRepository].
type accountRepository struct {
	*DB
	logger *logger.Logger
	ids    *utils.UUIDGenerator
}

// NewAccountRepository constructs an [AccountRepository] backed by the
// device store.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		DB:     db,
		logger: logger,
		ids:    utils.NewUUIDGenerator(),
	}
}

// SaveLocalAccount upserts the single account row and creates the
// note-to-self thread on first save. Both writes happen in one transaction.
func (r *accountRepository) SaveLocalAccount(ctx context.Context, account models.AccountState) (models.ThreadReference, error) {
	log := logger.FromContext(ctx)

	tx, err := r.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.SaveLocalAccount").Msg("failed to begin transaction")
		return models.ThreadReference{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback() //nolint:errcheck

	var registeredAt sql.NullTime
	if account.RegisteredAt != nil {
		registeredAt = sql.NullTime{Time: *account.RegisteredAt, Valid: true}
	}

	if _, err = tx.ExecContext(ctx, upsertLocalAccount,
		account.ACI,
		account.E164,
		account.DeviceID,
		account.DeviceName,
		account.State,
		registeredAt,
	); err != nil {
		log.Err(err).
			Str("func", "*accountRepository.SaveLocalAccount").
			Str("aci", account.ACI).
			Msg("failed to upsert local account")
		return models.ThreadReference{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if _, err = tx.ExecContext(ctx, insertThreadIfMissing, r.ids.Generate(), account.ACI); err != nil {
		log.Err(err).
			Str("func", "*accountRepository.SaveLocalAccount").
			Str("aci", account.ACI).
			Msg("failed to create note to self thread")
		return models.ThreadReference{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	var thread models.ThreadReference
	if err = tx.QueryRowContext(ctx, selectThreadByRecipient, account.ACI).Scan(&thread.ThreadID, &thread.RecipientACI); err != nil {
		log.Err(err).
			Str("func", "*accountRepository.SaveLocalAccount").
			Str("aci", account.ACI).
			Msg("failed to read note to self thread")
		return models.ThreadReference{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*accountRepository.SaveLocalAccount").Msg("failed to commit transaction")
		return models.ThreadReference{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return thread, nil
}
