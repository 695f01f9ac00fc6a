package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-link-sync/internal/logger"
	"github.com/MKhiriev/go-link-sync/internal/utils"
	"github.com/MKhiriev/go-link-sync/models"
)

// outboxRepository is the SQLite-backed implementation of
// [OutboxRepository].
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that storage failures carry the request fields.
type outboxRepository struct {
	*DB
	logger *logger.Logger
	ids    *utils.UUIDGenerator
}

// NewOutboxRepository constructs an [OutboxRepository] backed by the device
// store.
func NewOutboxRepository(db *DB, logger *logger.Logger) OutboxRepository {
	logger.Debug().Msg("creating outbox repository")
	return &outboxRepository{
		DB:     db,
		logger: logger,
		ids:    utils.NewUUIDGenerator(),
	}
}

// Enqueue stores entry as pending. A missing ID is generated; CreatedAt is
// always stamped by the store.
func (r *outboxRepository) Enqueue(ctx context.Context, entry models.OutboxEntry) (models.OutboxEntry, error) {
	log := logger.FromContext(ctx)

	if entry.ID == "" {
		entry.ID = r.ids.Generate()
	}
	entry.CreatedAt = r.clock().UTC()
	entry.Attempts = 0
	entry.LastError = ""
	entry.SentAt = nil

	_, err := r.ExecContext(ctx, insertOutboxEntry,
		entry.ID,
		entry.ThreadID,
		entry.FetchType,
		entry.Timestamp,
		entry.Content,
		entry.CreatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "*outboxRepository.Enqueue").
			Str("fetch_type", entry.FetchType.String()).
			Msg("failed to enqueue outbox entry")
		return models.OutboxEntry{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return entry, nil
}

// Pending returns the next batch of unsent entries.
func (r *outboxRepository) Pending(ctx context.Context, limit, maxAttempts int) ([]models.OutboxEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildPendingOutboxQuery(limit, maxAttempts)
	if err != nil {
		log.Err(err).Str("func", "*outboxRepository.Pending").Msg("failed to create query")
		return nil, err
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*outboxRepository.Pending").Msg("failed to execute query for pending outbox entries")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.OutboxEntry, 0, max(limit, 0))
	for rows.Next() {
		var (
			entry  models.OutboxEntry
			sentAt sql.NullTime
		)

		if err := rows.Scan(
			&entry.ID,
			&entry.ThreadID,
			&entry.FetchType,
			&entry.Timestamp,
			&entry.Content,
			&entry.Attempts,
			&entry.LastError,
			&entry.CreatedAt,
			&sentAt,
		); err != nil {
			log.Err(err).Str("func", "*outboxRepository.Pending").Msg("failed to scan outbox row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if sentAt.Valid {
			entry.SentAt = &sentAt.Time
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*outboxRepository.Pending").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

// MarkSent records that the relay accepted the entry.
func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	return r.update(ctx, "*outboxRepository.MarkSent", markOutboxEntrySent, r.clock().UTC(), id)
}

// MarkFailed counts a failed delivery attempt and keeps its reason.
func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return r.update(ctx, "*outboxRepository.MarkFailed", markOutboxEntryFailed, reason, id)
}

func (r *outboxRepository) update(ctx context.Context, funcName, query string, args ...any) error {
	log := logger.FromContext(ctx)

	result, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to update outbox entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrOutboxEntryNotFound
	}

	return nil
}
