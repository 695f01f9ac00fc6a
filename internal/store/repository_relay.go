package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-link-sync/internal/logger"
	"github.com/MKhiriev/go-link-sync/models"
	"github.com/jackc/pgerrcode"
)

// relayRepository is the PostgreSQL-backed implementation of
// [RelayRepository]. Envelopes are append-only; each device keeps a cursor
// of the highest sequence it acknowledged.
type relayRepository struct {
	*DB
	logger *logger.Logger
}

// NewRelayRepository constructs a [RelayRepository] backed by the relay
// store.
func NewRelayRepository(db *DB, logger *logger.Logger) RelayRepository {
	logger.Debug().Msg("creating relay repository")
	return &relayRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveEnvelope appends envelope and returns it with the relay sequence and
// receive time filled in.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEnvelopeExists].
//   - Retryable driver errors → [ErrStorageUnavailable].
//   - Anything else → [ErrExecutingStatement].
func (r *relayRepository) SaveEnvelope(ctx context.Context, envelope models.Envelope) (models.Envelope, error) {
	log := logger.FromContext(ctx)

	receivedAt := r.clock().UTC()
	if envelope.ReceivedAt != nil {
		receivedAt = *envelope.ReceivedAt
	}

	row := r.QueryRowContext(ctx, insertEnvelope,
		envelope.ID,
		envelope.AccountACI,
		envelope.SourceDevice,
		int64(envelope.Timestamp),
		envelope.Content,
		receivedAt,
	)

	var storedAt time.Time
	if err := row.Scan(&envelope.Seq, &storedAt); err != nil {
		log.Err(err).
			Str("func", "*relayRepository.SaveEnvelope").
			Str("envelope_id", envelope.ID).
			Msg("failed to save envelope")

		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Envelope{}, ErrEnvelopeExists
		}
		return models.Envelope{}, r.classify(err, ErrExecutingStatement)
	}
	envelope.ReceivedAt = &storedAt

	return envelope, nil
}

// PendingEnvelopes returns up to limit envelopes for deviceID in sequence
// order.
func (r *relayRepository) PendingEnvelopes(ctx context.Context, aci string, deviceID uint32, limit int) ([]models.Envelope, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildPendingEnvelopesQuery(aci, deviceID, limit)
	if err != nil {
		log.Err(err).Str("func", "*relayRepository.PendingEnvelopes").Msg("failed to create query")
		return nil, err
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*relayRepository.PendingEnvelopes").
			Str("aci", aci).
			Uint32("device_id", deviceID).
			Msg("failed to execute query for pending envelopes")
		return nil, r.classify(err, ErrExecutingQuery)
	}
	defer rows.Close()

	envelopes := make([]models.Envelope, 0, max(limit, 0))
	for rows.Next() {
		var (
			envelope   models.Envelope
			timestamp  int64
			receivedAt time.Time
		)

		if err := rows.Scan(
			&envelope.Seq,
			&envelope.ID,
			&envelope.AccountACI,
			&envelope.SourceDevice,
			&timestamp,
			&envelope.Content,
			&receivedAt,
		); err != nil {
			log.Err(err).Str("func", "*relayRepository.PendingEnvelopes").Msg("failed to scan envelope row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		envelope.Timestamp = uint64(timestamp)
		envelope.ReceivedAt = &receivedAt

		envelopes = append(envelopes, envelope)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*relayRepository.PendingEnvelopes").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return envelopes, nil
}

// Acknowledge moves the device cursor forward.
func (r *relayRepository) Acknowledge(ctx context.Context, aci string, deviceID uint32, upToSeq int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.ExecContext(ctx, acknowledgeDevice, aci, deviceID, upToSeq); err != nil {
		log.Err(err).
			Str("func", "*relayRepository.Acknowledge").
			Str("aci", aci).
			Uint32("device_id", deviceID).
			Int64("seq", upToSeq).
			Msg("failed to move device cursor")
		return r.classify(err, ErrExecutingStatement)
	}

	return nil
}

// TouchDevice records that the device talked to the relay.
func (r *relayRepository) TouchDevice(ctx context.Context, aci string, deviceID uint32) error {
	log := logger.FromContext(ctx)

	if _, err := r.ExecContext(ctx, touchDevice, aci, deviceID); err != nil {
		log.Err(err).
			Str("func", "*relayRepository.TouchDevice").
			Str("aci", aci).
			Uint32("device_id", deviceID).
			Msg("failed to touch device")
		return r.classify(err, ErrExecutingStatement)
	}

	return nil
}
