package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// device store (sqlite)
const (
	selectLocalAccount = `SELECT aci, e164, device_id, device_name, registration_state, registered_at FROM account WHERE id = 1`

	selectLocalThread = `SELECT t.thread_id, t.recipient_aci FROM threads t JOIN account a ON a.aci = t.recipient_aci WHERE a.id = 1`

	upsertLocalAccount = `INSERT INTO account (id, aci, e164, device_id, device_name, registration_state, registered_at)
VALUES (1, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    aci = excluded.aci,
    e164 = excluded.e164,
    device_id = excluded.device_id,
    device_name = excluded.device_name,
    registration_state = excluded.registration_state,
    registered_at = excluded.registered_at`

	insertThreadIfMissing = `INSERT INTO threads (thread_id, recipient_aci) VALUES (?, ?) ON CONFLICT (recipient_aci) DO NOTHING`

	selectThreadByRecipient = `SELECT thread_id, recipient_aci FROM threads WHERE recipient_aci = ?`

	insertOutboxEntry = `INSERT INTO outbox (id, thread_id, fetch_type, timestamp, content, attempts, last_error, created_at) VALUES (?, ?, ?, ?, ?, 0, '', ?)`

	markOutboxEntrySent = `UPDATE outbox SET sent_at = ?, last_error = '' WHERE id = ? AND sent_at IS NULL`

	markOutboxEntryFailed = `UPDATE outbox SET attempts = attempts + 1, last_error = ? WHERE id = ?`
)

// relay store (postgres)
const (
	insertEnvelope = `INSERT INTO envelopes (id, account_aci, source_device, timestamp, content, received_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING seq, received_at`

	acknowledgeDevice = `INSERT INTO devices (account_aci, device_id, cursor, last_seen_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (account_aci, device_id) DO UPDATE SET
    cursor = GREATEST(devices.cursor, excluded.cursor),
    last_seen_at = now()`

	touchDevice = `INSERT INTO devices (account_aci, device_id, last_seen_at)
VALUES ($1, $2, now())
ON CONFLICT (account_aci, device_id) DO UPDATE SET last_seen_at = now()`
)

var outboxColumns = []string{
	"id", "thread_id", "fetch_type", "timestamp", "content",
	"attempts", "last_error", "created_at", "sent_at",
}

var envelopeColumns = []string{
	"e.seq", "e.id", "e.account_aci", "e.source_device",
	"e.timestamp", "e.content", "e.received_at",
}

// buildPendingOutboxQuery selects unsent outbox entries in insertion order.
func buildPendingOutboxQuery(limit, maxAttempts int) (string, []any, error) {
	builder := sq.Select(outboxColumns...).
		From("outbox").
		Where(sq.Eq{"sent_at": nil}).
		OrderBy("rowid")

	if maxAttempts > 0 {
		builder = builder.Where(sq.Lt{"attempts": maxAttempts})
	}
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildPendingEnvelopesQuery selects the envelopes of an account the device
// has neither sent nor acknowledged, in relay order.
func buildPendingEnvelopesQuery(aci string, deviceID uint32, limit int) (string, []any, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(envelopeColumns...).
		From("envelopes e").
		Where(sq.Eq{"e.account_aci": aci}).
		Where(sq.NotEq{"e.source_device": deviceID}).
		Where(sq.Expr("e.seq > COALESCE((SELECT d.cursor FROM devices d WHERE d.account_aci = ? AND d.device_id = ?), 0)", aci, deviceID)).
		OrderBy("e.seq")

	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
