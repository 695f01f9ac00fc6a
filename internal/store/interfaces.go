package store

import (
	"context"

	"github.com/MKhiriev/go-link-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// Snapshot is a read-only view of the device store pinned to one moment.
// It satisfies syncmsg.Snapshot.
type Snapshot interface {
	// Timestamp is the moment the snapshot was opened, in unix milliseconds.
	Timestamp() uint64
	// LocalAccount returns the account this device belongs to.
	LocalAccount(ctx context.Context) (models.AccountState, error)
	// LocalThread returns the note-to-self thread of the local account.
	LocalThread(ctx context.Context) (models.ThreadReference, error)
}

// SnapshotReader runs fn inside a read-only snapshot. The snapshot is
// released when fn returns and must not be retained.
type SnapshotReader interface {
	Read(ctx context.Context, fn func(tx Snapshot) error) error
}

// AccountRepository persists the local account of the device.
type AccountRepository interface {
	// SaveLocalAccount upserts the account and makes sure its note-to-self
	// thread exists.
	SaveLocalAccount(ctx context.Context, account models.AccountState) (models.ThreadReference, error)
}

// OutboxRepository stores encoded sync messages until the relay accepts
// them.
type OutboxRepository interface {
	Enqueue(ctx context.Context, entry models.OutboxEntry) (models.OutboxEntry, error)
	// Pending returns unsent entries in insertion order. Entries that already
	// failed maxAttempts times are skipped; maxAttempts <= 0 disables the
	// filter.
	Pending(ctx context.Context, limit, maxAttempts int) ([]models.OutboxEntry, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

// RelayRepository is the PostgreSQL-backed envelope store of the relay.
type RelayRepository interface {
	SaveEnvelope(ctx context.Context, envelope models.Envelope) (models.Envelope, error)
	// PendingEnvelopes returns envelopes of the account that deviceID has not
	// acknowledged yet, excluding the ones it sent itself.
	PendingEnvelopes(ctx context.Context, aci string, deviceID uint32, limit int) ([]models.Envelope, error)
	// Acknowledge moves the device cursor forward to upToSeq. A lower value
	// leaves the cursor untouched.
	Acknowledge(ctx context.Context, aci string, deviceID uint32, upToSeq int64) error
	TouchDevice(ctx context.Context, aci string, deviceID uint32) error
}
