package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-link-sync/internal/config"
	"github.com/MKhiriev/go-link-sync/internal/logger"
	"github.com/MKhiriev/go-link-sync/migrations"
)

// DeviceStorages groups the SQLite-backed repositories of the device daemon.
type DeviceStorages struct {
	// Snapshots opens read-only views used to build sync messages.
	Snapshots SnapshotReader
	// AccountRepository persists the local account and its thread.
	AccountRepository AccountRepository
	// OutboxRepository queues encoded sync messages for delivery.
	OutboxRepository OutboxRepository

	db *DB
}

// NewDeviceStorages initialises the device storage layer. It performs the
// following steps:
//  1. Opens an SQLite connection to cfg.DB.DSN, creating the file if needed.
//  2. Runs pending device schema migrations.
//  3. Wires the repositories to the connection.
func NewDeviceStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*DeviceStorages, error) {
	log.Info().Msg("creating device storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := migrations.MigrateDevice(db.DB); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newDeviceStorages(db, log), nil
}

func newDeviceStorages(db *DB, log *logger.Logger) *DeviceStorages {
	return &DeviceStorages{
		Snapshots:         db,
		AccountRepository: NewAccountRepository(db, log),
		OutboxRepository:  NewOutboxRepository(db, log),
		db:                db,
	}
}

// Close releases the database connection.
func (s *DeviceStorages) Close() error {
	return s.db.Close()
}

// RelayStorages groups the PostgreSQL-backed repositories of the relay.
type RelayStorages struct {
	// RelayRepository stores envelopes and device cursors.
	RelayRepository RelayRepository

	db *DB
}

// NewRelayStorages connects to PostgreSQL, applies the relay migrations and
// wires the repositories.
func NewRelayStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*RelayStorages, error) {
	log.Info().Msg("creating relay storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := migrations.MigrateRelay(db.DB); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &RelayStorages{
		RelayRepository: NewRelayRepository(db, log),
		db:              db,
	}, nil
}

// Close releases the database connection.
func (s *RelayStorages) Close() error {
	return s.db.Close()
}
