// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// device daemon and the relay. It is populated by merging values from
// environment variables, command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters, log level and the application version.
	App App `envPrefix:"APP_"`

	// Account holds the bootstrap identity of the local device. Only the
	// device daemon reads it.
	Account Account `envPrefix:"ACCOUNT_"`

	// Storage holds the database settings. The device uses an SQLite file,
	// the relay a PostgreSQL DSN.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the inbound transport addresses and timeouts.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the relay endpoint the device talks to.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds the background loop settings of the device.
	Workers Workers `envPrefix:"WORKERS_"`

	// Fetch holds the fetch-latest request policy of the device.
	Fetch Fetch `envPrefix:"FETCH_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the shared secret used to sign and verify device JWTs.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of every device token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is how long a device token stays valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is the semantic version exposed via /api/version/.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Account is the identity the device registers its snapshot store with.
type Account struct {
	// ACI is the account identifier shared by all linked devices.
	// Env: ACCOUNT_ACI
	ACI string `env:"ACI"`

	// E164 is the account phone number.
	// Env: ACCOUNT_E164
	E164 string `env:"E164"`

	// DeviceID identifies this device within the account.
	// Env: ACCOUNT_DEVICE_ID
	DeviceID uint32 `env:"DEVICE_ID"`

	// DeviceName is the user-visible device name.
	// Env: ACCOUNT_DEVICE_NAME
	DeviceName string `env:"DEVICE_NAME"`
}

// Storage groups the storage backend settings.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the database backend.
type DB struct {
	// DSN is the SQLite file path (device) or the PostgreSQL connection
	// string (relay).
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the "host:port" the HTTP server listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the "host:port" the gRPC server listens on. Relay only.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the settings of the outbound relay client.
type Adapter struct {
	// HTTPAddress is the relay base URL or "host:port".
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for the device background loops.
type Workers struct {
	// DeliveryInterval is how often the outbox is flushed to the relay.
	// Env: WORKERS_DELIVERY_INTERVAL
	DeliveryInterval time.Duration `env:"DELIVERY_INTERVAL"`

	// InboxInterval is how often the relay is polled for new envelopes.
	// Env: WORKERS_INBOX_INTERVAL
	InboxInterval time.Duration `env:"INBOX_INTERVAL"`

	// DeliveryBatchSize is the maximum number of outbox entries sent per tick.
	// Env: WORKERS_DELIVERY_BATCH_SIZE
	DeliveryBatchSize int `env:"DELIVERY_BATCH_SIZE"`

	// MaxDeliveryAttempts is how many times an outbox entry is tried before
	// it is left for manual inspection.
	// Env: WORKERS_MAX_DELIVERY_ATTEMPTS
	MaxDeliveryAttempts int `env:"MAX_DELIVERY_ATTEMPTS"`

	// PullLimit is the maximum number of envelopes pulled per tick.
	// Env: WORKERS_PULL_LIMIT
	PullLimit int `env:"PULL_LIMIT"`
}

// Fetch holds the fetch-latest request policy.
type Fetch struct {
	// MinInterval is the minimum time between two requests of the same
	// fetch type. Zero disables throttling.
	// Env: FETCH_MIN_INTERVAL
	MinInterval time.Duration `env:"MIN_INTERVAL"`

	// OnStartup requests every fetch type once when the daemon starts.
	// Env: FETCH_ON_STARTUP
	OnStartup bool `env:"ON_STARTUP"`
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources in the following priority order (last source wins
// for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
