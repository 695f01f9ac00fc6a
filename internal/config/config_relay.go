package config

import "fmt"

// RelayConfig is the configuration of the relay server assembled from
// [StructuredConfig].
type RelayConfig struct {
	// App contains token settings, version and the log level.
	App App
	// Storage holds the PostgreSQL DSN.
	Storage Storage
	// Server holds the HTTP and gRPC listen addresses.
	Server Server
}

// GetRelayConfig builds and validates the relay view of the merged
// structured configuration.
func GetRelayConfig() (*RelayConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	relayCfg := newRelayConfig(cfg)
	return relayCfg, relayCfg.validate()
}

func newRelayConfig(cfg *StructuredConfig) *RelayConfig {
	relayCfg := &RelayConfig{
		App:     cfg.App,
		Storage: cfg.Storage,
		Server:  cfg.Server,
	}

	if relayCfg.App.TokenIssuer == "" {
		relayCfg.App.TokenIssuer = defaultTokenIssuer
	}
	if relayCfg.Server.RequestTimeout == 0 {
		relayCfg.Server.RequestTimeout = defaultRequestTimeout
	}

	return relayCfg
}
