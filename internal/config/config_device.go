package config

import (
	"fmt"
	"time"
)

// Defaults applied to the device view when a value is left unset.
const (
	defaultDeliveryInterval    = 5 * time.Second
	defaultInboxInterval       = 10 * time.Second
	defaultDeliveryBatchSize   = 50
	defaultMaxDeliveryAttempts = 10
	defaultPullLimit           = 100
	defaultRequestTimeout      = 15 * time.Second
	defaultTokenDuration       = time.Hour
	defaultTokenIssuer         = "go-link-sync"
)

// DeviceConfig is the configuration of the linked-device daemon assembled
// from [StructuredConfig].
type DeviceConfig struct {
	// App contains token settings and the log level.
	App App
	// Account is the bootstrap identity of this device.
	Account Account
	// Storage holds the SQLite file of the account snapshot store.
	Storage Storage
	// Server holds the local control API address. Empty disables it.
	Server Server
	// Adapter holds the relay endpoint.
	Adapter Adapter
	// Workers holds the delivery and inbox loop settings.
	Workers Workers
	// Fetch holds the fetch-latest request policy.
	Fetch Fetch
}

// GetDeviceConfig builds and validates the device view of the merged
// structured configuration.
func GetDeviceConfig() (*DeviceConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	deviceCfg := newDeviceConfig(cfg)
	return deviceCfg, deviceCfg.validate()
}

func newDeviceConfig(cfg *StructuredConfig) *DeviceConfig {
	deviceCfg := &DeviceConfig{
		App:     cfg.App,
		Account: cfg.Account,
		Storage: cfg.Storage,
		Server:  cfg.Server,
		Adapter: cfg.Adapter,
		Workers: cfg.Workers,
		Fetch:   cfg.Fetch,
	}

	if deviceCfg.App.TokenIssuer == "" {
		deviceCfg.App.TokenIssuer = defaultTokenIssuer
	}
	if deviceCfg.App.TokenDuration == 0 {
		deviceCfg.App.TokenDuration = defaultTokenDuration
	}
	if deviceCfg.Adapter.RequestTimeout == 0 {
		deviceCfg.Adapter.RequestTimeout = defaultRequestTimeout
	}
	if deviceCfg.Workers.DeliveryInterval == 0 {
		deviceCfg.Workers.DeliveryInterval = defaultDeliveryInterval
	}
	if deviceCfg.Workers.InboxInterval == 0 {
		deviceCfg.Workers.InboxInterval = defaultInboxInterval
	}
	if deviceCfg.Workers.DeliveryBatchSize == 0 {
		deviceCfg.Workers.DeliveryBatchSize = defaultDeliveryBatchSize
	}
	if deviceCfg.Workers.MaxDeliveryAttempts == 0 {
		deviceCfg.Workers.MaxDeliveryAttempts = defaultMaxDeliveryAttempts
	}
	if deviceCfg.Workers.PullLimit == 0 {
		deviceCfg.Workers.PullLimit = defaultPullLimit
	}

	return deviceCfg
}
