// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks the merged [StructuredConfig]. Role-specific rules live
// on the device and relay views.
func (cfg *StructuredConfig) validate() error {
	if cfg.Workers.DeliveryBatchSize < 0 || cfg.Workers.MaxDeliveryAttempts < 0 || cfg.Workers.PullLimit < 0 {
		return ErrInvalidWorkerConfigs
	}
	if cfg.Fetch.MinInterval < 0 {
		return ErrInvalidFetchConfigs
	}

	return nil
}

func (cfg *DeviceConfig) validate() error {
	if cfg.Account.ACI == "" || cfg.Account.DeviceID == 0 {
		return ErrInvalidAccountConfigs
	}

	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.DeliveryInterval <= 0 || cfg.Workers.InboxInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}

func (cfg *RelayConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
