package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags. Durations
// are accepted as strings ("30s") or integer nanoseconds.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		Version       string   `json:"version"`
		LogLevel      string   `json:"log_level"`
	} `json:"app,omitempty"`

	Account struct {
		ACI        string `json:"aci"`
		E164       string `json:"e164"`
		DeviceID   uint32 `json:"device_id"`
		DeviceName string `json:"device_name"`
	} `json:"account,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		DeliveryInterval    Duration `json:"delivery_interval"`
		InboxInterval       Duration `json:"inbox_interval"`
		DeliveryBatchSize   int      `json:"delivery_batch_size"`
		MaxDeliveryAttempts int      `json:"max_delivery_attempts"`
		PullLimit           int      `json:"pull_limit"`
	} `json:"workers,omitempty"`

	Fetch struct {
		MinInterval Duration `json:"min_interval"`
		OnStartup   bool     `json:"on_startup"`
	} `json:"fetch,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			Version:       jsonCfg.App.Version,
			LogLevel:      jsonCfg.App.LogLevel,
		},
		Account: Account{
			ACI:        jsonCfg.Account.ACI,
			E164:       jsonCfg.Account.E164,
			DeviceID:   jsonCfg.Account.DeviceID,
			DeviceName: jsonCfg.Account.DeviceName,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Workers: Workers{
			DeliveryInterval:    time.Duration(jsonCfg.Workers.DeliveryInterval),
			InboxInterval:       time.Duration(jsonCfg.Workers.InboxInterval),
			DeliveryBatchSize:   jsonCfg.Workers.DeliveryBatchSize,
			MaxDeliveryAttempts: jsonCfg.Workers.MaxDeliveryAttempts,
			PullLimit:           jsonCfg.Workers.PullLimit,
		},
		Fetch: Fetch{
			MinInterval: time.Duration(jsonCfg.Fetch.MinInterval),
			OnStartup:   jsonCfg.Fetch.OnStartup,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
