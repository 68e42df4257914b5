package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// AssetRoot is the directory asset paths are relative to.
	AssetRoot string
	// MetricsAddress enables the metrics and status listener when non-empty.
	MetricsAddress string
	// LogFile is the path of the client log.
	LogFile string
}

// ClientAdapter holds the remote store connection settings.
type ClientAdapter struct {
	// Mode is RemoteModeHTTP or RemoteModeMemory.
	Mode string
	// URL is the base URL of the remote store.
	URL string
	// Module is the remote database module name.
	Module string
	// IdentityKey signs the editor identity token.
	IdentityKey string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
}

// ClientDB contains the resolution journal database settings.
type ClientDB struct {
	// DSN is the SQLite connection string.
	DSN string
}

// ClientSnapshot contains the snapshot file settings.
type ClientSnapshot struct {
	Path       string
	Debounce   time.Duration
	KeepBackup bool
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB       ClientDB
	Snapshot ClientSnapshot
}

// ClientWorkers contains client background job settings.
type ClientWorkers struct {
	// PendingTimeout is how long a mutation may wait for its commit event.
	PendingTimeout time.Duration
	// SweepInterval defines how often timed-out mutations are collected.
	SweepInterval time.Duration
}

// ClientConfig is the sync client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
}

// GatewayConfig is the development gateway configuration.
type GatewayConfig struct {
	Address         string
	Module          string
	IdentityKey     string
	RequestTimeout  time.Duration
	LongPollTimeout time.Duration
	DevRoutes       bool
}

// GetClientConfig builds and validates the client view of the merged
// configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := cfg.Client()
	return clientCfg, clientCfg.validate()
}

// GetGatewayConfig builds and validates the gateway view of the merged
// configuration.
func GetGatewayConfig() (*GatewayConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	gatewayCfg := cfg.GatewayView()
	return gatewayCfg, gatewayCfg.validate()
}

// Client maps the fields relevant to the sync client.
func (cfg *StructuredConfig) Client() *ClientConfig {
	e := cfg.Editor
	return &ClientConfig{
		App: ClientApp{
			AssetRoot:      e.AssetPath,
			MetricsAddress: e.MetricsAddress,
			LogFile:        e.LogFile,
		},
		Adapter: ClientAdapter{
			Mode:           e.RemoteMode,
			URL:            e.SpacetimeURL,
			Module:         e.SpacetimeName,
			IdentityKey:    e.IdentityKey,
			RequestTimeout: e.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: e.JournalDSN},
			Snapshot: ClientSnapshot{
				Path:       e.SnapshotPath,
				Debounce:   e.SnapshotDebounce,
				KeepBackup: e.SnapshotKeepBackup,
			},
		},
		Workers: ClientWorkers{
			PendingTimeout: e.PendingTimeout,
			SweepInterval:  e.PendingSweepInterval,
		},
	}
}

// GatewayView maps the fields relevant to the development gateway. The
// gateway serves the module named by the editor settings and verifies tokens
// signed with the same identity key.
func (cfg *StructuredConfig) GatewayView() *GatewayConfig {
	return &GatewayConfig{
		Address:         cfg.Gateway.Address,
		Module:          cfg.Editor.SpacetimeName,
		IdentityKey:     cfg.Editor.IdentityKey,
		RequestTimeout:  cfg.Gateway.RequestTimeout,
		LongPollTimeout: cfg.Gateway.LongPollTimeout,
		DevRoutes:       cfg.Gateway.DevRoutes,
	}
}
