// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container. It is populated
// by merging defaults, environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Editor holds every setting of the sync client.
	Editor Editor `envPrefix:"EDITOR_"`

	// Gateway holds the settings of the development remote store.
	Gateway Gateway `envPrefix:"GATEWAY_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Editor holds the client-side settings. Variable names keep the EDITOR_
// prefix used by the editor tooling.
type Editor struct {
	// SpacetimeURL is the base URL of the remote store.
	// Env: EDITOR_SPACETIME_URL
	SpacetimeURL string `env:"SPACETIME_URL"`

	// SpacetimeName is the name of the remote database module.
	// Env: EDITOR_SPACETIME_NAME
	SpacetimeName string `env:"SPACETIME_NAME"`

	// AssetPath is the root directory asset paths are relative to.
	// Env: EDITOR_ASSET_PATH
	AssetPath string `env:"ASSET_PATH"`

	// SnapshotPath is the location of the recovery snapshot file.
	// Env: EDITOR_SNAPSHOT_PATH
	SnapshotPath string `env:"SNAPSHOT_PATH"`

	// SnapshotDebounce is the quiet window that coalesces snapshot writes.
	// Env: EDITOR_SNAPSHOT_DEBOUNCE
	SnapshotDebounce time.Duration `env:"SNAPSHOT_DEBOUNCE"`

	// SnapshotKeepBackup keeps the previous snapshot as <path>.bak.
	// Env: EDITOR_SNAPSHOT_KEEP_BACKUP
	SnapshotKeepBackup bool `env:"SNAPSHOT_KEEP_BACKUP"`

	// PendingTimeout is how long a mutation may wait for its commit event.
	// Env: EDITOR_PENDING_TIMEOUT
	PendingTimeout time.Duration `env:"PENDING_TIMEOUT"`

	// PendingSweepInterval is how often timed-out mutations are collected.
	// Env: EDITOR_PENDING_SWEEP_INTERVAL
	PendingSweepInterval time.Duration `env:"PENDING_SWEEP_INTERVAL"`

	// JournalDSN is the SQLite DSN of the resolution journal.
	// Env: EDITOR_JOURNAL_DSN
	JournalDSN string `env:"JOURNAL_DSN"`

	// IdentityKey signs the editor identity token sent to the remote store.
	// Env: EDITOR_IDENTITY_KEY
	IdentityKey string `env:"IDENTITY_KEY"`

	// MetricsAddress, when set, serves /metrics and /sync/state.
	// Env: EDITOR_METRICS_ADDRESS
	MetricsAddress string `env:"METRICS_ADDRESS"`

	// LogFile is where the client writes its JSON log.
	// Env: EDITOR_LOG_FILE
	LogFile string `env:"LOG_FILE"`

	// RemoteMode selects the remote store adapter: "http" or "memory".
	// Env: EDITOR_REMOTE_MODE
	RemoteMode string `env:"REMOTE_MODE"`

	// RequestTimeout bounds a single mutation request.
	// Env: EDITOR_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Gateway holds the settings of the development remote store server.
type Gateway struct {
	// Address is the TCP address the gateway listens on, "host:port".
	// Env: GATEWAY_ADDRESS
	Address string `env:"ADDRESS"`

	// RequestTimeout bounds a single reducer call.
	// Env: GATEWAY_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// LongPollTimeout is how long an events request waits for new events.
	// Env: GATEWAY_LONG_POLL_TIMEOUT
	LongPollTimeout time.Duration `env:"LONG_POLL_TIMEOUT"`

	// DevRoutes enables the wipe route used to simulate remote data loss.
	// Env: GATEWAY_DEV_ROUTES
	DevRoutes bool `env:"DEV_ROUTES"`
}

// Remote adapter modes.
const (
	RemoteModeHTTP   = "http"
	RemoteModeMemory = "memory"
)

// GetStructuredConfig loads, merges, and validates the configuration from
// all sources using the process arguments.
func GetStructuredConfig() (*StructuredConfig, error) {
	return loadStructuredConfig(os.Args[1:])
}

func loadStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
