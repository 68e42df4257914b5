// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
)

// validate checks the merged [StructuredConfig] for values no view can work
// with. View-specific rules live on the views.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Editor.RemoteMode {
	case "", RemoteModeHTTP, RemoteModeMemory:
	default:
		return fmt.Errorf("%w: unknown remote mode %q", ErrInvalidAdapterConfigs, cfg.Editor.RemoteMode)
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty journal DSN", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.Snapshot.Path == "" || cfg.Storage.Snapshot.Debounce <= 0 {
		return fmt.Errorf("%w: snapshot path and debounce are required", ErrInvalidStorageConfigs)
	}

	switch cfg.Adapter.Mode {
	case RemoteModeMemory:
	case RemoteModeHTTP:
		u, err := url.Parse(cfg.Adapter.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: invalid remote URL %q", ErrInvalidAdapterConfigs, cfg.Adapter.URL)
		}
	default:
		return fmt.Errorf("%w: unknown remote mode %q", ErrInvalidAdapterConfigs, cfg.Adapter.Mode)
	}
	if cfg.Adapter.Module == "" || cfg.Adapter.RequestTimeout <= 0 {
		return fmt.Errorf("%w: module name and request timeout are required", ErrInvalidAdapterConfigs)
	}

	if cfg.Workers.PendingTimeout <= 0 || cfg.Workers.SweepInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.AssetRoot == "" {
		return fmt.Errorf("%w: empty asset root", ErrInvalidAppConfigs)
	}

	return nil
}

func (cfg *GatewayConfig) validate() error {
	if cfg.Address == "" {
		return fmt.Errorf("%w: empty listen address", ErrInvalidServerConfigs)
	}
	if cfg.Module == "" {
		return fmt.Errorf("%w: empty module name", ErrInvalidServerConfigs)
	}
	if cfg.RequestTimeout <= 0 || cfg.LongPollTimeout <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidServerConfigs)
	}
	return nil
}
