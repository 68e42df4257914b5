package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the layout of the JSON config file.
type StructuredJSONConfig struct {
	Editor struct {
		SpacetimeURL         string    `json:"spacetime_url"`
		SpacetimeName        string    `json:"spacetime_name"`
		AssetPath            string    `json:"asset_path"`
		SnapshotPath         string    `json:"snapshot_path"`
		SnapshotDebounce     *Duration `json:"snapshot_debounce"`
		SnapshotKeepBackup   bool      `json:"snapshot_keep_backup"`
		PendingTimeout       *Duration `json:"pending_timeout"`
		PendingSweepInterval *Duration `json:"pending_sweep_interval"`
		JournalDSN           string    `json:"journal_dsn"`
		IdentityKey          string    `json:"identity_key"`
		MetricsAddress       string    `json:"metrics_address"`
		LogFile              string    `json:"log_file"`
		RemoteMode           string    `json:"remote_mode"`
		RequestTimeout       *Duration `json:"request_timeout"`
	} `json:"editor,omitempty"`

	Gateway struct {
		Address         string    `json:"address"`
		RequestTimeout  *Duration `json:"request_timeout"`
		LongPollTimeout *Duration `json:"long_poll_timeout"`
		DevRoutes       bool      `json:"dev_routes"`
	} `json:"gateway,omitempty"`
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

	e, g := jsonCfg.Editor, jsonCfg.Gateway
	return &StructuredConfig{
		Editor: Editor{
			SpacetimeURL:         e.SpacetimeURL,
			SpacetimeName:        e.SpacetimeName,
			AssetPath:            e.AssetPath,
			SnapshotPath:         e.SnapshotPath,
			SnapshotDebounce:     durationOrZero(e.SnapshotDebounce),
			SnapshotKeepBackup:   e.SnapshotKeepBackup,
			PendingTimeout:       durationOrZero(e.PendingTimeout),
			PendingSweepInterval: durationOrZero(e.PendingSweepInterval),
			JournalDSN:           e.JournalDSN,
			IdentityKey:          e.IdentityKey,
			MetricsAddress:       e.MetricsAddress,
			LogFile:              e.LogFile,
			RemoteMode:           e.RemoteMode,
			RequestTimeout:       durationOrZero(e.RequestTimeout),
		},
		Gateway: Gateway{
			Address:         g.Address,
			RequestTimeout:  durationOrZero(g.RequestTimeout),
			LongPollTimeout: durationOrZero(g.LongPollTimeout),
			DevRoutes:       g.DevRoutes,
		},
	}, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as from nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
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
		return fmt.Errorf("invalid duration %s", b)
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
