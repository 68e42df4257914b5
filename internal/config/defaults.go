package config

import "time"

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Editor: Editor{
			SpacetimeURL:         "http://127.0.0.1:3000",
			SpacetimeName:        "default",
			AssetPath:            "assets",
			SnapshotPath:         "world_snapshot.json",
			SnapshotDebounce:     250 * time.Millisecond,
			PendingTimeout:       10 * time.Second,
			PendingSweepInterval: time.Second,
			JournalDSN:           "worldsync.db",
			LogFile:              "worldsync.log",
			RemoteMode:           RemoteModeHTTP,
			RequestTimeout:       5 * time.Second,
		},
		Gateway: Gateway{
			Address:         "127.0.0.1:3000",
			RequestTimeout:  5 * time.Second,
			LongPollTimeout: 25 * time.Second,
		},
	}
}
