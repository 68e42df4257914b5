package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        NetAddress
		expectError bool
	}{
		{name: "localhost", input: "localhost:8080", want: NetAddress{Host: "localhost", Port: 8080}},
		{name: "ipv4", input: "127.0.0.1:9100", want: NetAddress{Host: "127.0.0.1", Port: 9100}},
		{name: "any host", input: ":3000", want: NetAddress{Port: 3000}},
		{name: "missing port", input: "localhost", expectError: true},
		{name: "non numeric port", input: "localhost:http", expectError: true},
		{name: "port out of range", input: "localhost:70000", expectError: true},
		{name: "hostname", input: "example.com:80", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a)
		})
	}
}

func TestNetAddress_String(t *testing.T) {
	assert.Equal(t, "", (&NetAddress{}).String())
	assert.Equal(t, "localhost:8080", (&NetAddress{Host: "localhost", Port: 8080}).String())
	assert.Equal(t, ":8080", (&NetAddress{Port: 8080}).String())
}

func TestParseFlags(t *testing.T) {
	cfg, err := ParseFlags([]string{
		"-u", "http://10.1.1.1:3000",
		"-n", "levels",
		"-assets", "art",
		"-s", "snap.json",
		"-debounce", "100ms",
		"-backup",
		"-pending-timeout", "3s",
		"-sweep-interval", "500ms",
		"-d", "journal.db",
		"-identity-key", "k",
		"-metrics-address", "127.0.0.1:9100",
		"-log-file", "x.log",
		"-remote", "memory",
		"-request-timeout", "2s",
		"-a", "127.0.0.1:4000",
		"-long-poll", "10s",
		"-config", "cfg.json",
	})
	require.NoError(t, err)

	e := cfg.Editor
	assert.Equal(t, "http://10.1.1.1:3000", e.SpacetimeURL)
	assert.Equal(t, "levels", e.SpacetimeName)
	assert.Equal(t, "art", e.AssetPath)
	assert.Equal(t, "snap.json", e.SnapshotPath)
	assert.Equal(t, 100*time.Millisecond, e.SnapshotDebounce)
	assert.True(t, e.SnapshotKeepBackup)
	assert.Equal(t, 3*time.Second, e.PendingTimeout)
	assert.Equal(t, 500*time.Millisecond, e.PendingSweepInterval)
	assert.Equal(t, "journal.db", e.JournalDSN)
	assert.Equal(t, "k", e.IdentityKey)
	assert.Equal(t, "127.0.0.1:9100", e.MetricsAddress)
	assert.Equal(t, "x.log", e.LogFile)
	assert.Equal(t, RemoteModeMemory, e.RemoteMode)
	assert.Equal(t, 2*time.Second, e.RequestTimeout)
	assert.Equal(t, "127.0.0.1:4000", cfg.Gateway.Address)
	assert.Equal(t, 2*time.Second, cfg.Gateway.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.Gateway.LongPollTimeout)
	assert.Equal(t, "cfg.json", cfg.JSONFilePath)
}

func TestParseFlags_Empty(t *testing.T) {
	cfg, err := ParseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_Invalid(t *testing.T) {
	_, err := ParseFlags([]string{"-metrics-address", "nope"})
	assert.Error(t, err)

	_, err = ParseFlags([]string{"-unknown"})
	assert.Error(t, err)
}
