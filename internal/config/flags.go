package config

import (
	"errors"
	"flag"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses configuration flags from args.
//
// Flags:
//
//	-u remote store URL
//	-n remote database module name
//	-assets asset root directory
//	-s snapshot file path
//	-debounce snapshot quiet window (e.g., "250ms")
//	-backup keep the previous snapshot as <path>.bak
//	-pending-timeout pending mutation timeout (e.g., "10s")
//	-sweep-interval pending timeout sweep interval (e.g., "1s")
//	-d journal database DSN
//	-identity-key identity token signing key
//	-metrics-address metrics and status listener address in format [host]:[port]
//	-log-file log file path
//	-remote remote adapter mode: http or memory
//	-request-timeout request timeout (e.g., "5s")
//	-a gateway listen address in format [host]:[port]
//	-long-poll gateway long-poll timeout (e.g., "25s")
//	-c/-config json file path with configs
func ParseFlags(args []string) (*StructuredConfig, error) {
	var (
		cfg            StructuredConfig
		metricsAddress NetAddress
		gatewayAddress NetAddress
	)

	fs := flag.NewFlagSet("worldsync", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Editor.SpacetimeURL, "u", "", "Remote store URL")
	fs.StringVar(&cfg.Editor.SpacetimeName, "n", "", "Remote database module name")
	fs.StringVar(&cfg.Editor.AssetPath, "assets", "", "Asset root directory")
	fs.StringVar(&cfg.Editor.SnapshotPath, "s", "", "Snapshot file path")
	fs.DurationVar(&cfg.Editor.SnapshotDebounce, "debounce", 0, "Snapshot quiet window (e.g., 250ms)")
	fs.BoolVar(&cfg.Editor.SnapshotKeepBackup, "backup", false, "Keep the previous snapshot as a backup")
	fs.DurationVar(&cfg.Editor.PendingTimeout, "pending-timeout", 0, "Pending mutation timeout (e.g., 10s)")
	fs.DurationVar(&cfg.Editor.PendingSweepInterval, "sweep-interval", 0, "Pending timeout sweep interval (e.g., 1s)")
	fs.StringVar(&cfg.Editor.JournalDSN, "d", "", "Journal database DSN")
	fs.StringVar(&cfg.Editor.IdentityKey, "identity-key", "", "Identity token signing key")
	fs.Var(&metricsAddress, "metrics-address", "Metrics listener address host:port")
	fs.StringVar(&cfg.Editor.LogFile, "log-file", "", "Log file path")
	fs.StringVar(&cfg.Editor.RemoteMode, "remote", "", "Remote adapter mode: http or memory")
	fs.DurationVar(&cfg.Editor.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 5s)")
	fs.Var(&gatewayAddress, "a", "Gateway listen address host:port")
	fs.DurationVar(&cfg.Gateway.LongPollTimeout, "long-poll", 0, "Gateway long-poll timeout (e.g., 25s)")
	fs.BoolVar(&cfg.Gateway.DevRoutes, "dev-routes", false, "Expose the gateway wipe route")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Editor.MetricsAddress = metricsAddress.String()
	cfg.Gateway.Address = gatewayAddress.String()
	cfg.Gateway.RequestTimeout = cfg.Editor.RequestTimeout

	return &cfg, nil
}

// String returns a canonical host:port string for a NetAddress, or "" when
// neither part is set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}
	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(strings.Trim(host, "[]")) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}

var _ flag.Value = (*NetAddress)(nil)

// durationOrZero is used by JSON decoding of optional durations.
func durationOrZero(d *Duration) time.Duration {
	if d == nil {
		return 0
	}
	return time.Duration(*d)
}
