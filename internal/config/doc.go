// Package config provides configuration loading, merging, and validation
// for the sync client and the development gateway.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. Environment variables, optionally seeded from a .env file
//  3. Command-line flags
//  4. JSON config file
//
// The main entry points are [GetClientConfig] for the sync client and
// [GetGatewayConfig] for the development remote store.
package config
