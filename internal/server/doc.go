// Package server runs the HTTP listeners of the gateway and of the client's
// metrics endpoint.
//
// It covers startup, signal handling and graceful shutdown.
package server
