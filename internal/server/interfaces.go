package server

import "context"

// Server defines the lifecycle contract of the listeners managed by this
// package.
type Server interface {
	// RunServer serves until SIGTERM, SIGINT or SIGQUIT and then shuts down
	// gracefully.
	RunServer()

	// Serve serves until ctx is done and then shuts down gracefully. It
	// returns the listener error, if serving failed for another reason.
	Serve(ctx context.Context) error

	// Shutdown gracefully stops the server.
	Shutdown()
}
