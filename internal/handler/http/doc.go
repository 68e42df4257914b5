// Package http exposes a [worlddb.World] as the development remote store.
//
// The gateway serves the full row set, long-polled row events and the
// reducer calls made by the sync client's HTTP adapter. Request tracing,
// access logging, response compression and editor identity checks are
// handled here before a request reaches the table.
package http
