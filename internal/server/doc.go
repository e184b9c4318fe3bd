// Package server runs the restaurant HTTP server.
//
// It owns the server lifecycle: startup of the HTTP listener and the
// background workers, signal handling, and graceful shutdown that drains
// in-flight requests, waits for the workers and releases the store and
// cache connections.
package server
