// Package server runs the application's HTTP server.
//
// It covers startup, cancellation through the caller's context (typically
// bound to SIGINT, SIGTERM and SIGQUIT) and graceful shutdown that lets
// in-flight requests finish.
package server
