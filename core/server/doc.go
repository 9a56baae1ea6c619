// Package server holds the HTTP server configuration.
//
// The Fiber application itself is assembled in cmd/start.go; this package only
// describes where it listens, how large request bodies may be, and the API key
// that protects the endpoints.
package server
