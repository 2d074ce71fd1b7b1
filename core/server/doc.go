// Package server holds the HTTP server configuration.
//
// The start command owns the fiber application; this package only defines the
// settings it reads (listen port, API key, report archiving).
package server
