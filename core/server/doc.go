// Package server holds the HTTP server configuration.
//
// The entry point in cmd starts the fiber application; this package only
// defines the settings it reads: listen port, API key, request body limit
// and how long reconcile indices stay cached between requests.
package server
