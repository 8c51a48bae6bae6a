// Package server holds the HTTP server configuration.
//
// The main application entry point handles startup; this package only defines
// the settings (port, API key, body limit) and their validation.
//
// # Usage
//
// This package is embedded by core/config and read by the start command.
package server
