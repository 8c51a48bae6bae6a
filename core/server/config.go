package server

import (
	"fmt"
	"strconv"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB caps request bodies (file batches can be large).
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"50"`
}

// Validate checks that the port is a usable TCP port number.
func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %q", c.Port)
	}
	if c.BodyLimitMB < 0 {
		return fmt.Errorf("invalid body limit: %d", c.BodyLimitMB)
	}
	return nil
}

// BodyLimit returns the body limit in bytes, defaulting to 4MB when unset.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 4 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}
