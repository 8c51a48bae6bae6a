package storage

import (
	"strings"
	"time"
)

// Config locates the object store that keeps encrypted room files.
// An https:// endpoint selects TLS; a bare host:port or http:// does not.
type Config struct {
	Endpoint        string `mapstructure:"endpoint" default:"localhost:9000"`
	AccessKeyID     string `mapstructure:"access_key_id" default:"minioadmin"`
	SecretAccessKey string `mapstructure:"secret_access_key" default:"minioadmin"`
	// Region is only needed by stores that reject unsigned region lookups.
	Region string `mapstructure:"region"`

	// Bucket holds every file as <prefix>/<id>.
	Bucket string `mapstructure:"bucket" default:"excalidraw-files"`
	// RequestTimeoutSeconds bounds dialing, TLS handshakes and waiting for
	// response headers.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" default:"30"`
}

// Host returns the endpoint without its scheme.
func (c Config) Host() string {
	host := strings.TrimPrefix(c.Endpoint, "http://")
	return strings.TrimPrefix(host, "https://")
}

// Secure reports whether the endpoint is reached over TLS.
func (c Config) Secure() bool {
	return strings.HasPrefix(c.Endpoint, "https://")
}

// RequestTimeout falls back to 30s when unset.
func (c Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
