package files

// Config holds configuration for file transfers.
type Config struct {
	// CacheMaxAgeSeconds is the Cache-Control max-age set on uploaded objects.
	CacheMaxAgeSeconds int `mapstructure:"cache_max_age_seconds" default:"31536000"`
	// Concurrency caps parallel transfers per batch. Zero means unbounded.
	Concurrency int `mapstructure:"concurrency" default:"0"`
	// Compression is the envelope compression for files encoded by this service.
	Compression string `mapstructure:"compression" default:"pako@1"`
}
