package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB caps request bodies. Inline record batches can be large.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"64"`
	// DataDir roots filesystem sources named in requests. Empty disables them.
	DataDir string `mapstructure:"data_dir" default:""`
	// SourceCacheSeconds keeps loaded sources for reuse. Zero only shares concurrent loads.
	SourceCacheSeconds int `mapstructure:"source_cache_seconds" default:"60"`
}

const defaultBodyLimitMB = 64

// BodyLimit returns the request body limit in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return defaultBodyLimitMB << 20
	}
	return c.BodyLimitMB << 20
}

// SourceCacheTTL returns the source cache lifetime.
func (c Config) SourceCacheTTL() time.Duration {
	if c.SourceCacheSeconds <= 0 {
		return 0
	}
	return time.Duration(c.SourceCacheSeconds) * time.Second
}

// Address returns the listen address.
func (c Config) Address() string {
	if c.Port == "" {
		return ":8080"
	}
	return ":" + c.Port
}
