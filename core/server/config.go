package server

import "strings"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// Neighborhood is the RT/RW label reported by the health endpoint and startup log.
	Neighborhood string `mapstructure:"neighborhood" default:"RT 01/RW 01"`
	// BodyLimitMB caps request bodies; service account JSON blobs are a few KB.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"4"`
}

// ListenAddr returns the address passed to the HTTP listener.
// A port given with a leading colon or a host part is used as is.
func (c Config) ListenAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		return ":8080"
	}
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

// BodyLimit returns the request body limit in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 4 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}
