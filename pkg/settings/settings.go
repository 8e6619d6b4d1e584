// Package settings resolves runtime configuration from the environment.
package settings

import (
	"os"
	"strconv"
	"time"
)

// Settings holds process-wide configuration. All fields resolve from
// SPATIUM_* environment variables with defaults suitable for a dev box.
type Settings struct {
	// ListenAddr is the HTTP API bind address.
	ListenAddr string

	// TopologyDir is the working directory for generated topology files.
	TopologyDir string

	// OutputDir receives saved device configuration files.
	OutputDir string

	// ClabBin is the deployment tool binary name or path.
	ClabBin string

	// ClabTimeout, when non-zero, is passed to the tool as --timeout.
	ClabTimeout time.Duration

	// RestTimeout bounds each device REST request.
	RestTimeout time.Duration

	// FetchParallel caps concurrent device config fetches.
	FetchParallel int

	// LogLevel and LogFormat configure the global logger.
	LogLevel  string
	LogFormat string
}

// Load resolves settings from the environment.
func Load() *Settings {
	return &Settings{
		ListenAddr:    envString("SPATIUM_LISTEN_ADDR", ":8080"),
		TopologyDir:   envString("SPATIUM_TOPOLOGY_DIR", "./topologies"),
		OutputDir:     envString("SPATIUM_OUTPUT_DIR", "outputs"),
		ClabBin:       envString("SPATIUM_CLAB_BIN", "containerlab"),
		ClabTimeout:   envDuration("SPATIUM_CLAB_TIMEOUT", 0),
		RestTimeout:   envDuration("SPATIUM_REST_TIMEOUT", 30*time.Second),
		FetchParallel: envInt("SPATIUM_FETCH_PARALLEL", 8),
		LogLevel:      envString("SPATIUM_LOG_LEVEL", "info"),
		LogFormat:     envString("SPATIUM_LOG_FORMAT", "text"),
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// envDuration accepts either a Go duration string ("45s") or a bare number
// of seconds ("45"), matching how the tool's --timeout flag is written.
func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}
