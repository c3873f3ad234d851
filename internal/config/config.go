// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/usestring/schemainfer/pkg/jsonschema"
)

// Processing safety cap defaults
const (
	DefaultLoadWorkers    = 8
	MaxSamplesValue       = 10000
	MaxSampleBytesValue   = 16 << 20
	DefaultCacheMaxItems  = 256
	MaxQueryResultsValue  = 10000
	DefaultLoadTimeoutMs  = 30000
	DefaultStatsMaxDepth  = jsonschema.DefaultStatsMaxDepth
	DefaultMaxToolSamples = 1000
)

// Config holds all configuration for the CLI and the MCP server.
type Config struct {
	LoadWorkers    int           // LOAD_WORKERS, default 8
	LoadTimeout    time.Duration // LOAD_TIMEOUT_MS, default 30000ms (30s)
	MaxSamples     int           // MAX_SAMPLES, default 10000 (0 = unlimited)
	MaxSampleBytes int           // MAX_SAMPLE_BYTES, default 16 MiB per input (0 = unlimited)
	CacheMaxItems  int           // CACHE_MAX_ITEMS, default 256
	StatsMaxDepth  int           // STATS_MAX_DEPTH, default 5

	// Processing safety caps
	MaxQueryResults int // QUERY_MAX_RESULTS, default 10000
	MaxToolSamples  int // MAX_TOOL_SAMPLES, default 1000 (MCP samples per call)

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFormat     string // LOG_FORMAT, default "text" (or "json")
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		LoadWorkers:    getEnvPositiveInt("LOAD_WORKERS", DefaultLoadWorkers),
		LoadTimeout:    getEnvDurationMs("LOAD_TIMEOUT_MS", DefaultLoadTimeoutMs),
		MaxSamples:     getEnvLimit("MAX_SAMPLES", MaxSamplesValue),
		MaxSampleBytes: getEnvLimit("MAX_SAMPLE_BYTES", MaxSampleBytesValue),
		CacheMaxItems:  getEnvPositiveInt("CACHE_MAX_ITEMS", DefaultCacheMaxItems),
		StatsMaxDepth:  getEnvPositiveInt("STATS_MAX_DEPTH", DefaultStatsMaxDepth),

		MaxQueryResults: getEnvLimit("QUERY_MAX_RESULTS", MaxQueryResultsValue),
		MaxToolSamples:  getEnvLimit("MAX_TOOL_SAMPLES", DefaultMaxToolSamples),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFormat:     getEnvString("LOG_FORMAT", "text"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvLimit("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvLimit("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvLimit("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvPositiveInt is getEnvInt for settings where zero or less is
// meaningless, such as worker counts and cache sizes.
func getEnvPositiveInt(key string, defaultVal int) int {
	if i := getEnvInt(key, defaultVal); i > 0 {
		return i
	}
	return defaultVal
}

// getEnvLimit is getEnvInt for caps where 0 means unlimited.
func getEnvLimit(key string, defaultVal int) int {
	if i := getEnvInt(key, defaultVal); i >= 0 {
		return i
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvPositiveInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}
