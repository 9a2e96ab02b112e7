package mcpserver

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled bool
	CacheMaxSize int
	CacheFileTTL time.Duration
	CacheURLTTL  time.Duration

	// Resolver settings.
	FetchTimeout time.Duration
	MaxDocuments int
	MaxFileSize  int64

	// AllowPrivateIPs disables the SSRF guard for URL definitions.
	AllowPrivateIPs bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from APIDEF_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:    envBool("APIDEF_CACHE_ENABLED", true),
		CacheMaxSize:    envInt("APIDEF_CACHE_MAX_SIZE", 10),
		CacheFileTTL:    envDuration("APIDEF_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:     envDuration("APIDEF_CACHE_URL_TTL", 5*time.Minute),
		FetchTimeout:    envDuration("APIDEF_FETCH_TIMEOUT", 30*time.Second),
		MaxDocuments:    envInt("APIDEF_MAX_DOCUMENTS", 100),
		MaxFileSize:     int64(envInt("APIDEF_MAX_FILE_SIZE", 10*1024*1024)),
		AllowPrivateIPs: envBool("APIDEF_ALLOW_PRIVATE_IPS", false),
	}
}

// LoadEnvFile reads APIDEF_* settings from a dotenv file and rebuilds the
// server configuration. Variables already set in the process environment win.
// It must be called before Run.
func LoadEnvFile(path string) error {
	vars, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("mcpserver: reading env file: %w", err)
	}
	for key, value := range vars {
		if !strings.HasPrefix(key, "APIDEF_") || os.Getenv(key) != "" {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("mcpserver: setting %s: %w", key, err)
		}
	}
	cfg = loadConfig()
	defCache = newDefinitionCache(cfg.CacheMaxSize, cfg.CacheFileTTL, cfg.CacheURLTTL)
	return nil
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}
