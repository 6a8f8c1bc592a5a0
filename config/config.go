package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"inkwell/pkg/logger"
)

// Storage backend identifiers accepted in INKWELL_STORAGE.
const (
	StorageMemory = "memory"
	StorageBadger = "badger"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultAddr          = ":8080"
	DefaultDataDir       = "data/badger"
	DefaultAutoSaveDelay = 5 * time.Second
)

// Config holds the runtime settings for the serve command.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string
	// Storage selects the blog repository backend: memory or badger.
	Storage string
	// DataDir is the Badger database directory, used only with the badger backend.
	DataDir string
	// AutoSaveDelay is the editor debounce window advertised to clients.
	AutoSaveDelay time.Duration
}

// Load reads configuration from a .env file (if present) and the process
// environment, falling back to defaults for anything unset.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Sugar.Info("No .env file found, using environment variables from OS")
	}

	cfg := &Config{
		Addr:          envOr("INKWELL_ADDR", DefaultAddr),
		Storage:       strings.ToLower(envOr("INKWELL_STORAGE", StorageMemory)),
		DataDir:       envOr("INKWELL_DATA_DIR", DefaultDataDir),
		AutoSaveDelay: DefaultAutoSaveDelay,
	}

	if v := strings.TrimSpace(os.Getenv("INKWELL_AUTOSAVE_DELAY")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.AutoSaveDelay = d
		} else {
			logger.Sugar.Warnf("Ignoring invalid INKWELL_AUTOSAVE_DELAY %q", v)
		}
	}

	if cfg.Storage != StorageMemory && cfg.Storage != StorageBadger {
		logger.Sugar.Warnf("Unknown storage backend %q, falling back to %s", cfg.Storage, StorageMemory)
		cfg.Storage = StorageMemory
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
