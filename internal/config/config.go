package config

import (
	"os"
	"path/filepath"
)

// StoreSecretEnv names the environment variable that overrides the store
// secret.
const StoreSecretEnv = "GOPHNOTES_STORE_SECRET"

// DefaultStoreSecret is used when no secret is configured. It keeps a fresh
// install working; the CLI warns while it is in use.
const DefaultStoreSecret = "gophnotes-default-store-secret"

// Config holds runtime settings for the gophnotes CLI.
//
// Fields:
//   - StorePath: the encrypted credential store file.
//   - StoreSecret: the secret the store encryption key is derived from.
//   - DocumentsDir: where relative document paths are resolved.
//   - LogLevel: minimum level written to the log.
type Config struct {
	StorePath    string
	StoreSecret  string
	DocumentsDir string
	LogLevel     string
}

// LoadDefaults populates c with defaults. The store lives in the user
// config directory when one is known, otherwise in the working directory.
func (c *Config) LoadDefaults() {
	c.StorePath = "users.store"
	if dir, err := os.UserConfigDir(); err == nil {
		c.StorePath = filepath.Join(dir, "gophnotes", "users.store")
	}
	c.StoreSecret = DefaultStoreSecret
	c.DocumentsDir = "."
	c.LogLevel = "info"
}

// UsesDefaultSecret reports whether the built-in store secret is in effect.
func (c *Config) UsesDefaultSecret() bool {
	return c.StoreSecret == DefaultStoreSecret
}

// LoadConfig constructs a Config from defaults, then overlays the JSON file,
// flags and environment found in args and getenv. Later sources take
// precedence. It panics on an unreadable JSON file or malformed flags.
func LoadConfig(args []string, getenv func(string) string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg, args)
	parseFlags(cfg, args)
	parseEnv(cfg, getenv)
	return cfg
}

func parseEnv(cfg *Config, getenv func(string) string) {
	if getenv == nil {
		return
	}
	if v := getenv(StoreSecretEnv); v != "" {
		cfg.StoreSecret = v
	}
}
