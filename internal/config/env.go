package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvConfigPath     = "QUIVER_CONFIG"
	EnvLogLevel       = "QUIVER_LOG_LEVEL"
	EnvUI             = "QUIVER_UI"
	EnvProjectileMode = "QUIVER_PROJECTILE_MODE"
)

// LoadEnv loads variables from .env files into the process environment.
// Missing files are not an error; variables already set are kept.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// Path returns the config file path, preferring QUIVER_CONFIG.
func Path(defaultPath string) string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return defaultPath
}

// ApplyEnv overrides config fields from the environment and re-validates.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvUI); v != "" {
		c.Frontend.UI = v
	}
	if v := os.Getenv(EnvProjectileMode); v != "" {
		c.Projectile.Mode = v
	}
	return c.Validate()
}
