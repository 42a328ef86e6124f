package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file configuration.
const (
	EnvDictionaryURL = "WORDHUNT_DICTIONARY_URL"
	EnvDictionaryKey = "WORDHUNT_DICTIONARY_KEY"
	EnvDictTimeout   = "WORDHUNT_DICTIONARY_TIMEOUT"
	EnvDBPath        = "WORDHUNT_DB"
	EnvLogLevel      = "WORDHUNT_LOG_LEVEL"
)

// LoadEnv reads .env files into the process environment. Missing files are
// not an error; variables already set are left untouched.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: cannot load %s: %w", f, err)
		}
	}
	return nil
}

// Load loads the wordhunt configuration.
// Search order: customPath -> ~/.wordhunt/config.yaml -> ./configs/wordhunt.yaml -> embedded default.
// Files are layered on top of the defaults, so partial files are fine.
// Environment overrides are applied last.
func Load(customPath string) (Config, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (Config, error) {
	cfg := DefaultConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(ExpandHome(customPath))
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "wordhunt.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// applyEnv overrides file values with environment variables.
func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvDictionaryURL); ok {
		cfg.Dictionary.URL = v
	}
	if v := os.Getenv(EnvDictionaryKey); v != "" {
		cfg.Dictionary.APIKey = v
	}
	if v := os.Getenv(EnvDictTimeout); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.Dictionary.TimeoutSeconds = secs
		}
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".wordhunt", filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
