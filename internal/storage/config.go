package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Search  SearchConfig  `yaml:"search"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `yaml:"host"`
	Port    int           `yaml:"port"`
	Timeout time.Duration `yaml:"timeout"`
}

// Addr returns host:port.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// URL returns the base URL clients use to reach the server.
func (c ServerConfig) URL() string {
	host := c.Host
	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s:%d", host, c.Port)
}

// StorageConfig selects the bookmark backend.
type StorageConfig struct {
	Backend string `yaml:"backend"` // "json" or "sqlite"
	Path    string `yaml:"path"`
}

// SearchConfig tunes suggestions and the completion timers.
type SearchConfig struct {
	SuggestionLimit int           `yaml:"suggestion_limit"`
	Debounce        time.Duration `yaml:"debounce"`
	ErrorFlash      time.Duration `yaml:"error_flash"`
	BlurGrace       time.Duration `yaml:"blur_grace"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Debug bool   `yaml:"debug"`
	File  string `yaml:"file"`
}

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:    "127.0.0.1",
			Port:    7717,
			Timeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			Backend: BackendJSON,
		},
		Search: SearchConfig{
			SuggestionLimit: 10,
			Debounce:        300 * time.Millisecond,
			ErrorFlash:      1200 * time.Millisecond,
			BlurGrace:       150 * time.Millisecond,
		},
	}
}

// ApplyDefaults fills zero fields with defaults.
func ApplyDefaults(cfg *Config) {
	d := DefaultConfig()
	if cfg.Server.Host == "" {
		cfg.Server.Host = d.Server.Host
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = d.Server.Port
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = d.Server.Timeout
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = d.Storage.Backend
	}
	if cfg.Search.SuggestionLimit <= 0 {
		cfg.Search.SuggestionLimit = d.Search.SuggestionLimit
	}
	if cfg.Search.Debounce <= 0 {
		cfg.Search.Debounce = d.Search.Debounce
	}
	if cfg.Search.ErrorFlash <= 0 {
		cfg.Search.ErrorFlash = d.Search.ErrorFlash
	}
	if cfg.Search.BlurGrace <= 0 {
		cfg.Search.BlurGrace = d.Search.BlurGrace
	}
}

// LoadConfig reads config from the YAML file.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: return defaults even if save fails
			_ = SaveConfig(path, &config)
			config.Storage.Path = resolveStoragePath(config.Storage, filepath.Dir(path))
			return &config, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	ApplyDefaults(&config)
	config.Storage.Path = resolveStoragePath(config.Storage, filepath.Dir(path))
	if config.Log.File != "" {
		config.Log.File = expandPath(config.Log.File, filepath.Dir(path))
	}

	return &config, nil
}

// SaveConfig writes config to the YAML file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfigFilePath returns the default config path: ~/.config/pouch/config.yaml
func DefaultConfigFilePath() (string, error) {
	dir, err := DefaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultDataDir returns ~/.config/pouch.
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "pouch"), nil
}

// resolveStoragePath picks the backend's default file next to the config
// when no path is set.
func resolveStoragePath(sc StorageConfig, configDir string) string {
	if sc.Path != "" {
		return expandPath(sc.Path, configDir)
	}
	if sc.Backend == BackendSQLite {
		return filepath.Join(configDir, "bookmarks.db")
	}
	return filepath.Join(configDir, "bookmarks.json")
}

// expandPath makes path absolute. "~/" is the home directory; other relative
// paths are relative to configDir.
func expandPath(path, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return filepath.Join(configDir, path)
}
