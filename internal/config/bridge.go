package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Bridge config file location
const (
	BridgeConfigName = "bridge"
	BridgeConfigType = "toml"
	ConfigDirName    = "ytdl-desktop"
)

// Bridge config defaults
const (
	DefaultListenAddr   = "127.0.0.1:17431"
	DefaultMaxBodyBytes = 64 << 20
	DefaultLogLevel     = "info"
)

// DefaultAllowedOrigins are the origins the bundled front end is served from
var DefaultAllowedOrigins = []string{"http://localhost:1420", "http://127.0.0.1:1420"}

// BridgeConfig configures the host bridge transport and logging
type BridgeConfig struct {
	ListenAddr     string   `mapstructure:"listen_addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	MaxBodyBytes   int64    `mapstructure:"max_body_bytes"`
	LogLevel       string   `mapstructure:"log_level"`
}

// LoadBridgeConfig reads the bridge config from configPath, or from
// bridge.toml in the user config directory or working directory when
// configPath is empty. A missing file yields the defaults. The second return
// value is the file actually read, empty when none was found.
func LoadBridgeConfig(configPath string) (*BridgeConfig, string, error) {
	v := viper.New()
	v.SetConfigType(BridgeConfigType)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		if dir, err := DefaultConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
		v.SetConfigName(BridgeConfigName)
	}

	v.SetDefault("listen_addr", DefaultListenAddr)
	v.SetDefault("allowed_origins", DefaultAllowedOrigins)
	v.SetDefault("max_body_bytes", DefaultMaxBodyBytes)
	v.SetDefault("log_level", DefaultLogLevel)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, "", fmt.Errorf("read bridge config: %w", err)
		}
	}

	var cfg BridgeConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("unmarshal bridge config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, v.ConfigFileUsed(), nil
}

// Validate checks values that would keep the bridge from starting
func (cfg *BridgeConfig) Validate() error {
	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return errors.New("bridge config: listen_addr is empty")
	}
	if cfg.MaxBodyBytes <= 0 {
		return fmt.Errorf("bridge config: max_body_bytes must be positive, got %d", cfg.MaxBodyBytes)
	}
	return nil
}

// Save writes cfg as TOML to path, creating parent directories
func (cfg *BridgeConfig) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType(BridgeConfigType)
	v.Set("listen_addr", cfg.ListenAddr)
	v.Set("allowed_origins", cfg.AllowedOrigins)
	v.Set("max_body_bytes", cfg.MaxBodyBytes)
	v.Set("log_level", cfg.LogLevel)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write bridge config: %w", err)
	}
	return nil
}

// DefaultConfigDir returns the per-user config directory for the shell
func DefaultConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigDirName), nil
}
