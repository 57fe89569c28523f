package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/unscroll/unscroll/internal/constants"
	"github.com/unscroll/unscroll/internal/utils"
)

// Config holds all unscroll configuration.
type Config struct {
	// Store is a .db (SQLite) or .json file path, or a PostgreSQL connection string.
	Store    string `yaml:"store"`
	Timezone string `yaml:"timezone"`
	Debug    bool   `yaml:"debug"`

	Notifications NotificationsConfig `yaml:"notifications"`
	Scroll        ScrollConfig        `yaml:"scroll"`
	Server        ServerConfig        `yaml:"server"`
}

// NotificationsConfig controls where toasts are delivered.
type NotificationsConfig struct {
	// Tray forwards toasts to the desktop tray companion when it is running.
	Tray bool `yaml:"tray"`
}

// ScrollConfig tunes the scroll classifier and burst interceptor.
type ScrollConfig struct {
	Window      time.Duration `yaml:"window"`
	Tick        time.Duration `yaml:"tick"`
	Sensitivity int           `yaml:"sensitivity"`
	Debounce    time.Duration `yaml:"debounce"`
	Cooldown    time.Duration `yaml:"cooldown"`
}

// ServerConfig configures the local HTTP API.
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Store:    constants.DefaultStorePath,
		Timezone: constants.DefaultTimezone,
		Notifications: NotificationsConfig{
			Tray: constants.DefaultTrayEnabled,
		},
		Scroll: ScrollConfig{
			Window:      constants.DefaultScrollWindow,
			Tick:        constants.DefaultScrollTick,
			Sensitivity: constants.DefaultScrollSensitivity,
			Debounce:    constants.DefaultScrollDebounce,
			Cooldown:    constants.DefaultScrollCooldown,
		},
		Server: ServerConfig{
			ListenAddr: constants.DefaultListenAddr,
		},
	}
}

// DefaultPath returns the config file location, honouring UNSCROLL_CONFIG_FILE.
func DefaultPath() string {
	if p := strings.TrimSpace(os.Getenv(constants.EnvConfigFile)); p != "" {
		return ExpandHome(p)
	}
	return ExpandHome(filepath.Join(constants.DefaultConfigDir, constants.DefaultConfigFile))
}

// Load reads configuration from a YAML file. A missing file yields defaults.
// Environment variables are applied on top in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.Store = ExpandHome(cfg.Store)

	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv(constants.EnvStore)); v != "" {
		c.Store = v
	}
	if v := strings.TrimSpace(os.Getenv(constants.EnvTimezone)); v != "" {
		c.Timezone = v
	}
	if v := strings.TrimSpace(os.Getenv(constants.EnvDebug)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
	if v := strings.TrimSpace(os.Getenv(constants.EnvListenAddr)); v != "" {
		c.Server.ListenAddr = v
	}
}

// Validate checks ranges and the timezone name.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Store) == "" {
		return fmt.Errorf("store cannot be empty")
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone %q", c.Timezone)
	}
	if c.Scroll.Window <= 0 || c.Scroll.Tick <= 0 {
		return fmt.Errorf("scroll window and tick must be positive")
	}
	if c.Scroll.Tick > c.Scroll.Window {
		return fmt.Errorf("scroll tick (%v) cannot exceed the window (%v)", c.Scroll.Tick, c.Scroll.Window)
	}
	if c.Scroll.Sensitivity < 1 {
		return fmt.Errorf("scroll sensitivity must be at least 1")
	}
	if c.Scroll.Debounce <= 0 || c.Scroll.Cooldown < 0 {
		return fmt.Errorf("scroll debounce must be positive and cooldown non-negative")
	}
	if strings.TrimSpace(c.Server.ListenAddr) == "" {
		return fmt.Errorf("server listen address cannot be empty")
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	return utils.LoadLocation(c.Timezone)
}

// ConfigDir is the directory holding logs and backups for a file-backed store,
// or the default config directory for PostgreSQL.
func (c *Config) ConfigDir() string {
	if IsPostgres(c.Store) || strings.EqualFold(c.Store, constants.KeyringLocation) {
		return ExpandHome(constants.DefaultConfigDir)
	}
	return filepath.Dir(ExpandHome(c.Store))
}

// IsPostgres reports whether a store location is a PostgreSQL connection string.
func IsPostgres(store string) bool {
	return strings.HasPrefix(store, "postgres://") ||
		strings.HasPrefix(store, "postgresql://") ||
		strings.Contains(store, "host=")
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
