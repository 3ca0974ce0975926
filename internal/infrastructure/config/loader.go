// Package config loads, validates, watches and writes the sashes
// configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	configDir string
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
	// skipNextReload is set by Save so the fsnotify event it causes does not
	// re-read a file we already hold in memory.
	skipNextReload bool
}

// ManagerOption customises a Manager.
type ManagerOption func(*Manager)

// WithConfigDir overrides the XDG config directory.
func WithConfigDir(dir string) ManagerOption {
	return func(m *Manager) {
		m.configDir = dir
	}
}

// NewManager creates a new configuration manager.
func NewManager(opts ...ManagerOption) (*Manager, error) {
	m := &Manager{
		viper:     viper.New(),
		configDir: GetConfigDir(),
		callbacks: make([]func(*Config), 0),
	}
	for _, opt := range opts {
		opt(m)
	}

	v := m.viper
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(m.configDir)

	v.SetEnvPrefix("SASHES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The logging package reads the short names too.
	if err := v.BindEnv("logging.level", "SASHES_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind SASHES_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "SASHES_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind SASHES_LOG_FORMAT: %w", err)
	}

	return m, nil
}

// Load loads the configuration from file and environment variables,
// creating a default file on first run.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.configDir, dirPerm); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", m.configDir, err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}
	return m.reload(false)
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.configFile(), err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		return fmt.Errorf("failed to create default config at %s: %w", m.configDir, createErr)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

// reload re-reads viper's state into a fresh Config. Callers hold m.mu.
func (m *Manager) reload(readFile bool) error {
	if readFile {
		if err := m.viper.ReadInConfig(); err != nil {
			return err
		}
	}

	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.configFile(), err,
		)
	}

	normalizeConfig(config)
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func normalizeConfig(config *Config) {
	defaults := DefaultConfig()

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "" {
		config.Logging.Level = defaults.Logging.Level
	}
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	if config.Logging.Format == "" {
		config.Logging.Format = defaults.Logging.Format
	}

	config.Layout.DefaultFirstPosition = strings.ToLower(strings.TrimSpace(config.Layout.DefaultFirstPosition))
	if config.Layout.DefaultFirstPosition == "" {
		config.Layout.DefaultFirstPosition = defaults.Layout.DefaultFirstPosition
	}
	config.Layout.DefaultResizeStrategy = strings.ToLower(strings.TrimSpace(config.Layout.DefaultResizeStrategy))
	if config.Layout.DefaultResizeStrategy == "" {
		config.Layout.DefaultResizeStrategy = defaults.Layout.DefaultResizeStrategy
	}

	config.Events.Journal.Path = strings.TrimSpace(config.Events.Journal.Path)
	if config.Events.Journal.Path == "" {
		config.Events.Journal.Path = GetJournalFile()
	}
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// Save validates cfg and writes it to the config file.
func (m *Manager) Save(cfg *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := WriteConfigOrdered(cfg, m.configFile()); err != nil {
		return err
	}

	if m.watching {
		m.skipNextReload = true
		saved := *cfg
		m.config = &saved
		return nil
	}
	return m.reload(true)
}

// ConfigFile returns the path of the configuration file in use.
func (m *Manager) ConfigFile() string {
	return m.configFile()
}

func (m *Manager) configFile() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(m.configDir, configName)
}

func (m *Manager) createDefaultConfig() error {
	configFile := filepath.Join(m.configDir, configName)
	if err := WriteConfigOrdered(DefaultConfig(), configFile); err != nil {
		return err
	}
	if _, err := GenerateSchemaFile(m.configDir); err != nil {
		return err
	}
	m.viper.SetConfigFile(configFile)
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)

	m.viper.SetDefault("layout.default_first_position", defaults.Layout.DefaultFirstPosition)
	m.viper.SetDefault("layout.default_resize_strategy", defaults.Layout.DefaultResizeStrategy)
	m.viper.SetDefault("layout.min_pane_width", defaults.Layout.MinPaneWidth)
	m.viper.SetDefault("layout.min_pane_height", defaults.Layout.MinPaneHeight)
	m.viper.SetDefault("layout.drop_zone_margin", defaults.Layout.DropZoneMargin)
	m.viper.SetDefault("layout.fit_interval_ms", defaults.Layout.FitIntervalMs)

	m.viper.SetDefault("events.resize_debounce_ms", defaults.Events.ResizeDebounceMs)
	m.viper.SetDefault("events.journal.enabled", defaults.Events.Journal.Enabled)
	m.viper.SetDefault("events.journal.path", defaults.Events.Journal.Path)
}
