// Package config loads, validates and watches the keepmeawake configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/bnema/keepmeawake/internal/domain/entity"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	dir       string
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a configuration manager for the XDG config directory.
func NewManager() (*Manager, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	return NewManagerForDir(configDir)
}

// NewManagerForDir creates a configuration manager reading config.toml
// from dir.
func NewManagerForDir(dir string) (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)

	// Every key is reachable as KEEPMEAWAKE_SECTION_KEY, e.g.
	// KEEPMEAWAKE_INHIBIT_BACKEND.
	v.SetEnvPrefix("KEEPMEAWAKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "KEEPMEAWAKE_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind KEEPMEAWAKE_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "KEEPMEAWAKE_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind KEEPMEAWAKE_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		dir:       dir,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables. A
// missing config file is created with the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.dir, dirPerm); err != nil {
		return fmt.Errorf("failed to ensure config directory: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	if err := m.viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			configFile := m.viper.ConfigFileUsed()
			if configFile == "" {
				configFile = filepath.Join(m.dir, "config.toml")
			}
			return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
		}
		if createErr := m.createDefaultConfig(); createErr != nil {
			return fmt.Errorf(
				"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
				m.dir,
				createErr,
			)
		}
		if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
			return fmt.Errorf(
				"failed to read newly created config file: %w\nThe config file was created but couldn't be read. Please check the file format",
				rereadErr,
			)
		}
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	return config, nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))

	switch InhibitBackend(strings.ToLower(string(config.Inhibit.Backend))) {
	case "", InhibitBackendAuto:
		config.Inhibit.Backend = InhibitBackendAuto
	case InhibitBackendPortal:
		config.Inhibit.Backend = InhibitBackendPortal
	case InhibitBackendLogind:
		config.Inhibit.Backend = InhibitBackendLogind
	}

	// Accept aliases such as "idle" and store the canonical form.
	if level, err := entity.ParseInhibitLevel(config.Inhibit.DefaultLevel); err == nil {
		config.Inhibit.DefaultLevel = level.String()
	}

	config.Shortcuts.ToggleSuspend = strings.TrimSpace(config.Shortcuts.ToggleSuspend)
	config.Shortcuts.ToggleSuspendAndIdle = strings.TrimSpace(config.Shortcuts.ToggleSuspendAndIdle)
	config.Appearance.Accent = strings.TrimSpace(config.Appearance.Accent)
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	// Return a copy to prevent external modification
	configCopy := *m.config
	return &configCopy
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(m.dir, "config.toml")
}

// createDefaultConfig writes the defaults and the JSON schema to the
// config directory.
func (m *Manager) createDefaultConfig() error {
	configFile := filepath.Join(m.dir, "config.toml")

	if err := os.MkdirAll(m.dir, dirPerm); err != nil {
		return err
	}

	m.viper.SetConfigType("toml")
	if err := m.viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Created default configuration file: %s\n", configFile)

	if _, err := GenerateSchemaFile(m.dir); err != nil {
		return err
	}
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)

	m.viper.SetDefault("inhibit.backend", string(defaults.Inhibit.Backend))
	m.viper.SetDefault("inhibit.default_level", defaults.Inhibit.DefaultLevel)

	m.viper.SetDefault("shortcuts.enabled", defaults.Shortcuts.Enabled)
	m.viper.SetDefault("shortcuts.toggle_suspend", defaults.Shortcuts.ToggleSuspend)
	m.viper.SetDefault("shortcuts.toggle_suspend_and_idle", defaults.Shortcuts.ToggleSuspendAndIdle)

	m.viper.SetDefault("application.inactivity_timeout", defaults.Application.InactivityTimeout.String())
	m.viper.SetDefault("application.request_background", defaults.Application.RequestBackground)

	m.viper.SetDefault("notifications.desktop", defaults.Notifications.Desktop)

	m.viper.SetDefault("appearance.accent", defaults.Appearance.Accent)
}
