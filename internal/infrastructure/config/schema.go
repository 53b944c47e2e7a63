package config

import "time"

// Config represents the complete configuration for keepmeawake.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging" toml:"logging"`
	// Inhibit selects how the session is kept awake.
	Inhibit InhibitConfig `mapstructure:"inhibit" toml:"inhibit"`
	// Shortcuts controls the global shortcut session.
	Shortcuts ShortcutsConfig `mapstructure:"shortcuts" toml:"shortcuts"`
	// Application controls process lifetime.
	Application   ApplicationConfig   `mapstructure:"application" toml:"application"`
	Notifications NotificationsConfig `mapstructure:"notifications" toml:"notifications"`
	Appearance    AppearanceConfig    `mapstructure:"appearance" toml:"appearance"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,default=info"`
	Format string `mapstructure:"format" toml:"format" jsonschema:"enum=console,enum=text,enum=json,default=console"`
}

// InhibitBackend selects the session inhibition service.
type InhibitBackend string

const (
	// InhibitBackendAuto uses the portal inside a sandbox or when it answers,
	// logind otherwise.
	InhibitBackendAuto   InhibitBackend = "auto"
	InhibitBackendPortal InhibitBackend = "portal"
	InhibitBackendLogind InhibitBackend = "logind"
)

// InhibitConfig controls session inhibition.
type InhibitConfig struct {
	Backend InhibitBackend `mapstructure:"backend" toml:"backend" jsonschema:"enum=auto,enum=portal,enum=logind,default=auto"`
	// DefaultLevel is applied once at startup (none, suspend, suspend-and-idle).
	DefaultLevel string `mapstructure:"default_level" toml:"default_level" jsonschema:"enum=none,enum=suspend,enum=suspend-and-idle,default=none"`
}

// ShortcutsConfig controls the global shortcut session.
type ShortcutsConfig struct {
	Enabled bool `mapstructure:"enabled" toml:"enabled" jsonschema:"default=true"`
	// ToggleSuspend is the preferred trigger for toggling suspend inhibition.
	// The desktop may assign a different one.
	ToggleSuspend string `mapstructure:"toggle_suspend" toml:"toggle_suspend"`
	// ToggleSuspendAndIdle is the preferred trigger for toggling suspend and
	// idle inhibition.
	ToggleSuspendAndIdle string `mapstructure:"toggle_suspend_and_idle" toml:"toggle_suspend_and_idle"`
}

// ApplicationConfig controls process lifetime.
type ApplicationConfig struct {
	// InactivityTimeout is how long the process lingers once the window is
	// closed and nothing holds it, e.g. "5s".
	InactivityTimeout time.Duration `mapstructure:"inactivity_timeout" toml:"inactivity_timeout"`
	// RequestBackground asks the desktop for permission to run without a window.
	RequestBackground bool `mapstructure:"request_background" toml:"request_background" jsonschema:"default=true"`
}

// NotificationsConfig controls desktop notifications.
type NotificationsConfig struct {
	// Desktop shows a notification when the level changes while the window is closed.
	Desktop bool `mapstructure:"desktop" toml:"desktop" jsonschema:"default=true"`
}

// AppearanceConfig controls the terminal window.
type AppearanceConfig struct {
	// Accent is a hex colour ("#62a0ea") or an ANSI colour number.
	Accent string `mapstructure:"accent" toml:"accent"`
}
