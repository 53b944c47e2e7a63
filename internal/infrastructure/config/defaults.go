package config

import "time"

// Default configuration constants
const (
	defaultLogLevel  = "info"
	defaultLogFormat = "console"

	defaultToggleSuspendTrigger        = "<Super>F11"
	defaultToggleSuspendAndIdleTrigger = "<Super><Shift>F11"

	// Matches GApplication's default inactivity timeout for services.
	defaultInactivityTimeout = 5 * time.Second

	defaultAccent = "#62a0ea"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Inhibit: InhibitConfig{
			Backend:      InhibitBackendAuto,
			DefaultLevel: "none",
		},
		Shortcuts: ShortcutsConfig{
			Enabled:              true,
			ToggleSuspend:        defaultToggleSuspendTrigger,
			ToggleSuspendAndIdle: defaultToggleSuspendAndIdleTrigger,
		},
		Application: ApplicationConfig{
			InactivityTimeout: defaultInactivityTimeout,
			RequestBackground: true,
		},
		Notifications: NotificationsConfig{
			Desktop: true,
		},
		Appearance: AppearanceConfig{
			Accent: defaultAccent,
		},
	}
}
