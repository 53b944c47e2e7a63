package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bnema/keepmeawake/internal/domain/entity"
)

var hexColour = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateInhibit(config)...)
	validationErrors = append(validationErrors, validateApplication(config)...)
	validationErrors = append(validationErrors, validateAppearance(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.level must be one of: trace, debug, info, warn, error (got: %s)",
			config.Logging.Level,
		))
	}
	switch config.Logging.Format {
	case "text", "json", "console", "":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.format must be one of: text, json, console (got: %s)",
			config.Logging.Format,
		))
	}
	return validationErrors
}

func validateInhibit(config *Config) []string {
	var validationErrors []string
	switch config.Inhibit.Backend {
	case InhibitBackendAuto, InhibitBackendPortal, InhibitBackendLogind:
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"inhibit.backend must be one of: auto, portal, logind (got: %s)",
			config.Inhibit.Backend,
		))
	}
	if _, err := entity.ParseInhibitLevel(config.Inhibit.DefaultLevel); err != nil {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"inhibit.default_level must be one of: none, suspend, suspend-and-idle (got: %s)",
			config.Inhibit.DefaultLevel,
		))
	}
	return validationErrors
}

func validateApplication(config *Config) []string {
	if config.Application.InactivityTimeout < 0 {
		return []string{"application.inactivity_timeout must be non-negative"}
	}
	return nil
}

func validateAppearance(config *Config) []string {
	accent := config.Appearance.Accent
	if accent == "" || hexColour.MatchString(accent) {
		return nil
	}
	if n, err := strconv.Atoi(accent); err == nil && n >= 0 && n <= 255 {
		return nil
	}
	return []string{fmt.Sprintf("appearance.accent must be a hex colour or an ANSI colour number 0-255 (got: %s)", accent)}
}
