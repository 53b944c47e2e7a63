// Package env inspects the process environment: sandboxing and the
// terminal's window identity.
package env

import (
	"os"
	"strconv"
	"strings"
)

const (
	flatpakInfoPath = "/.flatpak-info"

	envWindowID        = "WINDOWID"
	envActivationToken = "XDG_ACTIVATION_TOKEN"
	envStartupID       = "DESKTOP_STARTUP_ID"
)

// IsFlatpak returns true if the application is running inside a Flatpak sandbox.
// Only portals are reachable from there.
func IsFlatpak() bool {
	return isFlatpak(flatpakInfoPath)
}

func isFlatpak(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ParentWindow returns the XDG parent window identifier of the controlling
// terminal, "x11:<hex>" from WINDOWID, or "" when unknown. Wayland
// terminals do not export a handle usable by other clients.
func ParentWindow() string {
	return parentWindow(os.Getenv(envWindowID))
}

func parentWindow(windowID string) string {
	windowID = strings.TrimSpace(windowID)
	if windowID == "" {
		return ""
	}
	id, err := strconv.ParseUint(windowID, 0, 32)
	if err != nil || id == 0 {
		return ""
	}
	return "x11:" + strconv.FormatUint(id, 16)
}

// ActivationToken returns the activation token the launcher handed to the
// process, from XDG_ACTIVATION_TOKEN or DESKTOP_STARTUP_ID.
func ActivationToken() string {
	if token := os.Getenv(envActivationToken); token != "" {
		return token
	}
	return os.Getenv(envStartupID)
}
