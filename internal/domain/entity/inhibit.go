package entity

import (
	"fmt"
	"strings"
)

// InhibitLevel describes what is currently being inhibited.
// Levels are ordered by strength: None < Suspend < SuspendAndIdle.
type InhibitLevel int

const (
	// InhibitNone inhibits nothing.
	InhibitNone InhibitLevel = iota
	// InhibitSuspend inhibits system suspend.
	InhibitSuspend
	// InhibitSuspendAndIdle inhibits system suspend and session idle.
	InhibitSuspendAndIdle
)

// InhibitLevels lists all levels in ascending strength.
func InhibitLevels() []InhibitLevel {
	return []InhibitLevel{InhibitNone, InhibitSuspend, InhibitSuspendAndIdle}
}

// String returns the canonical text form of the level.
func (l InhibitLevel) String() string {
	switch l {
	case InhibitNone:
		return "none"
	case InhibitSuspend:
		return "suspend"
	case InhibitSuspendAndIdle:
		return "suspend-and-idle"
	default:
		return fmt.Sprintf("InhibitLevel(%d)", int(l))
	}
}

// Label returns a human-readable label for display.
func (l InhibitLevel) Label() string {
	switch l {
	case InhibitSuspend:
		return "Suspend"
	case InhibitSuspendAndIdle:
		return "Suspend and idle"
	default:
		return "Nothing"
	}
}

// Valid reports whether l is one of the known levels.
func (l InhibitLevel) Valid() bool {
	return l >= InhibitNone && l <= InhibitSuspendAndIdle
}

// Flags returns the inhibit flag set corresponding to the level.
func (l InhibitLevel) Flags() InhibitFlags {
	switch l {
	case InhibitSuspend:
		return InhibitFlagSuspend
	case InhibitSuspendAndIdle:
		return InhibitFlagSuspend | InhibitFlagIdle
	default:
		return 0
	}
}

// Toggle returns the level to switch to when the user toggles target:
// back to None if target is already active, target otherwise.
func (l InhibitLevel) Toggle(target InhibitLevel) InhibitLevel {
	if l == target {
		return InhibitNone
	}
	return target
}

// ParseInhibitLevel parses the text form of a level.
func ParseInhibitLevel(s string) (InhibitLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "nothing", "off", "":
		return InhibitNone, nil
	case "suspend", "sleep":
		return InhibitSuspend, nil
	case "suspend-and-idle", "suspend_and_idle", "idle", "all":
		return InhibitSuspendAndIdle, nil
	default:
		return InhibitNone, fmt.Errorf("unknown inhibit level %q (want none, suspend or suspend-and-idle)", s)
	}
}

// InhibitFlags is the bit set passed to session inhibition APIs.
// Values match the XDG Inhibit portal and GtkApplicationInhibitFlags.
type InhibitFlags uint32

const (
	InhibitFlagLogout     InhibitFlags = 1
	InhibitFlagUserSwitch InhibitFlags = 2
	InhibitFlagSuspend    InhibitFlags = 4
	InhibitFlagIdle       InhibitFlags = 8
)

// Has reports whether all bits of other are set in f.
func (f InhibitFlags) Has(other InhibitFlags) bool {
	return f&other == other
}

// Level derives the inhibit level from a flag set.
func (f InhibitFlags) Level() InhibitLevel {
	switch {
	case f.Has(InhibitFlagSuspend | InhibitFlagIdle):
		return InhibitSuspendAndIdle
	case f.Has(InhibitFlagSuspend):
		return InhibitSuspend
	default:
		return InhibitNone
	}
}

// String renders the flag set as a pipe separated list.
func (f InhibitFlags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, flag := range []struct {
		bit  InhibitFlags
		name string
	}{
		{InhibitFlagLogout, "logout"},
		{InhibitFlagUserSwitch, "user-switch"},
		{InhibitFlagSuspend, "suspend"},
		{InhibitFlagIdle, "idle"},
	} {
		if f.Has(flag.bit) {
			parts = append(parts, flag.name)
		}
	}
	return strings.Join(parts, "|")
}
