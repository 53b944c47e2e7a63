// Package control exposes the running instance on the session bus so later
// invocations can drive it instead of starting a second one.
package control

import (
	"context"
	"errors"

	"github.com/godbus/dbus/v5"

	"github.com/bnema/keepmeawake/internal/domain/entity"
)

const (
	// BusName is the well-known name owned by the running instance.
	BusName = "de.swsnr.keepmeawake"
	// ObjectPath is where the control object is exported.
	ObjectPath = dbus.ObjectPath("/de/swsnr/keepmeawake")
	// Interface is the control interface name.
	Interface = "de.swsnr.KeepMeAwake1"

	errorInvalidLevel = Interface + ".Error.InvalidLevel"
	errorFailed       = Interface + ".Error.Failed"
)

var (
	// ErrAlreadyRunning is returned by Serve when another instance owns BusName.
	ErrAlreadyRunning = errors.New("another instance is already running")
	// ErrNotRunning is returned by the client when no instance owns BusName.
	ErrNotRunning = errors.New("keepmeawake is not running")
)

// Controller is what the control object drives.
type Controller interface {
	Level() entity.InhibitLevel
	SetLevel(ctx context.Context, level entity.InhibitLevel) error
	// Toggle switches between target and none and returns the new level.
	Toggle(ctx context.Context, target entity.InhibitLevel) (entity.InhibitLevel, error)
	ListShortcuts(ctx context.Context) ([]entity.BoundShortcut, error)
	ConfigureShortcuts(ctx context.Context) error
	Quit()
}

// ShortcutRow is the (sss) wire form of a bound shortcut.
type ShortcutRow struct {
	ID          string
	Description string
	Trigger     string
}
