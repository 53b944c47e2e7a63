package control

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/bnema/keepmeawake/internal/domain/entity"
)

// Client drives a running instance.
type Client struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// NewClient creates a client on a session bus connection.
func NewClient(conn *dbus.Conn) *Client {
	return &Client{conn: conn, obj: conn.Object(BusName, ObjectPath)}
}

// Running reports whether an instance currently owns BusName.
func (c *Client) Running(ctx context.Context) (bool, error) {
	var has bool
	err := c.conn.BusObject().CallWithContext(ctx, "org.freedesktop.DBus.NameHasOwner", 0, BusName).Store(&has)
	if err != nil {
		return false, fmt.Errorf("query %s owner: %w", BusName, err)
	}
	return has, nil
}

func (c *Client) call(ctx context.Context, method string, args ...interface{}) (*dbus.Call, error) {
	running, err := c.Running(ctx)
	if err != nil {
		return nil, err
	}
	if !running {
		return nil, ErrNotRunning
	}
	call := c.obj.CallWithContext(ctx, Interface+"."+method, 0, args...)
	if call.Err != nil {
		return nil, fmt.Errorf("%s: %w", method, call.Err)
	}
	return call, nil
}

// GetLevel returns the running instance's level.
func (c *Client) GetLevel(ctx context.Context) (entity.InhibitLevel, error) {
	call, err := c.call(ctx, "GetLevel")
	if err != nil {
		return entity.InhibitNone, err
	}
	var level string
	if err := call.Store(&level); err != nil {
		return entity.InhibitNone, fmt.Errorf("GetLevel: %w", err)
	}
	return entity.ParseInhibitLevel(level)
}

// SetLevel sets the running instance's level.
func (c *Client) SetLevel(ctx context.Context, level entity.InhibitLevel) error {
	_, err := c.call(ctx, "SetLevel", level.String())
	return err
}

// Toggle toggles target on the running instance and returns the new level.
func (c *Client) Toggle(ctx context.Context, target entity.InhibitLevel) (entity.InhibitLevel, error) {
	call, err := c.call(ctx, "Toggle", target.String())
	if err != nil {
		return entity.InhibitNone, err
	}
	var level string
	if err := call.Store(&level); err != nil {
		return entity.InhibitNone, fmt.Errorf("Toggle: %w", err)
	}
	return entity.ParseInhibitLevel(level)
}

// ListShortcuts returns the running instance's bound shortcuts.
func (c *Client) ListShortcuts(ctx context.Context) ([]entity.BoundShortcut, error) {
	call, err := c.call(ctx, "ListShortcuts")
	if err != nil {
		return nil, err
	}
	var rows []ShortcutRow
	if err := call.Store(&rows); err != nil {
		return nil, fmt.Errorf("ListShortcuts: %w", err)
	}
	out := make([]entity.BoundShortcut, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.BoundShortcut{
			ID:                 entity.ShortcutID(r.ID),
			Description:        r.Description,
			TriggerDescription: r.Trigger,
		})
	}
	return out, nil
}

// ConfigureShortcuts opens the shortcut configuration of the running instance.
func (c *Client) ConfigureShortcuts(ctx context.Context) error {
	_, err := c.call(ctx, "ConfigureShortcuts")
	return err
}

// Quit asks the running instance to exit.
func (c *Client) Quit(ctx context.Context) error {
	_, err := c.call(ctx, "Quit")
	return err
}
