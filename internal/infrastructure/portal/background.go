package portal

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/bnema/keepmeawake/internal/application/port"
	"github.com/bnema/keepmeawake/internal/logging"
)

const backgroundIface = "org.freedesktop.portal.Background"

// Compile-time interface check.
var _ port.BackgroundRequester = (*Background)(nil)

// Background asks org.freedesktop.portal.Background for permission to keep
// running without a window.
type Background struct {
	client *Client
}

// NewBackground creates the adapter using client.
func NewBackground(client *Client) *Background {
	return &Background{client: client}
}

// RequestBackground calls RequestBackground(parent_window s, options a{sv})
// and reports the background result. Autostart is never requested.
func (b *Background) RequestBackground(ctx context.Context, parentWindow, reason string) (bool, error) {
	options := map[string]dbus.Variant{
		"reason":    dbus.MakeVariant(reason),
		"autostart": dbus.MakeVariant(false),
	}
	results, err := b.client.request(ctx, backgroundIface+".RequestBackground", options, parentWindow)
	if err != nil {
		return false, err
	}

	granted := false
	if v, ok := results["background"]; ok {
		granted, ok = v.Value().(bool)
		if !ok {
			return false, fmt.Errorf("%w: background is %s", ErrUnexpectedReply, v.Signature())
		}
	}
	logging.FromContext(ctx).Debug().Bool("granted", granted).Msg("background: portal replied")
	return granted, nil
}
