// Package notify sends desktop notifications.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/beeep"

	"github.com/bnema/keepmeawake/internal/application/port"
	"github.com/bnema/keepmeawake/internal/domain/build"
	"github.com/bnema/keepmeawake/internal/logging"
)

const maxMessageLen = 400

// Compile-time interface check.
var _ port.Notifier = (*Desktop)(nil)

// Desktop posts notifications through the desktop notification service.
type Desktop struct {
	enabled bool
	send    func(title, message string, icon any) error
}

// NewDesktop creates a notifier. A disabled notifier drops everything.
func NewDesktop(enabled bool) *Desktop {
	beeep.AppName = build.AppName
	return &Desktop{enabled: enabled, send: beeep.Notify}
}

// Notify shows title and message. Empty titles fall back to the
// application name.
func (d *Desktop) Notify(ctx context.Context, title, message string) error {
	if !d.enabled {
		return nil
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = build.AppName
	}
	message = strings.TrimSpace(message)
	if len(message) > maxMessageLen {
		message = message[:maxMessageLen] + "..."
	}

	if err := d.send(title, message, ""); err != nil {
		return fmt.Errorf("desktop notification: %w", err)
	}
	logging.FromContext(ctx).Debug().Str("title", title).Msg("notify: sent")
	return nil
}
