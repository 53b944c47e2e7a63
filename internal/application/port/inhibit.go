package port

import (
	"context"
	"errors"

	"github.com/bnema/keepmeawake/internal/domain/entity"
)

// NoWindow is the window identifier meaning "not bound to any window".
//
// Inhibition must never be bound to a window: a window-bound inhibition ends
// with the window's visible lifetime, but the application keeps inhibiting
// after its window is closed.
const NoWindow = ""

// ErrUnknownCookie is returned by Uninhibit for a cookie that is not active,
// including one already released.
var ErrUnknownCookie = errors.New("unknown inhibit cookie")

// InhibitCookie is an opaque handle for an active session inhibition.
type InhibitCookie uint32

// SessionInhibitor prevents the session from suspending or going idle.
type SessionInhibitor interface {
	// Inhibit requests an inhibition with the given flags and reason.
	// window identifies a toplevel to bind the inhibition to; callers in this
	// application always pass NoWindow.
	Inhibit(ctx context.Context, window string, flags entity.InhibitFlags, reason string) (InhibitCookie, error)

	// Uninhibit releases the inhibition identified by cookie.
	// Releasing an unknown cookie fails with ErrUnknownCookie and has no
	// other effect.
	Uninhibit(ctx context.Context, cookie InhibitCookie) error
}
