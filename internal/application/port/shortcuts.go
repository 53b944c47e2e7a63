package port

import (
	"context"

	"github.com/bnema/keepmeawake/internal/domain/entity"
)

// ShortcutSessionHandle is the opaque identity of a session with the
// global shortcut service.
type ShortcutSessionHandle string

// ShortcutActivation is a single "shortcut activated" event.
type ShortcutActivation struct {
	ShortcutID entity.ShortcutID
	// Timestamp is the service supplied activation time in milliseconds.
	Timestamp uint64
}

// GlobalShortcutsPortal is the versioned, asynchronous global shortcut service.
// All methods block until the service replies or ctx is done.
type GlobalShortcutsPortal interface {
	// Version returns the protocol version implemented by the service.
	Version(ctx context.Context) (uint32, error)

	// CreateSession creates a new shortcut session.
	CreateSession(ctx context.Context) (ShortcutSessionHandle, error)

	// BindShortcuts binds shortcuts to the session. parentWindow identifies
	// the window to parent service dialogs to.
	BindShortcuts(
		ctx context.Context,
		session ShortcutSessionHandle,
		parentWindow string,
		shortcuts []entity.Shortcut,
	) ([]entity.BoundShortcut, error)

	// Activations subscribes to activation events of the session.
	// Events are delivered in the order the service emits them. The channel
	// is closed once ctx is done and the subscription has been removed.
	Activations(ctx context.Context, session ShortcutSessionHandle) (<-chan ShortcutActivation, error)

	// ConfigureShortcuts opens the service's configuration surface.
	// activationToken may be empty.
	ConfigureShortcuts(ctx context.Context, session ShortcutSessionHandle, parentWindow, activationToken string) error

	// ListShortcuts returns the live bindings of the session.
	ListShortcuts(ctx context.Context, session ShortcutSessionHandle) ([]entity.BoundShortcut, error)

	// CloseSession destroys the session on the service side.
	CloseSession(ctx context.Context, session ShortcutSessionHandle) error
}
