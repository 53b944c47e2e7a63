package portal

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/bnema/keepmeawake/internal/application/port"
	"github.com/bnema/keepmeawake/internal/domain/entity"
	"github.com/bnema/keepmeawake/internal/logging"
)

const globalShortcutsIface = "org.freedesktop.portal.GlobalShortcuts"

// Compile-time interface check.
var _ port.GlobalShortcutsPortal = (*GlobalShortcuts)(nil)

// shortcutSpec is the (sa{sv}) struct used by BindShortcuts and ListShortcuts.
type shortcutSpec struct {
	ID      string
	Options map[string]dbus.Variant
}

// GlobalShortcuts implements the shortcut service port with
// org.freedesktop.portal.GlobalShortcuts.
type GlobalShortcuts struct {
	client *Client
}

// NewGlobalShortcuts creates the adapter using client.
func NewGlobalShortcuts(client *Client) *GlobalShortcuts {
	return &GlobalShortcuts{client: client}
}

// Version returns the interface version of the portal.
func (g *GlobalShortcuts) Version(ctx context.Context) (uint32, error) {
	return g.client.Version(ctx, globalShortcutsIface)
}

// CreateSession calls CreateSession(options a{sv}) and returns the
// session_handle result.
func (g *GlobalShortcuts) CreateSession(ctx context.Context) (port.ShortcutSessionHandle, error) {
	options := map[string]dbus.Variant{
		"session_handle_token": dbus.MakeVariant(newToken()),
	}
	results, err := g.client.request(ctx, globalShortcutsIface+".CreateSession", options)
	if err != nil {
		return "", err
	}
	handle, err := sessionHandle(results)
	if err != nil {
		return "", fmt.Errorf("CreateSession: %w", err)
	}
	logging.FromContext(ctx).Debug().Str("session", string(handle)).Msg("global shortcuts: session created")
	return handle, nil
}

// BindShortcuts calls BindShortcuts(session o, shortcuts a(sa{sv}),
// parent_window s, options a{sv}).
func (g *GlobalShortcuts) BindShortcuts(
	ctx context.Context,
	session port.ShortcutSessionHandle,
	parentWindow string,
	shortcuts []entity.Shortcut,
) ([]entity.BoundShortcut, error) {
	specs := make([]shortcutSpec, 0, len(shortcuts))
	for _, s := range shortcuts {
		specs = append(specs, toSpec(s))
	}

	results, err := g.client.request(
		ctx,
		globalShortcutsIface+".BindShortcuts",
		map[string]dbus.Variant{},
		dbus.ObjectPath(session), specs, parentWindow,
	)
	if err != nil {
		return nil, err
	}
	return boundShortcuts(results)
}

// ListShortcuts calls ListShortcuts(session o, options a{sv}).
func (g *GlobalShortcuts) ListShortcuts(ctx context.Context, session port.ShortcutSessionHandle) ([]entity.BoundShortcut, error) {
	results, err := g.client.request(
		ctx,
		globalShortcutsIface+".ListShortcuts",
		map[string]dbus.Variant{},
		dbus.ObjectPath(session),
	)
	if err != nil {
		return nil, err
	}
	return boundShortcuts(results)
}

// ConfigureShortcuts calls ConfigureShortcuts(session o, parent_window s,
// options a{sv}), available from version 2. It does not use a Request.
func (g *GlobalShortcuts) ConfigureShortcuts(
	ctx context.Context,
	session port.ShortcutSessionHandle,
	parentWindow, activationToken string,
) error {
	options := map[string]dbus.Variant{}
	if activationToken != "" {
		options["activation_token"] = dbus.MakeVariant(activationToken)
	}
	call := g.client.conn.Object(portalDest, portalPath).CallWithContext(
		ctx, globalShortcutsIface+".ConfigureShortcuts", 0,
		dbus.ObjectPath(session), parentWindow, options,
	)
	if call.Err != nil {
		return fmt.Errorf("ConfigureShortcuts: %w", call.Err)
	}
	return nil
}

// Activations subscribes to Activated(session o, shortcut_id s,
// timestamp t, options a{sv}) for session.
func (g *GlobalShortcuts) Activations(ctx context.Context, session port.ShortcutSessionHandle) (<-chan port.ShortcutActivation, error) {
	sub, stop, err := g.client.watch(ctx, portalPath, globalShortcutsIface, "Activated")
	if err != nil {
		return nil, err
	}

	out := make(chan port.ShortcutActivation, 16)
	go func() {
		defer close(out)
		defer stop()

		log := logging.FromContext(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-sub.C:
				activation, forSession, err := parseActivated(sig)
				if err != nil {
					log.Warn().Err(err).Msg("global shortcuts: malformed activation")
					continue
				}
				if forSession != session {
					continue
				}
				select {
				case out <- activation:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// CloseSession calls org.freedesktop.portal.Session.Close on the session.
func (g *GlobalShortcuts) CloseSession(ctx context.Context, session port.ShortcutSessionHandle) error {
	err := g.client.conn.Object(portalDest, dbus.ObjectPath(session)).
		CallWithContext(ctx, sessionIface+".Close", 0).Err
	if err != nil {
		return fmt.Errorf("close session %s: %w", session, err)
	}
	return nil
}

func toSpec(s entity.Shortcut) shortcutSpec {
	options := map[string]dbus.Variant{
		"description": dbus.MakeVariant(s.Description),
	}
	if s.PreferredTrigger != "" {
		options["preferred_trigger"] = dbus.MakeVariant(s.PreferredTrigger)
	}
	return shortcutSpec{ID: string(s.ID), Options: options}
}

// sessionHandle extracts session_handle, which older portals send as a
// string instead of an object path.
func sessionHandle(results map[string]dbus.Variant) (port.ShortcutSessionHandle, error) {
	v, ok := results["session_handle"]
	if !ok {
		return "", fmt.Errorf("%w: no session_handle", ErrUnexpectedReply)
	}
	switch h := v.Value().(type) {
	case dbus.ObjectPath:
		return port.ShortcutSessionHandle(h), nil
	case string:
		return port.ShortcutSessionHandle(h), nil
	default:
		return "", fmt.Errorf("%w: session_handle is %s", ErrUnexpectedReply, v.Signature())
	}
}

func boundShortcuts(results map[string]dbus.Variant) ([]entity.BoundShortcut, error) {
	v, ok := results["shortcuts"]
	if !ok {
		return nil, nil
	}
	var specs []shortcutSpec
	if err := dbus.Store([]interface{}{v.Value()}, &specs); err != nil {
		return nil, fmt.Errorf("%w: shortcuts: %w", ErrUnexpectedReply, err)
	}

	out := make([]entity.BoundShortcut, 0, len(specs))
	for _, s := range specs {
		out = append(out, entity.BoundShortcut{
			ID:                 entity.ShortcutID(s.ID),
			Description:        stringOption(s.Options, "description"),
			TriggerDescription: stringOption(s.Options, "trigger_description"),
		})
	}
	return out, nil
}

func stringOption(options map[string]dbus.Variant, key string) string {
	v, ok := options[key]
	if !ok {
		return ""
	}
	s, _ := v.Value().(string)
	return s
}

func parseActivated(sig *dbus.Signal) (port.ShortcutActivation, port.ShortcutSessionHandle, error) {
	if len(sig.Body) < 3 {
		return port.ShortcutActivation{}, "", fmt.Errorf("%w: Activated has %d values", ErrUnexpectedReply, len(sig.Body))
	}
	session, ok := sig.Body[0].(dbus.ObjectPath)
	if !ok {
		return port.ShortcutActivation{}, "", fmt.Errorf("%w: session is %T", ErrUnexpectedReply, sig.Body[0])
	}
	id, ok := sig.Body[1].(string)
	if !ok {
		return port.ShortcutActivation{}, "", fmt.Errorf("%w: shortcut id is %T", ErrUnexpectedReply, sig.Body[1])
	}
	timestamp, _ := sig.Body[2].(uint64)
	return port.ShortcutActivation{
		ShortcutID: entity.ShortcutID(id),
		Timestamp:  timestamp,
	}, port.ShortcutSessionHandle(session), nil
}
