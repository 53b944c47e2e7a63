// Package portal talks to the XDG desktop portal over the D-Bus session bus.
package portal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/google/uuid"

	"github.com/bnema/keepmeawake/internal/logging"
)

const (
	portalDest   = "org.freedesktop.portal.Desktop"
	portalPath   = dbus.ObjectPath("/org/freedesktop/portal/desktop")
	requestIface = "org.freedesktop.portal.Request"
	sessionIface = "org.freedesktop.portal.Session"

	propertiesGet = "org.freedesktop.DBus.Properties.Get"

	tokenPrefix = "keepmeawake_"
)

// Response codes of org.freedesktop.portal.Request.Response.
const (
	responseSuccess   uint32 = 0
	responseCancelled uint32 = 1
)

var (
	// ErrCancelled is returned when the user dismissed a portal dialog.
	ErrCancelled = errors.New("portal request cancelled")
	// ErrRequestFailed is returned when the portal ended a request some other way.
	ErrRequestFailed = errors.New("portal request failed")
	// ErrUnexpectedReply is returned when a reply does not have the documented shape.
	ErrUnexpectedReply = errors.New("unexpected portal reply")
)

// ConnectSessionBus opens a private session bus connection whose signals
// are delivered strictly in order.
func ConnectSessionBus() (*dbus.Conn, error) {
	conn, err := dbus.ConnectSessionBus(dbus.WithSignalHandler(dbus.NewSequentialSignalHandler()))
	if err != nil {
		return nil, fmt.Errorf("connect to session bus: %w", err)
	}
	return conn, nil
}

// Client issues portal calls and routes their signals.
type Client struct {
	conn    *dbus.Conn
	signals chan *dbus.Signal
	router  *router
	sender  string
}

// NewClient starts routing signals received on conn. conn should be created
// with ConnectSessionBus so activation signals keep their order.
func NewClient(conn *dbus.Conn) *Client {
	signals := make(chan *dbus.Signal, 64)
	conn.Signal(signals)

	var unique string
	if names := conn.Names(); len(names) > 0 {
		unique = names[0]
	}

	return &Client{
		conn:    conn,
		signals: signals,
		router:  newRouter(signals),
		sender:  senderComponent(unique),
	}
}

// Conn returns the underlying connection.
func (c *Client) Conn() *dbus.Conn {
	return c.conn
}

// Close stops signal routing. The connection itself stays open.
func (c *Client) Close() {
	c.conn.RemoveSignal(c.signals)
	c.router.stop()
}

// Version reads the version property of a portal interface.
func (c *Client) Version(ctx context.Context, iface string) (uint32, error) {
	var version uint32
	err := c.conn.Object(portalDest, portalPath).
		CallWithContext(ctx, propertiesGet, 0, iface, "version").
		Store(&version)
	if err != nil {
		return 0, fmt.Errorf("read %s version: %w", iface, err)
	}
	return version, nil
}

// senderComponent turns a unique bus name like ":1.42" into the "1_42"
// form used in portal request and session paths.
func senderComponent(unique string) string {
	return strings.ReplaceAll(strings.TrimPrefix(unique, ":"), ".", "_")
}

// newToken returns a fresh handle token, valid as an object path element.
func newToken() string {
	return tokenPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (c *Client) requestPath(token string) dbus.ObjectPath {
	return dbus.ObjectPath("/org/freedesktop/portal/desktop/request/" + c.sender + "/" + token)
}

// watch subscribes to signal name on path, including the bus match rule.
// The returned stop function removes both.
func (c *Client) watch(ctx context.Context, path dbus.ObjectPath, iface, member string) (*subscription, func(), error) {
	opts := []dbus.MatchOption{
		dbus.WithMatchObjectPath(path),
		dbus.WithMatchInterface(iface),
		dbus.WithMatchMember(member),
	}
	sub := c.router.subscribe(matchSignal(path, iface+"."+member))
	if err := c.conn.AddMatchSignalContext(ctx, opts...); err != nil {
		sub.Close()
		return nil, nil, fmt.Errorf("add match for %s.%s: %w", iface, member, err)
	}
	stop := func() {
		sub.Close()
		if err := c.conn.RemoveMatchSignal(opts...); err != nil {
			logging.FromContext(ctx).Debug().Err(err).Str("path", string(path)).Msg("portal: failed to remove match")
		}
	}
	return sub, stop, nil
}

// request performs a portal method that replies through a Request object
// and waits for its Response. options must not be nil; the handle token is
// added to it.
func (c *Client) request(
	ctx context.Context,
	method string,
	options map[string]dbus.Variant,
	args ...interface{},
) (map[string]dbus.Variant, error) {
	log := logging.FromContext(ctx)

	token := newToken()
	options["handle_token"] = dbus.MakeVariant(token)
	expected := c.requestPath(token)

	// Subscribe before calling so a fast Response is never missed.
	sub, stop, err := c.watch(ctx, expected, requestIface, "Response")
	if err != nil {
		return nil, err
	}
	defer stop()

	var handle dbus.ObjectPath
	args = append(args, options)
	if err := c.conn.Object(portalDest, portalPath).CallWithContext(ctx, method, 0, args...).Store(&handle); err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}

	if handle != expected {
		// Old portals ignore handle_token.
		log.Debug().Str("expected", string(expected)).Str("handle", string(handle)).
			Msg("portal: request handle differs from token path")
		other, stopOther, err := c.watch(ctx, handle, requestIface, "Response")
		if err != nil {
			return nil, err
		}
		defer stopOther()
		sub = other
	}

	select {
	case <-ctx.Done():
		if err := c.conn.Object(portalDest, handle).Call(requestIface+".Close", 0).Err; err != nil {
			log.Debug().Err(err).Str("handle", string(handle)).Msg("portal: failed to close abandoned request")
		}
		return nil, ctx.Err()
	case sig := <-sub.C:
		code, results, err := parseResponse(sig)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", method, err)
		}
		switch code {
		case responseSuccess:
			return results, nil
		case responseCancelled:
			return nil, fmt.Errorf("%s: %w", method, ErrCancelled)
		default:
			return nil, fmt.Errorf("%s: %w (response %d)", method, ErrRequestFailed, code)
		}
	}
}

func parseResponse(sig *dbus.Signal) (uint32, map[string]dbus.Variant, error) {
	if len(sig.Body) != 2 {
		return 0, nil, fmt.Errorf("%w: response has %d values", ErrUnexpectedReply, len(sig.Body))
	}
	code, ok := sig.Body[0].(uint32)
	if !ok {
		return 0, nil, fmt.Errorf("%w: response code is %T", ErrUnexpectedReply, sig.Body[0])
	}
	results, ok := sig.Body[1].(map[string]dbus.Variant)
	if !ok {
		return 0, nil, fmt.Errorf("%w: response results are %T", ErrUnexpectedReply, sig.Body[1])
	}
	return code, results, nil
}
