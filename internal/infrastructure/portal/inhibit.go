package portal

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/bnema/keepmeawake/internal/application/port"
	"github.com/bnema/keepmeawake/internal/domain/entity"
	"github.com/bnema/keepmeawake/internal/logging"
)

const inhibitIface = "org.freedesktop.portal.Inhibit"

// Compile-time interface check.
var _ port.SessionInhibitor = (*Inhibitor)(nil)

type inhibition struct {
	handle dbus.ObjectPath
	// complete is set once the portal answered the request; the Request
	// object is gone then and must not be closed.
	complete bool
	stop     func()
}

// Inhibitor implements session inhibition through org.freedesktop.portal.Inhibit.
// It works inside sandboxes and on any compositor with a portal backend.
type Inhibitor struct {
	client *Client

	mu     sync.Mutex
	next   port.InhibitCookie
	active map[port.InhibitCookie]*inhibition
}

// NewInhibitor creates an inhibitor using client.
func NewInhibitor(client *Client) *Inhibitor {
	return &Inhibitor{
		client: client,
		active: make(map[port.InhibitCookie]*inhibition),
	}
}

// Available reports whether the Inhibit portal answers.
func (p *Inhibitor) Available(ctx context.Context) bool {
	version, err := p.client.Version(ctx, inhibitIface)
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("portal inhibitor: portal not available")
		return false
	}
	logging.FromContext(ctx).Debug().Uint32("version", version).Msg("portal inhibitor: portal available")
	return true
}

// Inhibit calls Inhibit(window s, flags u, options a{sv}) -> handle o and
// returns a local cookie for the request handle.
func (p *Inhibitor) Inhibit(ctx context.Context, window string, flags entity.InhibitFlags, reason string) (port.InhibitCookie, error) {
	log := logging.FromContext(ctx)

	token := newToken()
	expected := p.client.requestPath(token)
	sub, stop, err := p.client.watch(ctx, expected, requestIface, "Response")
	if err != nil {
		return 0, fmt.Errorf("portal inhibit: %w", err)
	}

	options := map[string]dbus.Variant{
		"handle_token": dbus.MakeVariant(token),
		"reason":       dbus.MakeVariant(reason),
	}
	var handle dbus.ObjectPath
	err = p.client.conn.Object(portalDest, portalPath).
		CallWithContext(ctx, inhibitIface+".Inhibit", 0, window, uint32(flags), options).
		Store(&handle)
	if err != nil {
		stop()
		return 0, fmt.Errorf("portal inhibit: %w", err)
	}

	inh := &inhibition{handle: handle, stop: stop}

	p.mu.Lock()
	p.next++
	cookie := p.next
	p.active[cookie] = inh
	p.mu.Unlock()

	if handle == expected {
		go p.watchForResponse(logging.WithComponent(context.WithoutCancel(ctx), "portal-inhibitor"), cookie, sub)
	} else {
		stop()
	}

	log.Info().
		Str("handle", string(handle)).
		Str("flags", flags.String()).
		Str("reason", reason).
		Msg("portal inhibitor: activated")
	return cookie, nil
}

// watchForResponse marks the inhibition complete when the portal answers
// the request. Some portals answer Inhibit right away, which removes the
// Request object, so it must not be closed later.
func (p *Inhibitor) watchForResponse(ctx context.Context, cookie port.InhibitCookie, sub *subscription) {
	var sig *dbus.Signal
	select {
	case sig = <-sub.C:
	case <-sub.gone:
		return
	}

	code, _, err := parseResponse(sig)
	log := logging.FromContext(ctx)

	p.mu.Lock()
	if inh, found := p.active[cookie]; found {
		inh.complete = true
	}
	p.mu.Unlock()

	switch {
	case err != nil:
		log.Debug().Err(err).Msg("portal inhibitor: malformed response")
	case code != responseSuccess:
		log.Warn().Uint32("response", code).Msg("portal inhibitor: request ended by portal")
	default:
		log.Debug().Uint32("cookie", uint32(cookie)).Msg("portal inhibitor: request completed by portal")
	}
}

// Uninhibit closes the request behind cookie.
func (p *Inhibitor) Uninhibit(ctx context.Context, cookie port.InhibitCookie) error {
	p.mu.Lock()
	inh, ok := p.active[cookie]
	delete(p.active, cookie)
	p.mu.Unlock()

	if !ok {
		return fmt.Errorf("portal uninhibit %d: %w", cookie, port.ErrUnknownCookie)
	}
	inh.stop()

	p.mu.Lock()
	complete := inh.complete
	p.mu.Unlock()

	log := logging.FromContext(ctx)
	if complete {
		log.Info().Msg("portal inhibitor: deactivated (completed by portal)")
		return nil
	}
	if err := p.client.conn.Object(portalDest, inh.handle).CallWithContext(ctx, requestIface+".Close", 0).Err; err != nil {
		return fmt.Errorf("portal uninhibit: %w", err)
	}
	log.Info().Str("handle", string(inh.handle)).Msg("portal inhibitor: deactivated")
	return nil
}

// Close releases every inhibition still held.
func (p *Inhibitor) Close(ctx context.Context) error {
	p.mu.Lock()
	cookies := make([]port.InhibitCookie, 0, len(p.active))
	for cookie := range p.active {
		cookies = append(cookies, cookie)
	}
	p.mu.Unlock()

	var errs []error
	for _, cookie := range cookies {
		if err := p.Uninhibit(ctx, cookie); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
