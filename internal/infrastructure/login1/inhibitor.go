// Package login1 inhibits sleep and idle through systemd-logind.
package login1

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/bnema/keepmeawake/internal/application/port"
	"github.com/bnema/keepmeawake/internal/domain/entity"
	"github.com/bnema/keepmeawake/internal/logging"
)

const (
	login1Dest     = "org.freedesktop.login1"
	login1Path     = dbus.ObjectPath("/org/freedesktop/login1")
	managerInhibit = "org.freedesktop.login1.Manager.Inhibit"

	modeBlock = "block"
)

// ErrNothingToInhibit is returned for flags logind has no lock type for.
var ErrNothingToInhibit = errors.New("no logind lock type for flags")

// Compile-time interface check.
var _ port.SessionInhibitor = (*Inhibitor)(nil)

// Inhibitor takes logind inhibitor locks. A lock is held for as long as its
// file descriptor stays open.
type Inhibitor struct {
	conn *dbus.Conn
	who  string

	mu     sync.Mutex
	next   port.InhibitCookie
	active map[port.InhibitCookie]int
}

// Connect opens the system bus and returns an inhibitor that identifies
// itself as who.
func Connect(who string) (*Inhibitor, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("connect to system bus: %w", err)
	}
	return New(conn, who), nil
}

// New creates an inhibitor on an existing system bus connection.
func New(conn *dbus.Conn, who string) *Inhibitor {
	return &Inhibitor{
		conn:   conn,
		who:    who,
		active: make(map[port.InhibitCookie]int),
	}
}

// What maps inhibit flags to a logind "what" string such as "sleep:idle".
func What(flags entity.InhibitFlags) string {
	var what []string
	if flags.Has(entity.InhibitFlagSuspend) {
		what = append(what, "sleep")
	}
	if flags.Has(entity.InhibitFlagIdle) {
		what = append(what, "idle")
	}
	return strings.Join(what, ":")
}

// Inhibit takes a blocking lock. logind has no notion of windows, so window
// is ignored.
func (i *Inhibitor) Inhibit(ctx context.Context, _ string, flags entity.InhibitFlags, reason string) (port.InhibitCookie, error) {
	what := What(flags)
	if what == "" {
		return 0, fmt.Errorf("logind inhibit %s: %w", flags, ErrNothingToInhibit)
	}

	var fd dbus.UnixFD
	err := i.conn.Object(login1Dest, login1Path).
		CallWithContext(ctx, managerInhibit, 0, what, i.who, reason, modeBlock).
		Store(&fd)
	if err != nil {
		return 0, fmt.Errorf("logind inhibit %s: %w", what, err)
	}

	i.mu.Lock()
	i.next++
	cookie := i.next
	i.active[cookie] = int(fd)
	i.mu.Unlock()

	logging.FromContext(ctx).Info().
		Str("what", what).
		Int("fd", int(fd)).
		Msg("logind inhibitor: lock taken")
	return cookie, nil
}

// Uninhibit releases the lock behind cookie by closing its descriptor.
func (i *Inhibitor) Uninhibit(ctx context.Context, cookie port.InhibitCookie) error {
	i.mu.Lock()
	fd, ok := i.active[cookie]
	delete(i.active, cookie)
	i.mu.Unlock()

	if !ok {
		return fmt.Errorf("logind uninhibit %d: %w", cookie, port.ErrUnknownCookie)
	}
	if err := closeFD(fd); err != nil {
		return fmt.Errorf("logind uninhibit: close fd %d: %w", fd, err)
	}
	logging.FromContext(ctx).Info().Int("fd", fd).Msg("logind inhibitor: lock released")
	return nil
}

// Close releases all locks and closes the bus connection.
func (i *Inhibitor) Close(ctx context.Context) error {
	i.mu.Lock()
	cookies := make([]port.InhibitCookie, 0, len(i.active))
	for cookie := range i.active {
		cookies = append(cookies, cookie)
	}
	i.mu.Unlock()

	var errs []error
	for _, cookie := range cookies {
		if err := i.Uninhibit(ctx, cookie); err != nil {
			errs = append(errs, err)
		}
	}
	if err := i.conn.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
