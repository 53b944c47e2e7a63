// Package usecase contains application use cases that orchestrate domain logic.
package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/keepmeawake/internal/application/port"
	"github.com/bnema/keepmeawake/internal/domain/entity"
	"github.com/bnema/keepmeawake/internal/logging"
)

const (
	reasonSuspend        = "Keep Me Awake inhibits suspend at your request."
	reasonSuspendAndIdle = "Keep Me Awake inhibits suspend and idle at your request."
)

// InhibitReason returns the justification shown by the session for level.
func InhibitReason(level entity.InhibitLevel) string {
	if level == entity.InhibitSuspendAndIdle {
		return reasonSuspendAndIdle
	}
	return reasonSuspend
}

// cookieGuard owns one session inhibition and releases it exactly once.
type cookieGuard struct {
	inhibitor port.SessionInhibitor
	cookie    port.InhibitCookie
	flags     entity.InhibitFlags
	released  bool
}

func (g *cookieGuard) release(ctx context.Context) {
	if g.released {
		return
	}
	g.released = true

	log := logging.FromContext(ctx)
	log.Debug().Uint32("cookie", uint32(g.cookie)).Msg("inhibitor: dropping inhibit cookie")
	if err := g.inhibitor.Uninhibit(ctx, g.cookie); err != nil {
		log.Warn().Err(err).Uint32("cookie", uint32(g.cookie)).Msg("inhibitor: failed to uninhibit")
	}
}

// inhibitState is the keep-alive token and inhibit cookie held together.
// A nil *inhibitState means nothing is inhibited.
type inhibitState struct {
	hold   port.HoldGuard
	cookie *cookieGuard
}

func (s *inhibitState) level() entity.InhibitLevel {
	if s == nil {
		return entity.InhibitNone
	}
	return s.cookie.flags.Level()
}

// release drops the cookie first, then the hold, so the process never exits
// while the session still sees an inhibitor from it.
func (s *inhibitState) release(ctx context.Context) {
	s.cookie.release(ctx)
	s.hold.Release()
}

type levelObserver struct {
	id int
	fn func(entity.InhibitLevel)
}

// InhibitController owns at most one session inhibition plus the keep-alive
// token that goes with it.
type InhibitController struct {
	inhibitor port.SessionInhibitor
	keepAlive port.KeepAlive

	// setMu serializes Set, including observer notification.
	setMu sync.Mutex

	mu         sync.RWMutex
	state      *inhibitState
	observers  []levelObserver
	observerID int
}

// NewInhibitController creates a controller that inhibits nothing.
func NewInhibitController(inhibitor port.SessionInhibitor, keepAlive port.KeepAlive) *InhibitController {
	return &InhibitController{
		inhibitor: inhibitor,
		keepAlive: keepAlive,
	}
}

// Level returns what is currently inhibited.
func (c *InhibitController) Level() entity.InhibitLevel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.level()
}

// Subscribe registers fn to be called with the new level after every
// effective change. The returned function unregisters it.
// fn must not call Set.
func (c *InhibitController) Subscribe(fn func(entity.InhibitLevel)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.observerID++
	id := c.observerID
	c.observers = append(c.observers, levelObserver{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, o := range c.observers {
			if o.id == id {
				c.observers = append(c.observers[:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

// Set changes what is inhibited.
//
// Setting the current level is a no-op. Otherwise the current inhibition is
// released before a new one is requested, so two cookies are never held at
// once. If the session refuses the new inhibition the controller settles on
// InhibitNone and returns an error wrapping ErrAcquisitionFailed.
func (c *InhibitController) Set(ctx context.Context, level entity.InhibitLevel) error {
	if !level.Valid() {
		return fmt.Errorf("invalid inhibit level %d", int(level))
	}

	c.setMu.Lock()
	defer c.setMu.Unlock()

	log := logging.FromContext(ctx)

	previous := c.Level()
	if previous == level {
		return nil
	}
	log.Info().Str("from", previous.String()).Str("to", level.String()).Msg("inhibitor: changing inhibition")

	c.mu.Lock()
	old := c.state
	c.state = nil
	c.mu.Unlock()
	if old != nil {
		old.release(ctx)
	}

	var acquireErr error
	if level != entity.InhibitNone {
		state, err := c.acquire(ctx, level)
		if err != nil {
			log.Warn().Err(err).Str("level", level.String()).Msg("inhibitor: cannot inhibit, inhibiting nothing")
			acquireErr = err
		} else {
			c.mu.Lock()
			c.state = state
			c.mu.Unlock()
		}
	}

	if current := c.Level(); current != previous {
		c.notify(current)
	}
	return acquireErr
}

// Close releases any held inhibition.
func (c *InhibitController) Close(ctx context.Context) error {
	return c.Set(ctx, entity.InhibitNone)
}

func (c *InhibitController) acquire(ctx context.Context, level entity.InhibitLevel) (*inhibitState, error) {
	flags := level.Flags()
	hold := c.keepAlive.Hold()

	// Always NoWindow: a window-bound inhibition would end when the window
	// is closed, and the application keeps inhibiting without a window.
	cookie, err := c.inhibitor.Inhibit(ctx, port.NoWindow, flags, InhibitReason(level))
	if err != nil {
		hold.Release()
		return nil, fmt.Errorf("%w: %w", ErrAcquisitionFailed, err)
	}

	logging.FromContext(ctx).Debug().
		Uint32("cookie", uint32(cookie)).
		Str("flags", flags.String()).
		Msg("inhibitor: acquired inhibit cookie")

	return &inhibitState{
		hold: hold,
		cookie: &cookieGuard{
			inhibitor: c.inhibitor,
			cookie:    cookie,
			flags:     flags,
		},
	}, nil
}

func (c *InhibitController) notify(level entity.InhibitLevel) {
	c.mu.RLock()
	observers := make([]levelObserver, len(c.observers))
	copy(observers, c.observers)
	c.mu.RUnlock()

	for _, o := range observers {
		o.fn(level)
	}
}
