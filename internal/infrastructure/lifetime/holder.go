// Package lifetime keeps the process alive while keep-alive tokens are held.
//
// It mirrors GApplication's hold/release model: every open window and every
// long-lived background activity holds a token, and the process exits once
// the last token has been released and the inactivity timeout has elapsed.
package lifetime

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/keepmeawake/internal/application/port"
	"github.com/bnema/keepmeawake/internal/logging"
)

// Compile-time interface check.
var _ port.KeepAlive = (*Holder)(nil)

// Holder counts outstanding keep-alive tokens.
type Holder struct {
	ctx     context.Context
	mu      sync.Mutex
	count   int
	nextID  uint64
	changed chan struct{}
}

// NewHolder creates a holder with no outstanding tokens.
func NewHolder(ctx context.Context) *Holder {
	return &Holder{
		ctx:     logging.WithComponent(ctx, "lifetime"),
		changed: make(chan struct{}),
	}
}

// Hold acquires a new keep-alive token.
func (h *Holder) Hold() port.HoldGuard {
	h.mu.Lock()
	h.count++
	h.nextID++
	id := h.nextID
	count := h.count
	h.broadcastLocked()
	h.mu.Unlock()

	logging.FromContext(h.ctx).Debug().Uint64("hold", id).Int("holds", count).Msg("lifetime: hold acquired")
	return &holdGuard{holder: h, id: id}
}

// Count returns the number of outstanding tokens.
func (h *Holder) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}

func (h *Holder) release(id uint64) {
	h.mu.Lock()
	if h.count > 0 {
		h.count--
	}
	count := h.count
	h.broadcastLocked()
	h.mu.Unlock()

	logging.FromContext(h.ctx).Debug().Uint64("hold", id).Int("holds", count).Msg("lifetime: hold released")
}

// broadcastLocked wakes all waiters. Must be called with h.mu held.
func (h *Holder) broadcastLocked() {
	close(h.changed)
	h.changed = make(chan struct{})
}

func (h *Holder) snapshot() (int, <-chan struct{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count, h.changed
}

// WaitIdle blocks until no token has been held for the whole timeout, or ctx
// is done. A token acquired during the timeout restarts the wait.
func (h *Holder) WaitIdle(ctx context.Context, timeout time.Duration) error {
	for {
		count, changed := h.snapshot()
		if count > 0 {
			select {
			case <-changed:
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		timer := time.NewTimer(timeout)
		select {
		case <-timer.C:
			if n, _ := h.snapshot(); n == 0 {
				return nil
			}
		case <-changed:
			timer.Stop()
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

// holdGuard releases its token exactly once.
// It refers back to the holder only to release, never to extend its lifetime.
type holdGuard struct {
	holder *Holder
	id     uint64
	once   sync.Once
}

func (g *holdGuard) Release() {
	g.once.Do(func() {
		g.holder.release(g.id)
	})
}
