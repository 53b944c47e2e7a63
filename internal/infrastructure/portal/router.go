package portal

import (
	"sync"

	"github.com/godbus/dbus/v5"
)

// router fans signals from the connection out to subscribers in arrival
// order. A subscriber that stops reading only stalls delivery until it
// unsubscribes.
type router struct {
	mu     sync.Mutex
	subs   []*subscription
	nextID uint64
	quit   chan struct{}
	once   sync.Once
	done   chan struct{}
}

type subscription struct {
	id    uint64
	match func(*dbus.Signal) bool
	C     chan *dbus.Signal
	gone  chan struct{}
	once  sync.Once
	owner *router
}

func newRouter(in <-chan *dbus.Signal) *router {
	r := &router{
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go r.run(in)
	return r
}

func (r *router) run(in <-chan *dbus.Signal) {
	defer close(r.done)
	for {
		var sig *dbus.Signal
		select {
		case <-r.quit:
			return
		case s, ok := <-in:
			if !ok {
				return
			}
			sig = s
		}
		if sig == nil {
			continue
		}
		for _, sub := range r.matching(sig) {
			select {
			case sub.C <- sig:
			case <-sub.gone:
			case <-r.quit:
				return
			}
		}
	}
}

// stop ends routing and waits for the router goroutine to exit.
func (r *router) stop() {
	r.once.Do(func() { close(r.quit) })
	<-r.done
}

func (r *router) matching(sig *dbus.Signal) []*subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*subscription
	for _, sub := range r.subs {
		if sub.match(sig) {
			out = append(out, sub)
		}
	}
	return out
}

func (r *router) subscribe(match func(*dbus.Signal) bool) *subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	sub := &subscription{
		id:    r.nextID,
		match: match,
		C:     make(chan *dbus.Signal, 16),
		gone:  make(chan struct{}),
		owner: r,
	}
	r.subs = append(r.subs, sub)
	return sub
}

// Close stops delivery to the subscription. Safe to call more than once.
func (s *subscription) Close() {
	s.once.Do(func() {
		r := s.owner
		r.mu.Lock()
		for i, sub := range r.subs {
			if sub.id == s.id {
				r.subs = append(r.subs[:i], r.subs[i+1:]...)
				break
			}
		}
		r.mu.Unlock()
		close(s.gone)
	})
}

func matchSignal(path dbus.ObjectPath, name string) func(*dbus.Signal) bool {
	return func(sig *dbus.Signal) bool {
		return sig.Path == path && sig.Name == name
	}
}
