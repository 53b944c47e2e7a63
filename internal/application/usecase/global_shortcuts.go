package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/keepmeawake/internal/application/port"
	"github.com/bnema/keepmeawake/internal/domain/entity"
	"github.com/bnema/keepmeawake/internal/logging"
)

// MinConfigureShortcutsVersion is the first service version that supports
// opening the shortcut configuration surface.
const MinConfigureShortcutsVersion = 2

// ShortcutSessionState is the lifecycle state of a GlobalShortcutSession.
type ShortcutSessionState int

const (
	// ShortcutsUninitialized means Establish has not run yet.
	ShortcutsUninitialized ShortcutSessionState = iota
	// ShortcutsNegotiating means the portal handshake is in progress.
	ShortcutsNegotiating
	// ShortcutsBound means the shortcuts are bound and activations are delivered.
	ShortcutsBound
	// ShortcutsTornDown means the session is closed. It cannot be reused.
	ShortcutsTornDown
)

func (s ShortcutSessionState) String() string {
	switch s {
	case ShortcutsUninitialized:
		return "uninitialized"
	case ShortcutsNegotiating:
		return "negotiating"
	case ShortcutsBound:
		return "bound"
	case ShortcutsTornDown:
		return "torn-down"
	default:
		return fmt.Sprintf("ShortcutSessionState(%d)", int(s))
	}
}

// ActivationHandler is called for every activation of a bound shortcut, in
// the order the service emitted them, on the session's listener goroutine.
// It must not call Teardown; post to the main loop instead.
type ActivationHandler func(ctx context.Context, id entity.ShortcutID)

// GlobalShortcutSession manages the session with the global shortcut service.
//
// While bound, the session holds a keep-alive token so shortcuts keep working
// with no window open.
type GlobalShortcutSession struct {
	portal    port.GlobalShortcutsPortal
	keepAlive port.KeepAlive
	window    port.WindowIdentifier
	shortcuts []entity.Shortcut
	known     map[entity.ShortcutID]entity.Shortcut
	handler   ActivationHandler

	mu           sync.Mutex
	state        ShortcutSessionState
	handle       port.ShortcutSessionHandle
	version      uint32
	canConfigure bool
	bound        map[entity.ShortcutID]entity.BoundShortcut
	hold         port.HoldGuard
	stopListener context.CancelFunc
	listenerDone chan struct{}
}

// NewGlobalShortcutSession creates an uninitialized session for shortcuts.
func NewGlobalShortcutSession(
	portal port.GlobalShortcutsPortal,
	keepAlive port.KeepAlive,
	window port.WindowIdentifier,
	shortcuts []entity.Shortcut,
	handler ActivationHandler,
) *GlobalShortcutSession {
	known := make(map[entity.ShortcutID]entity.Shortcut, len(shortcuts))
	for _, s := range shortcuts {
		known[s.ID] = s
	}
	return &GlobalShortcutSession{
		portal:    portal,
		keepAlive: keepAlive,
		window:    window,
		shortcuts: shortcuts,
		known:     known,
		handler:   handler,
	}
}

// State returns the current lifecycle state.
func (s *GlobalShortcutSession) State() ShortcutSessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Version returns the negotiated protocol version, 0 before negotiation.
func (s *GlobalShortcutSession) Version() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// CanConfigure reports whether Configure is available.
func (s *GlobalShortcutSession) CanConfigure() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == ShortcutsBound && s.canConfigure
}

// BoundShortcuts returns the shortcuts as last reported by the service, in
// declaration order.
func (s *GlobalShortcutSession) BoundShortcuts() []entity.BoundShortcut {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderedLocked(s.bound)
}

// established holds everything created by a successful negotiation, before
// it is committed to the session.
type established struct {
	handle       port.ShortcutSessionHandle
	version      uint32
	bound        []entity.BoundShortcut
	activations  <-chan port.ShortcutActivation
	listenCtx    context.Context
	stopListener context.CancelFunc
}

// Establish negotiates, creates and binds the session, then starts listening
// for activations. It is a no-op when already bound. On failure nothing is
// left behind and a later call retries from scratch.
func (s *GlobalShortcutSession) Establish(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case ShortcutsBound:
		s.mu.Unlock()
		return nil
	case ShortcutsNegotiating:
		s.mu.Unlock()
		return ErrEstablishInProgress
	case ShortcutsTornDown:
		s.mu.Unlock()
		return ErrSessionTornDown
	}
	s.state = ShortcutsNegotiating
	s.mu.Unlock()

	log := logging.FromContext(ctx)

	est, err := s.negotiate(ctx)

	s.mu.Lock()
	if err != nil {
		if s.state == ShortcutsNegotiating {
			s.state = ShortcutsUninitialized
		}
		s.mu.Unlock()
		log.Warn().Err(err).Msg("global shortcuts: establishing session failed")
		return err
	}
	if s.state != ShortcutsNegotiating {
		// Torn down while we were waiting on the service.
		s.mu.Unlock()
		s.abort(ctx, est)
		return ErrSessionTornDown
	}

	s.handle = est.handle
	s.version = est.version
	s.canConfigure = est.version >= MinConfigureShortcutsVersion
	s.bound = make(map[entity.ShortcutID]entity.BoundShortcut, len(est.bound))
	for _, b := range est.bound {
		s.bound[b.ID] = b
	}
	s.stopListener = est.stopListener
	s.listenerDone = make(chan struct{})
	go s.listen(est, s.listenerDone)

	s.hold = s.keepAlive.Hold()
	s.state = ShortcutsBound
	s.mu.Unlock()

	log.Info().
		Str("session", string(est.handle)).
		Uint32("version", est.version).
		Int("shortcuts", len(est.bound)).
		Msg("global shortcuts: session bound")
	return nil
}

func (s *GlobalShortcutSession) negotiate(ctx context.Context) (*established, error) {
	log := logging.FromContext(ctx)

	version, err := s.portal.Version(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: query version: %w", ErrNegotiationFailed, err)
	}
	if version < MinConfigureShortcutsVersion {
		log.Info().
			Uint32("version", version).
			Int("required", MinConfigureShortcutsVersion).
			Msg("global shortcuts: service too old to configure shortcuts")
	}

	handle, err := s.portal.CreateSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create session: %w", ErrNegotiationFailed, err)
	}
	est := &established{handle: handle, version: version}

	est.bound, err = s.portal.BindShortcuts(ctx, handle, s.window.ParentWindow(), s.shortcuts)
	if err != nil {
		s.abort(ctx, est)
		return nil, fmt.Errorf("%w: %w", ErrBindingFailed, err)
	}

	// The listener outlives this call; only Teardown stops it.
	est.listenCtx, est.stopListener = context.WithCancel(
		logging.WithComponent(context.WithoutCancel(ctx), "global-shortcuts"),
	)
	est.activations, err = s.portal.Activations(est.listenCtx, handle)
	if err != nil {
		s.abort(ctx, est)
		return nil, fmt.Errorf("%w: subscribe to activations: %w", ErrBindingFailed, err)
	}
	return est, nil
}

// abort releases what a negotiation created without committing it.
func (s *GlobalShortcutSession) abort(ctx context.Context, est *established) {
	if est.stopListener != nil {
		est.stopListener()
	}
	if err := s.portal.CloseSession(ctx, est.handle); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Str("session", string(est.handle)).
			Msg("global shortcuts: failed to close abandoned session")
	}
}

func (s *GlobalShortcutSession) listen(est *established, done chan<- struct{}) {
	defer close(done)
	ctx := est.listenCtx
	log := logging.FromContext(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case activation, ok := <-est.activations:
			if !ok {
				log.Debug().Msg("global shortcuts: activation stream closed")
				return
			}
			if ctx.Err() != nil {
				return
			}
			if _, known := s.known[activation.ShortcutID]; !known {
				log.Warn().
					Err(ErrUnknownActivationID).
					Str("shortcut", string(activation.ShortcutID)).
					Msg("global shortcuts: ignoring activation")
				continue
			}
			log.Debug().Str("shortcut", string(activation.ShortcutID)).Msg("global shortcuts: activated")
			s.handler(ctx, activation.ShortcutID)
		}
	}
}

// Configure opens the service's shortcut configuration surface and waits
// until it is done. It is rejected locally when the session is not bound or
// the negotiated version is too old.
func (s *GlobalShortcutSession) Configure(ctx context.Context) error {
	s.mu.Lock()
	if s.state != ShortcutsBound {
		s.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrConfigureFailed, ErrNotBound)
	}
	if !s.canConfigure {
		version := s.version
		s.mu.Unlock()
		return fmt.Errorf("%w: %w (version %d)", ErrConfigureFailed, ErrConfigureUnsupported, version)
	}
	handle := s.handle
	s.mu.Unlock()

	token, focused := s.window.ActivationToken()
	if !focused {
		token = ""
	}
	if err := s.portal.ConfigureShortcuts(ctx, handle, s.window.ParentWindow(), token); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigureFailed, err)
	}
	return nil
}

// ListBoundShortcuts asks the service for the triggers currently assigned
// to the bound shortcuts, which may differ from the preferred ones.
func (s *GlobalShortcutSession) ListBoundShortcuts(ctx context.Context) ([]entity.BoundShortcut, error) {
	s.mu.Lock()
	if s.state != ShortcutsBound {
		s.mu.Unlock()
		return nil, ErrNotBound
	}
	handle := s.handle
	s.mu.Unlock()

	live, err := s.portal.ListShortcuts(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("list shortcuts: %w", err)
	}

	byID := make(map[entity.ShortcutID]entity.BoundShortcut, len(live))
	for _, b := range live {
		byID[b.ID] = b
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == ShortcutsBound && s.handle == handle {
		s.bound = byID
	}
	return s.orderedLocked(byID), nil
}

// orderedLocked returns the declared shortcuts present in bound, in
// declaration order, falling back to declared descriptions.
func (s *GlobalShortcutSession) orderedLocked(bound map[entity.ShortcutID]entity.BoundShortcut) []entity.BoundShortcut {
	out := make([]entity.BoundShortcut, 0, len(bound))
	for _, declared := range s.shortcuts {
		b, ok := bound[declared.ID]
		if !ok {
			continue
		}
		if b.Description == "" {
			b.Description = declared.Description
		}
		out = append(out, b)
	}
	return out
}

// Teardown stops the listener, closes the session and releases the
// keep-alive token. It is safe to call repeatedly and on a session that was
// never established. The session cannot be established again afterwards.
func (s *GlobalShortcutSession) Teardown(ctx context.Context) {
	s.mu.Lock()
	previous := s.state
	s.state = ShortcutsTornDown
	stop, done := s.stopListener, s.listenerDone
	handle, hold := s.handle, s.hold
	s.stopListener, s.listenerDone = nil, nil
	s.handle, s.hold = "", nil
	s.bound = nil
	s.canConfigure = false
	s.mu.Unlock()

	if stop != nil {
		stop()
		<-done
	}
	if handle != "" {
		if err := s.portal.CloseSession(ctx, handle); err != nil {
			logging.FromContext(ctx).Debug().Err(err).Str("session", string(handle)).
				Msg("global shortcuts: failed to close session")
		}
	}
	if hold != nil {
		hold.Release()
	}

	if previous != ShortcutsTornDown {
		logging.FromContext(ctx).Debug().Str("from", previous.String()).Msg("global shortcuts: torn down")
	}
}
