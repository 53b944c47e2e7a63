// Package app coordinates inhibition, global shortcuts, the terminal window
// and the control interface on a single main loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/keepmeawake/internal/application/port"
	"github.com/bnema/keepmeawake/internal/application/usecase"
	"github.com/bnema/keepmeawake/internal/cli/model"
	"github.com/bnema/keepmeawake/internal/domain/build"
	"github.com/bnema/keepmeawake/internal/domain/entity"
	"github.com/bnema/keepmeawake/internal/infrastructure/control"
	"github.com/bnema/keepmeawake/internal/infrastructure/lifetime"
	"github.com/bnema/keepmeawake/internal/logging"
	"github.com/bnema/keepmeawake/internal/mainloop"
)

const (
	backgroundReason = "Keep Me Awake keeps inhibiting suspend and idle after its window is closed."
	shutdownTimeout  = 5 * time.Second
	notifyKey        = "notify-level"
)

var (
	// ErrShortcutsDisabled means no global shortcut session is configured.
	ErrShortcutsDisabled = errors.New("global shortcuts are disabled")
	// ErrShuttingDown means the application quit before the action ran.
	ErrShuttingDown = errors.New("keepmeawake is shutting down")
)

// Compile-time interface check.
var _ control.Controller = (*App)(nil)

// Deps are the collaborators of the coordinator.
type Deps struct {
	Inhibitor port.SessionInhibitor
	// Shortcuts is nil when global shortcuts are disabled.
	Shortcuts port.GlobalShortcutsPortal
	// Background is nil when the platform is not asked for background permission.
	Background port.BackgroundRequester
	Notifier   port.Notifier
	// Window is nil when running without a window.
	Window Window
}

// Options tune the coordinator.
type Options struct {
	DefaultLevel      entity.InhibitLevel
	InactivityTimeout time.Duration
	Shortcuts         []entity.Shortcut
}

// App is the coordinator. All state changes run on its main loop.
type App struct {
	ctx  context.Context
	deps Deps
	opts Options

	loop       *mainloop.Loop
	coalescer  *mainloop.Coalescer
	holder     *lifetime.Holder
	controller *usecase.InhibitController
	session    *usecase.GlobalShortcutSession
	window     Window
	identifier port.WindowIdentifier
	// windowDone is set once the window's Run has returned. Until then the
	// window counts as shown, including before it reaches the screen.
	windowDone atomic.Bool

	// life ends when Quit is called or Run returns.
	life context.Context
	end  context.CancelFunc

	emitterMu sync.Mutex
	emitter   LevelEmitter
}

// New creates the coordinator. ctx carries the logger.
func New(ctx context.Context, deps Deps, opts Options) *App {
	ctx = logging.WithComponent(ctx, "app")
	life, end := context.WithCancel(context.WithoutCancel(ctx))

	a := &App{
		ctx:    ctx,
		deps:   deps,
		opts:   opts,
		loop:   mainloop.New(),
		holder: lifetime.NewHolder(ctx),
		window: deps.Window,
		life:   life,
		end:    end,
	}
	a.coalescer = mainloop.NewCoalescer(a.loop.Post)
	a.controller = usecase.NewInhibitController(deps.Inhibitor, a.holder)

	a.identifier = noWindow{}
	if deps.Window != nil {
		a.identifier = deps.Window
	}
	if deps.Shortcuts != nil {
		a.session = usecase.NewGlobalShortcutSession(
			deps.Shortcuts, a.holder, a.identifier, opts.Shortcuts, a.onShortcut,
		)
	}
	return a
}

// SetLevelEmitter sets where level changes are broadcast. Call before Run.
func (a *App) SetLevelEmitter(e LevelEmitter) {
	a.emitterMu.Lock()
	a.emitter = e
	a.emitterMu.Unlock()
}

// Holds returns the number of outstanding keep-alive tokens.
func (a *App) Holds() int {
	return a.holder.Count()
}

// Run starts the application and blocks until it quits: on Quit, when ctx
// is done, or once no window is open and nothing has been held for the
// inactivity timeout.
func (a *App) Run(ctx context.Context) error {
	log := logging.FromContext(a.ctx)
	defer a.end()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(a.life, cancel)
	defer stop()

	unsubscribe := a.controller.Subscribe(a.onLevelChanged)
	defer unsubscribe()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return ignoreCancel(a.loop.Run(gctx))
	})

	if a.opts.DefaultLevel != entity.InhibitNone {
		level := a.opts.DefaultLevel
		a.loop.Post(func() { a.setLevel(level) })
	}

	if a.window != nil {
		hold := a.holder.Hold()
		g.Go(func() error {
			defer hold.Release()
			quit, err := a.window.Run(gctx, a.WindowActions(), a.controller.Level())
			a.windowDone.Store(true)
			if err != nil {
				return err
			}
			if quit {
				a.Quit()
				return nil
			}
			if gctx.Err() != nil {
				return nil
			}
			log.Info().Msg("app: window closed, continuing in the background")
			return nil
		})
	}

	startupHold := a.holder.Hold()
	g.Go(func() error {
		defer startupHold.Release()
		a.startup(gctx)
		return nil
	})

	g.Go(func() error {
		if err := a.holder.WaitIdle(gctx, a.opts.InactivityTimeout); err != nil {
			return nil
		}
		log.Info().Dur("timeout", a.opts.InactivityTimeout).Msg("app: nothing to keep awake, exiting")
		a.Quit()
		return nil
	})

	err := g.Wait()
	a.shutdown()
	if err != nil {
		return fmt.Errorf("run %s: %w", build.AppName, err)
	}
	return nil
}

// Quit stops the application. It may be called from any goroutine.
func (a *App) Quit() {
	logging.FromContext(a.ctx).Debug().Msg("app: quit requested")
	a.end()
}

// startup runs the blocking service handshakes in order, off the loop.
func (a *App) startup(ctx context.Context) {
	log := logging.FromContext(a.ctx)

	if a.window != nil {
		select {
		case <-a.window.Ready():
		case <-ctx.Done():
			return
		}
	}

	if a.deps.Background != nil {
		granted, err := a.deps.Background.RequestBackground(ctx, a.identifier.ParentWindow(), backgroundReason)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("app: background request failed")
		case !granted:
			log.Warn().Msg("app: not allowed to run in the background")
			a.sendToWindow(model.StatusMsg{Text: "Not allowed to run in the background."})
		default:
			log.Debug().Msg("app: background permission granted")
		}
	}

	if ctx.Err() != nil || a.session == nil {
		return
	}

	if err := a.session.Establish(ctx); err != nil {
		log.Warn().Err(err).Msg("app: global shortcuts unavailable")
		return
	}
	a.publishShortcuts(a.session.BoundShortcuts())
}

// shutdown releases everything Run acquired.
func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(a.ctx), shutdownTimeout)
	defer cancel()

	a.coalescer.Destroy()
	if a.session != nil {
		a.session.Teardown(ctx)
	}
	if err := a.controller.Close(ctx); err != nil {
		logging.FromContext(a.ctx).Warn().Err(err).Msg("app: failed to release inhibition")
	}
}

// setLevel runs on the loop.
func (a *App) setLevel(level entity.InhibitLevel) error {
	err := a.controller.Set(a.ctx, level)
	if err != nil {
		current := a.controller.Level()
		a.sendToWindow(model.LevelChangedMsg{Level: current})
		a.sendToWindow(model.StatusMsg{Err: err})
		if !a.windowOpen() {
			a.notify("Cannot keep awake", err.Error())
		}
	}
	return err
}

// toggle runs on the loop.
func (a *App) toggle(target entity.InhibitLevel) (entity.InhibitLevel, error) {
	err := a.setLevel(a.controller.Level().Toggle(target))
	return a.controller.Level(), err
}

// onLevelChanged is the controller observer; it runs inside Set, on the loop.
func (a *App) onLevelChanged(level entity.InhibitLevel) {
	a.sendToWindow(model.LevelChangedMsg{Level: level})

	a.emitterMu.Lock()
	emitter := a.emitter
	a.emitterMu.Unlock()
	if emitter != nil {
		if err := emitter.EmitLevelChanged(level); err != nil {
			logging.FromContext(a.ctx).Debug().Err(err).Msg("app: failed to emit level change")
		}
	}

	if !a.windowOpen() {
		a.coalescer.Post(notifyKey, func() {
			a.notify(build.AppName, levelMessage(a.controller.Level()))
		})
	}
}

// onShortcut runs on the shortcut session's listener goroutine.
func (a *App) onShortcut(_ context.Context, id entity.ShortcutID) {
	target, ok := id.Target()
	if !ok {
		return
	}
	logging.FromContext(a.ctx).Debug().Str("shortcut", string(id)).Msg("app: shortcut activated")
	a.loop.Post(func() {
		_, _ = a.toggle(target)
	})
}

func (a *App) notify(title, message string) {
	if a.deps.Notifier == nil {
		return
	}
	go func() {
		if err := a.deps.Notifier.Notify(a.ctx, title, message); err != nil {
			logging.FromContext(a.ctx).Warn().Err(err).Msg("app: notification failed")
		}
	}()
}

func (a *App) publishShortcuts(bound []entity.BoundShortcut) {
	if a.session == nil {
		a.sendToWindow(model.ShortcutsMsg{})
		return
	}
	a.sendToWindow(model.ShortcutsMsg{
		Available:    a.session.State() == usecase.ShortcutsBound,
		CanConfigure: a.session.CanConfigure(),
		Shortcuts:    bound,
	})
}

func (a *App) sendToWindow(msg any) {
	if a.window != nil {
		a.window.Send(msg)
	}
}

func (a *App) windowOpen() bool {
	return a.window != nil && !a.windowDone.Load()
}

func levelMessage(level entity.InhibitLevel) string {
	switch level {
	case entity.InhibitSuspend:
		return "Inhibiting suspend."
	case entity.InhibitSuspendAndIdle:
		return "Inhibiting suspend and idle."
	default:
		return "Inhibiting nothing."
	}
}

func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
