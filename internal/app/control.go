package app

import (
	"context"
	"errors"

	"github.com/bnema/keepmeawake/internal/cli/model"
	"github.com/bnema/keepmeawake/internal/domain/entity"
)

// Level implements control.Controller.
func (a *App) Level() entity.InhibitLevel {
	return a.controller.Level()
}

// SetLevel implements control.Controller. It runs on the main loop.
func (a *App) SetLevel(ctx context.Context, level entity.InhibitLevel) error {
	return a.invoke(ctx, func() error {
		return a.setLevel(level)
	})
}

// Toggle implements control.Controller. It runs on the main loop.
func (a *App) Toggle(ctx context.Context, target entity.InhibitLevel) (entity.InhibitLevel, error) {
	var level entity.InhibitLevel
	err := a.invoke(ctx, func() error {
		var err error
		level, err = a.toggle(target)
		return err
	})
	return level, err
}

// ListShortcuts implements control.Controller. It asks the service for the
// live bindings and refreshes the window.
func (a *App) ListShortcuts(ctx context.Context) ([]entity.BoundShortcut, error) {
	if a.session == nil {
		return nil, ErrShortcutsDisabled
	}
	bound, err := a.session.ListBoundShortcuts(ctx)
	if err != nil {
		return nil, err
	}
	a.publishShortcuts(bound)
	return bound, nil
}

// ConfigureShortcuts implements control.Controller.
func (a *App) ConfigureShortcuts(ctx context.Context) error {
	if a.session == nil {
		return ErrShortcutsDisabled
	}
	return a.session.Configure(ctx)
}

// invoke runs fn on the loop and waits for it, giving up when ctx is done or
// the application quits.
func (a *App) invoke(ctx context.Context, fn func() error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(a.life, cancel)
	defer stop()

	err := a.loop.Invoke(ctx, fn)
	if errors.Is(err, context.Canceled) && a.life.Err() != nil {
		return ErrShuttingDown
	}
	return err
}

// windowActions forwards window requests to the loop without blocking the
// window.
type windowActions struct {
	app *App
}

// WindowActions returns the actions the window triggers.
func (a *App) WindowActions() model.WindowActions {
	return windowActions{app: a}
}

func (w windowActions) SetLevel(level entity.InhibitLevel) {
	w.app.loop.Post(func() {
		_ = w.app.setLevel(level)
	})
}

func (w windowActions) Toggle(target entity.InhibitLevel) {
	w.app.loop.Post(func() {
		_, _ = w.app.toggle(target)
	})
}

func (w windowActions) RefreshShortcuts() {
	go func() {
		if _, err := w.app.ListShortcuts(w.app.life); err != nil {
			w.app.sendToWindow(model.StatusMsg{Err: err})
			return
		}
		w.app.sendToWindow(model.StatusMsg{Text: "Global shortcuts refreshed."})
	}()
}

func (w windowActions) ConfigureShortcuts() {
	go func() {
		if err := w.app.ConfigureShortcuts(w.app.life); err != nil {
			w.app.sendToWindow(model.StatusMsg{Err: err})
		}
	}()
}

func (w windowActions) Quit() {
	w.app.Quit()
}
