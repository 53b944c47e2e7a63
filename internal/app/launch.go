package app

import (
	"context"

	"github.com/bnema/keepmeawake/internal/cli/model"
	"github.com/bnema/keepmeawake/internal/cli/styles"
	"github.com/bnema/keepmeawake/internal/domain/entity"
	"github.com/bnema/keepmeawake/internal/infrastructure/config"
	"github.com/bnema/keepmeawake/internal/infrastructure/control"
	"github.com/bnema/keepmeawake/internal/infrastructure/env"
	"github.com/bnema/keepmeawake/internal/infrastructure/notify"
	"github.com/bnema/keepmeawake/internal/infrastructure/portal"
	"github.com/bnema/keepmeawake/internal/logging"
)

// LaunchOptions configure Launch.
type LaunchOptions struct {
	// NoWindow runs in the background only.
	NoWindow bool
}

// Launch connects to the desktop, claims the control bus name and runs the
// application until it quits. It returns control.ErrAlreadyRunning when
// another instance owns the bus name.
func Launch(ctx context.Context, cfg *config.Config, opts LaunchOptions) error {
	log := logging.FromContext(ctx)

	conn, err := portal.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	if running, err := control.NewClient(conn).Running(ctx); err == nil && running {
		return control.ErrAlreadyRunning
	}

	client := portal.NewClient(conn)
	defer client.Close()

	inhibitor, err := openInhibitor(ctx, cfg.Inhibit.Backend, env.IsFlatpak(), client)
	if err != nil {
		return err
	}
	defer func() {
		if err := inhibitor.Close(context.WithoutCancel(ctx)); err != nil {
			log.Warn().Err(err).Msg("app: failed to close inhibit backend")
		}
	}()

	deps := Deps{
		Inhibitor: inhibitor,
		Notifier:  notify.NewDesktop(cfg.Notifications.Desktop),
	}
	if cfg.Shortcuts.Enabled {
		deps.Shortcuts = portal.NewGlobalShortcuts(client)
	}
	if cfg.Application.RequestBackground {
		deps.Background = portal.NewBackground(client)
	}
	if !opts.NoWindow {
		theme := styles.NewTheme(cfg.Appearance.Accent)
		deps.Window = model.NewWindow(theme, env.ParentWindow(), env.ActivationToken())
	}

	level, err := entity.ParseInhibitLevel(cfg.Inhibit.DefaultLevel)
	if err != nil {
		log.Warn().Err(err).Msg("app: ignoring default level")
		level = entity.InhibitNone
	}

	a := New(ctx, deps, Options{
		DefaultLevel:      level,
		InactivityTimeout: cfg.Application.InactivityTimeout,
		Shortcuts:         entity.DeclaredShortcuts(cfg.Shortcuts.ToggleSuspend, cfg.Shortcuts.ToggleSuspendAndIdle),
	})

	server, err := control.Serve(ctx, conn, a)
	if err != nil {
		return err
	}
	defer func() {
		if err := server.Close(); err != nil {
			log.Debug().Err(err).Msg("app: failed to release bus name")
		}
	}()
	a.SetLevelEmitter(server)

	return a.Run(ctx)
}
