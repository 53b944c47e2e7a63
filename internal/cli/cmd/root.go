// Package cmd provides Cobra CLI commands for keepmeawake.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	core "github.com/bnema/keepmeawake/internal/app"
	"github.com/bnema/keepmeawake/internal/cli"
	"github.com/bnema/keepmeawake/internal/cli/styles"
	"github.com/bnema/keepmeawake/internal/domain/build"
	"github.com/bnema/keepmeawake/internal/infrastructure/control"
	"github.com/bnema/keepmeawake/internal/logging"
)

var (
	app       *cli.App
	buildInfo build.Info
	noWindow  bool
	rootCmd   = &cobra.Command{
		Use:   "keepmeawake",
		Short: "Keep your desktop session from suspending or going idle",
		Long: `Keep Me Awake - inhibit suspend and idle on the desktop session.

Running keepmeawake without a subcommand starts the application and shows a
small terminal window to pick what to inhibit:

  none              let the session suspend and go idle
  suspend           keep the system from suspending
  suspend-and-idle  also keep the screen from blanking

Closing the window keeps the application running in the background for as
long as something is inhibited. The subcommands drive the running instance
over the session bus.

Examples:
  keepmeawake                       # Start and show the window
  keepmeawake --no-window &         # Start in the background
  keepmeawake set suspend           # Inhibit suspend on the running instance
  keepmeawake toggle suspend-and-idle`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "gen-docs":
				return nil
			}

			var err error
			app, err = cli.NewApp(cli.AppOptions{
				LogToFile: cmd == cmd.Root() && !noWindow,
			})
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
		RunE: runRoot,
	}
)

func init() {
	rootCmd.Flags().BoolVar(&noWindow, "no-window", false, "Run in the background without showing the window")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

func runRoot(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	ctx, stop := signal.NotifyContext(app.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer logging.RecoverPanic(ctx)

	log := logging.FromContext(ctx)
	log.Info().
		Str("version", app.BuildInfo.Version).
		Str("config", app.ConfigFile()).
		Bool("window", !noWindow).
		Msg("cmd: starting")

	app.WatchConfig()

	err := core.Launch(ctx, app.Config, core.LaunchOptions{NoWindow: noWindow})
	if errors.Is(err, control.ErrAlreadyRunning) {
		return showRunning()
	}
	return err
}

// showRunning reports on the instance that already owns the bus name.
func showRunning() error {
	renderer := styles.NewStatusRenderer(app.Theme)
	fmt.Println(renderer.RenderInfo("keepmeawake is already running"))
	return withClient(func(c *control.Client) error {
		level, err := c.GetLevel(app.Ctx())
		if err != nil {
			return err
		}
		fmt.Println(renderer.RenderLevel(level))
		return nil
	})
}
