// Package cli holds what every command needs: configuration, theme and a
// logger carried in a context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/bnema/keepmeawake/internal/cli/styles"
	"github.com/bnema/keepmeawake/internal/domain/build"
	"github.com/bnema/keepmeawake/internal/infrastructure/config"
	"github.com/bnema/keepmeawake/internal/logging"
)

const logFileName = "keepmeawake.log"

// AppOptions tune NewApp.
type AppOptions struct {
	// LogToFile sends logs to the state directory instead of stderr, for
	// when the terminal shows the window.
	LogToFile bool
}

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Theme     *styles.Theme
	BuildInfo build.Info

	configs  *config.Manager
	ctx      context.Context
	setLevel func(zerolog.Level)
	logFile  io.Closer
	logPath  string
}

// NewApp loads the configuration and sets up logging.
func NewApp(opts AppOptions) (*App, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, err
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.Logging.Level)
	logCfg.Format = cfg.Logging.Format
	logCfg.TimeFormat = logging.ConsoleTimeFormat

	a := &App{
		Config:  cfg,
		Theme:   styles.NewTheme(cfg.Appearance.Accent),
		configs: mgr,
	}

	if opts.LogToFile {
		stateDir, err := config.GetStateDir()
		if err != nil {
			return nil, fmt.Errorf("resolve state dir: %w", err)
		}
		file, err := logging.OpenRotatingFile(stateDir, logFileName, logging.DefaultRotateOptions())
		if err != nil {
			return nil, err
		}
		logCfg.Output = file
		a.logFile = file
		a.logPath = file.Path()
	}

	logger, setLevel := logging.NewReloadable(logCfg)
	a.ctx = logging.WithContext(context.Background(), logger)
	a.setLevel = setLevel
	return a, nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// LogPath returns the log file in use, or "" when logging to stderr.
func (a *App) LogPath() string {
	return a.logPath
}

// WatchConfig reloads the configuration when the file changes and applies
// the new log level.
func (a *App) WatchConfig() {
	log := logging.FromContext(a.ctx)
	a.configs.OnConfigChange(func(cfg *config.Config) {
		a.setLevel(logging.ParseLevel(cfg.Logging.Level))
		log.Info().Str("level", cfg.Logging.Level).Msg("cli: configuration reloaded")
	})
	if err := a.configs.Watch(); err != nil {
		log.Warn().Err(err).Msg("cli: cannot watch configuration")
	}
}

// ConfigFile returns the path of the loaded configuration file.
func (a *App) ConfigFile() string {
	return a.configs.GetConfigFile()
}

// Close releases all resources.
func (a *App) Close() error {
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}

// Fatalf prints a formatted error and exits.
func Fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
