package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/keepmeawake/internal/cli/styles"
	"github.com/bnema/keepmeawake/internal/domain/entity"
	"github.com/bnema/keepmeawake/internal/infrastructure/control"
	"github.com/bnema/keepmeawake/internal/infrastructure/portal"
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Show what the running instance inhibits",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withClient(func(c *control.Client) error {
			level, err := c.GetLevel(app.Ctx())
			if err != nil {
				return err
			}
			fmt.Println(renderer().RenderLevel(level))
			return nil
		})
	},
}

var setCmd = &cobra.Command{
	Use:       "set LEVEL",
	Short:     "Set what the running instance inhibits",
	Long:      "Set what the running instance inhibits. LEVEL is one of " + levelNames() + ".",
	Args:      cobra.ExactArgs(1),
	ValidArgs: levelArgs(),
	RunE: func(_ *cobra.Command, args []string) error {
		level, err := entity.ParseInhibitLevel(args[0])
		if err != nil {
			return err
		}
		return withClient(func(c *control.Client) error {
			if err := c.SetLevel(app.Ctx(), level); err != nil {
				return err
			}
			fmt.Println(renderer().RenderLevel(level))
			return nil
		})
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle LEVEL",
	Short: "Switch between LEVEL and none",
	Long: `Switch the running instance to LEVEL, or back to none when LEVEL is
already active. This is what the global shortcuts do.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: levelArgs(),
	RunE: func(_ *cobra.Command, args []string) error {
		target, err := entity.ParseInhibitLevel(args[0])
		if err != nil {
			return err
		}
		return withClient(func(c *control.Client) error {
			level, err := c.Toggle(app.Ctx(), target)
			if err != nil {
				return err
			}
			fmt.Println(renderer().RenderLevel(level))
			return nil
		})
	},
}

var quitCmd = &cobra.Command{
	Use:   "quit",
	Short: "Stop the running instance and release all inhibitions",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withClient(func(c *control.Client) error {
			if err := c.Quit(app.Ctx()); err != nil {
				return err
			}
			fmt.Println(renderer().RenderSuccess("keepmeawake is quitting"))
			return nil
		})
	},
}

var shortcutsCmd = &cobra.Command{
	Use:   "shortcuts",
	Short: "Inspect the global shortcuts of the running instance",
}

var shortcutsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bound global shortcuts",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withClient(func(c *control.Client) error {
			shortcuts, err := c.ListShortcuts(app.Ctx())
			if err != nil {
				return err
			}
			fmt.Println(renderer().RenderShortcuts(shortcuts))
			return nil
		})
	},
}

var shortcutsConfigureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Open the desktop's shortcut settings",
	Long: `Ask the desktop to show its shortcut settings for keepmeawake.
Requires a desktop that supports version 2 of the global shortcuts portal.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withClient(func(c *control.Client) error {
			return c.ConfigureShortcuts(app.Ctx())
		})
	},
}

func init() {
	shortcutsCmd.AddCommand(shortcutsListCmd, shortcutsConfigureCmd)
	rootCmd.AddCommand(getCmd, setCmd, toggleCmd, quitCmd, shortcutsCmd)
}

// withClient connects to the session bus and runs fn against the running
// instance.
func withClient(fn func(*control.Client) error) error {
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	conn, err := portal.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(control.NewClient(conn))
}

func renderer() *styles.StatusRenderer {
	return styles.NewStatusRenderer(app.Theme)
}

func levelArgs() []string {
	levels := entity.InhibitLevels()
	names := make([]string, 0, len(levels))
	for _, l := range levels {
		names = append(names, l.String())
	}
	return names
}

func levelNames() string {
	return strings.Join(levelArgs(), ", ")
}
