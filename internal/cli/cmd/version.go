package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bnema/keepmeawake/internal/cli/styles"
	"github.com/bnema/keepmeawake/internal/domain/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(renderVersion(app.Theme, app.BuildInfo))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func renderVersion(theme *styles.Theme, info build.Info) string {
	icon := lipgloss.NewStyle().Foreground(theme.Accent).Render(styles.IconVersion)
	rows := [][2]string{
		{"Version", info.Version},
		{"Commit", info.Commit},
		{"Built", info.BuildDate},
		{"Go", info.GoVersion},
		{"Repository", build.RepoURL()},
	}

	out := fmt.Sprintf("  %s %s\n", icon, theme.Title.Render(build.AppName))
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		out += fmt.Sprintf("    %s %s\n", theme.Subtle.Width(11).Render(row[0]), theme.Normal.Render(row[1]))
	}
	return out
}
