package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/keepmeawake/internal/infrastructure/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the configuration, schema and log file locations",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		r := renderer()
		fmt.Println(r.RenderPath("Config", app.ConfigFile()))
		if schema, err := config.GetSchemaFile(); err == nil {
			fmt.Println(r.RenderPath("Schema", schema))
		}
		if state, err := config.GetStateDir(); err == nil {
			fmt.Println(r.RenderPath("Logs  ", state))
		}
		return nil
	},
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the configuration file",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		data, err := config.MarshalSchema()
		if err != nil {
			return fmt.Errorf("generate schema: %w", err)
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd, configSchemaCmd)
	rootCmd.AddCommand(configCmd)
}
