package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bnema/sashes/internal/cli/styles"
	"github.com/bnema/sashes/internal/infrastructure/config"
)

var (
	schemaOut    string
	schemaStdout bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View the effective configuration and generate its JSON schema.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the config file path and effective values",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Write the JSON schema of the config file",
	Long: `Generate a JSON schema for config.toml. Editors that understand
taplo or JSON schema use it for completion and validation.

By default the schema is written next to the config file.`,
	Args: cobra.NoArgs,
	RunE: runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSchemaCmd)
	configSchemaCmd.Flags().StringVarP(&schemaOut, "out", "o", "", "output directory (default: config directory)")
	configSchemaCmd.Flags().BoolVar(&schemaStdout, "stdout", false, "print the schema instead of writing a file")
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	renderer := styles.NewConfigRenderer(app.Theme)
	fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderConfigInfo(app.ConfigFile, app.Config))
	return nil
}

func runConfigSchema(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if schemaStdout {
		data, err := config.SchemaJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	dir := schemaOut
	if dir == "" {
		dir = filepath.Dir(app.ConfigFile)
	}
	path, err := config.GenerateSchemaFile(dir)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, styles.NewConfigRenderer(app.Theme).RenderSchemaWritten(path))
	return nil
}
