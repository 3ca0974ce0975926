package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/sashes/internal/domain/entity"
	"github.com/bnema/sashes/internal/infrastructure/events"
)

var eventsSchema bool

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List pane event types",
	Long: `List the pane lifecycle event types, or print the JSON schema of the
event payload with --schema.`,
	Args: cobra.NoArgs,
	RunE: runEvents,
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.Flags().BoolVar(&eventsSchema, "schema", false, "print the event JSON schema")
}

func runEvents(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if eventsSchema {
		data, err := events.SchemaJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	for _, t := range entity.EventTypes() {
		fmt.Fprintln(out, app.Theme.Normal.Render(string(t)))
	}
	return nil
}
