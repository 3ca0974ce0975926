package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/sashes/internal/cli"
	"github.com/bnema/sashes/internal/cli/styles"
	"github.com/bnema/sashes/internal/infrastructure/layoutfile"
	"github.com/bnema/sashes/pkg/sashes"
)

var (
	replayWidth   float64
	replayHeight  float64
	replayJSON    bool
	replayRecord  bool
	replayJournal string
	replayTree    bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <layout> <script>",
	Short: "Run a scripted session against a layout",
	Long: `Build a layout, apply the steps of a script to it and print every pane
event in emission order. Resize events are flushed when the script ends.

With --record (or events.journal.enabled in the config) events are also
stored in the SQLite journal; see 'sashes journal'.

Examples:
  sashes replay desk.toml session.yaml
  sashes replay desk.toml session.yaml --json          # JSON lines
  sashes replay desk.toml session.yaml --record --tree # Journal and final tree`,
	Args: cobra.ExactArgs(2),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	addViewportFlags(replayCmd, &replayWidth, &replayHeight)
	replayCmd.Flags().BoolVar(&replayJSON, "json", false, "print events as JSON lines")
	replayCmd.Flags().BoolVar(&replayRecord, "record", false, "store events in the journal")
	replayCmd.Flags().StringVar(&replayJournal, "journal", "", "journal database path (default from config)")
	replayCmd.Flags().BoolVar(&replayTree, "tree", false, "print the final tree")
}

func runReplay(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	script, err := layoutfile.LoadScript(args[1])
	if err != nil {
		return err
	}

	var recorder sashes.EventRecorder
	if replayRecord || app.Config.Events.Journal.Enabled {
		journal, err := app.Journal(app.JournalPath(replayJournal))
		if err != nil {
			return err
		}
		recorder = journal
	}

	wm, err := openLayout(app, args[0], replayWidth, replayHeight, func(opts *sashes.Options) {
		opts.Recorder = recorder
	})
	if err != nil {
		return err
	}
	defer wm.Close()

	out := cmd.OutOrStdout()
	renderer := styles.NewLayoutRenderer(app.Theme)
	enc := json.NewEncoder(out)

	var printErr error
	if _, err := wm.OnEvery(func(event sashes.PaneEvent) {
		if replayJSON {
			if err := enc.Encode(event); err != nil && printErr == nil {
				printErr = err
			}
			return
		}
		fmt.Fprintln(out, renderer.RenderEvent(event))
	}); err != nil {
		return err
	}

	if err := cli.NewReplayer(wm, nil).Run(app.Context(), script); err != nil {
		return err
	}
	if printErr != nil {
		return fmt.Errorf("write event: %w", printErr)
	}

	if replayTree && !replayJSON {
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderer.RenderTree(wm.Layout()))
	}
	return nil
}
