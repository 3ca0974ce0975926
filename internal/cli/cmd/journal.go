package cmd

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/sashes/internal/cli/model"
	"github.com/bnema/sashes/internal/cli/styles"
	"github.com/bnema/sashes/internal/domain/entity"
	"github.com/bnema/sashes/internal/domain/repository"
)

const defaultJournalLimit = 50

var (
	journalPath  string
	journalPane  string
	journalType  string
	journalLimit int
	journalJSON  bool
	journalPlain bool
	journalClear bool
	journalYes   bool
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show recorded pane events",
	Long: `Browse pane events stored by 'sashes replay --record'.

On a terminal the journal opens in an interactive browser with search and
event type filters. Otherwise, or with --plain or --json, the entries are
printed once.

Examples:
  sashes journal                       # Last 50 events
  sashes journal --pane editor         # Events of one pane
  sashes journal --type onpaneresized  # One event type
  sashes journal -n 0 --plain          # Everything, no browser
  sashes journal --clear               # Delete all events, after confirming
  sashes journal --clear --yes         # Delete without asking`,
	Args: cobra.NoArgs,
	RunE: runJournal,
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.Flags().StringVar(&journalPath, "journal", "", "journal database path (default from config)")
	journalCmd.Flags().StringVar(&journalPane, "pane", "", "only events of this pane")
	journalCmd.Flags().StringVar(&journalType, "type", "", "only events of this type")
	journalCmd.Flags().IntVarP(&journalLimit, "limit", "n", defaultJournalLimit, "number of most recent events, 0 for all")
	journalCmd.Flags().BoolVar(&journalJSON, "json", false, "print entries as JSON")
	journalCmd.Flags().BoolVar(&journalPlain, "plain", false, "print entries instead of opening the browser")
	journalCmd.Flags().BoolVar(&journalClear, "clear", false, "delete all recorded events")
	journalCmd.Flags().BoolVarP(&journalYes, "yes", "y", false, "do not ask before --clear")
}

func runJournal(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	filter := repository.JournalFilter{PaneID: journalPane, Limit: journalLimit}
	if journalType != "" {
		if filter.Type, err = entity.ParseEventType(journalType); err != nil {
			return err
		}
	}

	journal, err := app.Journal(app.JournalPath(journalPath))
	if err != nil {
		return err
	}

	ctx := app.Context()
	out := cmd.OutOrStdout()
	renderer := styles.NewLayoutRenderer(app.Theme)

	if journalClear {
		return runJournalClear(ctx, out, renderer, app.Theme, journal)
	}

	if journalJSON || journalPlain || !interactive(out) {
		entries, err := journal.List(ctx, filter)
		if err != nil {
			return err
		}
		if journalJSON {
			return writeJSON(out, entries)
		}
		fmt.Fprintln(out, renderer.RenderJournal(entries))
		return nil
	}

	m := model.NewJournalModel(ctx, app.Theme, journal, filter)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func runJournalClear(
	ctx context.Context,
	out io.Writer,
	renderer *styles.LayoutRenderer,
	theme *styles.Theme,
	journal repository.JournalRepository,
) error {
	if !journalYes {
		if !interactive(out) {
			return errNeedsConfirmation
		}
		final, err := tea.NewProgram(model.NewConfirmModel(theme, "Delete every recorded event?")).Run()
		if err != nil {
			return err
		}
		if confirm, ok := final.(model.ConfirmModel); !ok || !confirm.Confirmed() {
			fmt.Fprintln(out, renderer.RenderOK("journal left untouched"))
			return nil
		}
	}

	n, err := journal.Clear(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, renderer.RenderOK(fmt.Sprintf("deleted %d events", n)))
	return nil
}
