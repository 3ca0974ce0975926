package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/sashes/internal/cli"
	"github.com/bnema/sashes/internal/cli/model"
	"github.com/bnema/sashes/internal/cli/styles"
	"github.com/bnema/sashes/internal/infrastructure/config"
	"github.com/bnema/sashes/internal/logging"
)

var (
	watchWidth  float64
	watchHeight float64
	watchPlain  bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <layout>",
	Short: "Rebuild a layout whenever it or the config changes",
	Long: `Show the tree of a layout and rebuild it every time the layout file or
config.toml is saved. On a terminal the tree is redrawn in place; otherwise,
or with --plain, each rebuild is printed below the last. Errors are shown
and watching continues. Stop with q or Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addViewportFlags(watchCmd, &watchWidth, &watchHeight)
	watchCmd.Flags().BoolVar(&watchPlain, "plain", false, "print each rebuild instead of redrawing")
}

// layoutWatcher rebuilds one layout file against the latest config.
type layoutWatcher struct {
	mu   sync.Mutex
	app  *cli.App
	path string
}

func (w *layoutWatcher) setConfig(cfg *config.Config) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.app.Config = cfg
}

func (w *layoutWatcher) build(renderer *styles.LayoutRenderer) (model.Frame, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	wm, err := openLayout(w.app, w.path, watchWidth, watchHeight, nil)
	if err != nil {
		return model.Frame{}, err
	}
	defer wm.Close()
	return model.Frame{Tree: renderer.RenderTree(wm.Layout()), Panes: wm.Layout().LeafCount()}, nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	renderer := styles.NewLayoutRenderer(app.Theme)
	log := logging.FromContext(app.Context())
	watcher := &layoutWatcher{app: app, path: args[0]}

	ctx, stop := signal.NotifyContext(app.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rebuild := make(chan string, 1)
	notify := func(reason string) {
		select {
		case rebuild <- reason:
		default:
		}
	}

	app.ConfigManager.OnConfigChange(func(cfg *config.Config) {
		log.Info().Msg("config reloaded")
		watcher.setConfig(cfg)
		notify("config reloaded")
	})
	if err := app.ConfigManager.Watch(); err != nil {
		return fmt.Errorf("watch config: %w", err)
	}

	errc := make(chan error, 1)
	go func() {
		errc <- cli.WatchFiles(ctx, []string{watcher.path}, cli.DefaultWatchDelay, func(string) {
			notify("layout changed")
		})
	}()

	if watchPlain || !interactive(out) {
		return watchPrinting(ctx, out, renderer, watcher, rebuild, errc)
	}
	return watchInteractive(ctx, app.Theme, renderer, watcher, rebuild, errc)
}

// watchInteractive redraws the layout in place until the user quits.
func watchInteractive(
	ctx context.Context,
	theme *styles.Theme,
	renderer *styles.LayoutRenderer,
	watcher *layoutWatcher,
	rebuild <-chan string,
	errc <-chan error,
) error {
	m := model.NewWatchModel(theme, watcher.path, func() (model.Frame, error) {
		return watcher.build(renderer)
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case reason := <-rebuild:
				p.Send(model.RebuildMsg{Reason: reason})
			case err := <-errc:
				if err != nil {
					logging.FromContext(ctx).Error().Err(err).Msg("file watcher stopped")
				}
				return
			}
		}
	}()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// watchPrinting prints every rebuild below the previous one.
func watchPrinting(
	ctx context.Context,
	out io.Writer,
	renderer *styles.LayoutRenderer,
	watcher *layoutWatcher,
	rebuild <-chan string,
	errc <-chan error,
) error {
	printFrame(out, renderer, watcher)
	for {
		select {
		case <-ctx.Done():
			return <-errc
		case err := <-errc:
			return err
		case <-rebuild:
			printFrame(out, renderer, watcher)
		}
	}
}

func printFrame(out io.Writer, renderer *styles.LayoutRenderer, watcher *layoutWatcher) {
	frame, err := watcher.build(renderer)
	if err != nil {
		fmt.Fprintln(out, renderer.RenderError(err))
		return
	}
	fmt.Fprintln(out, renderer.RenderOK(fmt.Sprintf("%s: %d panes", watcher.path, frame.Panes)))
	fmt.Fprintln(out, frame.Tree)
}
