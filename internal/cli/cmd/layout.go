package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bnema/sashes/internal/application/usecase"
	"github.com/bnema/sashes/internal/cli"
	"github.com/bnema/sashes/internal/cli/styles"
	"github.com/bnema/sashes/internal/infrastructure/layoutfile"
	"github.com/bnema/sashes/pkg/sashes"
)

const (
	defaultViewportWidth  = 1920
	defaultViewportHeight = 1080
)

var (
	layoutWidth  float64
	layoutHeight float64
	layoutJSON   bool
)

var layoutCmd = &cobra.Command{
	Use:   "layout <file>",
	Short: "Build a layout file and print its tree",
	Long: `Parse a layout file (TOML, YAML or JSON, picked by extension), build it
into a viewport and print every sash with its geometry.

Examples:
  sashes layout desk.toml                   # Tree at 1920x1080
  sashes layout desk.yaml -W 1280 -H 720    # Tree at 1280x720
  sashes layout desk.json --json            # Pane payloads as JSON`,
	Args: cobra.ExactArgs(1),
	RunE: runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	addViewportFlags(layoutCmd, &layoutWidth, &layoutHeight)
	layoutCmd.Flags().BoolVar(&layoutJSON, "json", false, "print pane payloads as JSON")
}

func addViewportFlags(cmd *cobra.Command, width, height *float64) {
	cmd.Flags().Float64VarP(width, "width", "W", defaultViewportWidth, "viewport width")
	cmd.Flags().Float64VarP(height, "height", "H", defaultViewportHeight, "viewport height")
}

func runLayout(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	wm, err := openLayout(app, args[0], layoutWidth, layoutHeight, nil)
	if err != nil {
		return err
	}
	defer wm.Close()

	out := cmd.OutOrStdout()
	if layoutJSON {
		return writeJSON(out, wm.Panes())
	}

	fmt.Fprintln(out, styles.NewLayoutRenderer(app.Theme).RenderTree(wm.Layout()))
	return nil
}

// openLayout loads path and builds a window manager sized width x height
// with the configured layout defaults.
func openLayout(app *cli.App, path string, width, height float64, mutate func(*sashes.Options)) (*sashes.WindowManager, error) {
	layout, err := layoutfile.Load(path)
	if err != nil {
		return nil, err
	}

	opts := sashes.OptionsFromConfig(app.Config)
	opts.Layout = layout
	opts.Width = width
	opts.Height = height
	opts.IDGenerator = usecase.NewSequentialGenerator("split")
	if mutate != nil {
		mutate(&opts)
	}

	wm, err := sashes.New(app.Context(), opts)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", path, err)
	}
	return wm, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
