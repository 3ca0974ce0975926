package cmd

import (
	"errors"
	"io"
	"os"

	"golang.org/x/term"
)

// errNeedsConfirmation is returned when a destructive command runs
// without a terminal to confirm on and without --yes.
var errNeedsConfirmation = errors.New("refusing to continue without confirmation, pass --yes")

// interactive reports whether out and stdin are both terminals, so a
// Bubble Tea program can take over the screen.
func interactive(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}
