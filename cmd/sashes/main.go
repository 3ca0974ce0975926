package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/fang"

	"github.com/bnema/sashes/internal/cli/cmd"
	"github.com/bnema/sashes/internal/domain/build"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	cmd.SetBuildInfo(build.Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	})

	if err := fang.Execute(
		context.Background(),
		cmd.Root(),
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s", version, commit, buildDate)),
	); err != nil {
		os.Exit(1)
	}
}
