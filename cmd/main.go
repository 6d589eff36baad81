package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/teamfit/internal/cli"
)

// Version information (set by build flags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cli.SetVersionInfo(Version, Commit, BuildTime)
	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
