package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aryankumar/sortpool/internal/cli"
	"github.com/aryankumar/sortpool/internal/util"
)

func main() {
	// Setup signal handling for graceful shutdown
	ctx := util.SetupSignalHandler(slog.Default())

	if err := cli.Execute(ctx); err != nil {
		slog.Debug("command failed", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", util.FriendlyError(err))
		os.Exit(1)
	}
}
