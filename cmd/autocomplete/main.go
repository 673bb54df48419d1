package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"autocomplete/internal/cli"
)

func main() {
	// Handle interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
