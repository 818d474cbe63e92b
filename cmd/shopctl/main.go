package main

import (
	"context"
	"os"

	"github.com/yndnr/shopfront-go/internal/cli/command"
	"github.com/yndnr/shopfront-go/internal/infra/shutdown"
)

func main() {
	ctx, stop := shutdown.SignalContext(context.Background())
	defer stop()

	if err := command.App().RunContext(ctx, os.Args); err != nil {
		command.PrintError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
