package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"canteiro/internal/cli"
	"canteiro/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// reports go to stdout, logs stay on stderr
	opt := logger.FromEnv()
	opt.Writer = os.Stderr
	if opt.Service == "" {
		opt.Service = "canteiro-report"
	}
	logger.Init(opt)

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(cli.ExitCode(err))
	}
}
