package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"loadtest-report/internal/shared/svcerrors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(svcerrors.ExitCodeOf(err))
}
