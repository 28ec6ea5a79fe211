// Command certform submits a certificate request from the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errSubmissionFailed) {
			fmt.Fprintln(os.Stderr, red(err.Error()))
		}
		stop()
		os.Exit(1)
	}
}
