// gotalk - an interactive tcp/udp test client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gotalk/cmd"
	tkerr "gotalk/internal/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// A blocked read can't observe ctx, so the first signal only asks
	// for a clean stop; restoring default handling lets a second one
	// kill the process.
	go func() {
		<-ctx.Done()
		cancel()
	}()

	err := cmd.Execute(ctx, os.Args[1:])
	code := tkerr.ExitCode(err)
	switch {
	case code == tkerr.ExitInterrupted:
		fmt.Fprintln(os.Stderr, "gotalk: interrupted")
	case err != nil:
		fmt.Fprintf(os.Stderr, "gotalk: %v\n", err)
	}
	os.Exit(code)
}
