// Command summarizer runs the AI summarizer gateway.
//
// Usage:
//
//	summarizer [serve]    start the HTTP server (default)
//	summarizer diagnose   probe every dependency once and print the report
//	summarizer migrate    apply database migrations and exit
//
// Configuration is read from --config, else CONFIG_PATH, else ./config.yaml,
// with environment variables taking precedence.
//
// Exit codes: 0 = success, 1 = error, 2 = dependencies degraded (diagnose).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/summarizer-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	switch {
	case err == nil:
	case errors.Is(err, app.ErrDegraded):
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
