package main

import (
	"context"
	"os/signal"
	"syscall"
)

// cmdContext returns a context that is cancelled on SIGINT or SIGTERM so
// in-flight provider calls get a chance to unwind.
func cmdContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	return ctx
}
