// Command shiftlog runs the shift-log application.
//
// Configuration comes from a YAML file (CONFIG_PATH) overridden by
// environment variables; DATABASE_DSN is required.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/shiftlog/shiftlog-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("run: %v", err)
	}
}
