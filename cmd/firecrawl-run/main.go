package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/usestring/firecrawl-mcp/cmd/firecrawl-run/commands"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	commands.ExecuteContext(ctx)
}
