package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/wso2/mongo-collection-reconciler/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(cli.Execute(ctx))
}
