package main

import (
	"aineoo/cmd/handlers"
	"aineoo/internal/apperr"
	"aineoo/internal/logger"
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	logger.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := handlers.Execute(ctx)
	if err != nil && ctx.Err() != nil {
		err = apperr.Interrupted(err)
	}
	stop()

	os.Exit(apperr.ExitCode(err))
}
