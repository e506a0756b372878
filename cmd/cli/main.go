package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophnotes/internal/cli"
	"github.com/dmitrijs2005/gophnotes/internal/config"
	"github.com/dmitrijs2005/gophnotes/internal/cryptox"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/session"
)

func main() {

	cfg := config.LoadConfig(os.Args[1:], os.Getenv)

	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, sessions, err := cli.NewFromConfig(cfg, cryptox.DefaultParams(), os.Stdin, os.Stdout, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx := context.Background()
	initSignalHandler(ctx, sessions, logger)

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, err.Error())
		os.Exit(1)
	}
}

// initSignalHandler drops every session and exits when the process is
// interrupted while the REPL waits for input.
func initSignalHandler(ctx context.Context, sessions *session.Registry, logger logging.Logger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		sig := <-sigs
		sessions.CloseAll()
		logger.Info(ctx, "interrupted", "signal", sig.String())
		os.Exit(130)
	}()
}
