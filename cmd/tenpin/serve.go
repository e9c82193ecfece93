package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/tenpin/internal/server"
)

// ServeCmd runs the scoring service until interrupted.
type ServeCmd struct {
	Addr        string        `short:"a" help:"Address to bind to, host:port (overrides config)"`
	IdleTimeout time.Duration `help:"Close websocket connections silent for this long (overrides config)"`
}

func (cmd ServeCmd) Run(env *Env) error {
	addr := env.Config.ServerAddress()
	if cmd.Addr != "" {
		addr = cmd.Addr
	}
	idle := env.Config.IdleTimeout()
	if cmd.IdleTimeout > 0 {
		idle = cmd.IdleTimeout
	}

	srv := server.NewServer(server.Options{
		Addr:        addr,
		IdleTimeout: idle,
	}, env.Logger)

	return srv.Run(setupSignalHandler(env.Logger))
}

// setupSignalHandler creates a context that is cancelled on interrupt signals
func setupSignalHandler(logger *log.Logger) context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("Received signal, shutting down gracefully", "signal", sig.String())
		cancel()
	}()

	return ctx
}
