// Command ledger runs the branch account ledger over stdin/stdout.
//
// Each input line is one protocol command (O, C, D, W, P, PA, PB, PH, PT, Q).
// Responses go to stdout; logs go to stderr.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/Haleralex/branchledger/internal/config"
	"github.com/Haleralex/branchledger/internal/container"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ledger:", err)
		os.Exit(1)
	}
}

func run() error {
	configDir := pflag.String("config-dir", "configs", "directory with the config file")
	configName := pflag.String("config-name", "ledger", "config file name without extension")
	pflag.Parse()

	// .env необязателен
	_ = godotenv.Load()

	cfg, err := config.Load(*configDir, *configName)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := container.New(cfg)
	if err := c.Initialize(ctx); err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Shutdown(shutdownCtx); err != nil {
			c.Logger().Error("Shutdown failed", slog.String("error", err.Error()))
		}
	}()

	return c.RunCLI(ctx, os.Stdin, os.Stdout)
}
