// Command api serves the branch account ledger over HTTP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/Haleralex/branchledger/internal/config"
	"github.com/Haleralex/branchledger/internal/container"
)

// Заполняются при сборке через -ldflags.
var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "api:", err)
		os.Exit(1)
	}
}

func run() error {
	configDir := pflag.String("config-dir", "configs", "directory with the config file")
	configName := pflag.String("config-name", "api", "config file name without extension")
	pflag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configDir, *configName)
	if err != nil {
		return err
	}
	if cfg.App.Version == "" || version != "dev" {
		cfg.App.Version = version
	}
	if cfg.App.BuildTime == "" {
		cfg.App.BuildTime = buildTime
	}

	// Ctrl+C / SIGTERM запускают graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := container.New(cfg)
	if err := c.Initialize(ctx); err != nil {
		return err
	}

	runErr := c.RunHTTP(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := c.Shutdown(shutdownCtx); err != nil {
		c.Logger().Error("Shutdown failed", slog.String("error", err.Error()))
	}

	if runErr != nil {
		return runErr
	}
	c.Logger().Info("Server stopped gracefully")
	return nil
}
