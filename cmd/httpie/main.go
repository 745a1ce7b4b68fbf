package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/httpie/internal/cli"
	"github.com/samvad-hq/httpie/internal/config"
	"github.com/samvad-hq/httpie/internal/domain"
	"github.com/samvad-hq/httpie/internal/logger"
)

func main() {
	err := run()
	var exitErr *domain.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		logger.DebugObj("status check failed", "status_check", map[string]any{
			"expected": exitErr.Expected,
			"actual":   exitErr.Actual,
		})
	default:
		fmt.Fprintf(os.Stderr, "httpie: %v\n", err)
	}
	os.Exit(exitCode(err))
}

// exitCode maps the result of run to a process status: 0 on success, the
// code an ExitError carries, and 1 for every other failure.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *domain.ExitError
	if errors.As(err, &exitErr) && exitErr.Code != 0 {
		return exitErr.Code
	}
	return 1
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.DebugObj("httpie starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(cfg, log, cli.StdStreams())
	return root.ExecuteContext(ctx)
}
