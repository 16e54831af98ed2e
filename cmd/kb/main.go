// Command kb captures links, files and notes into a bilingual Telegram channel.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/kb-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	services, cleanup, err := wire(ctx, "")
	if err != nil {
		report(err)
		return 1
	}
	defer cleanup()

	cli.SetServices(services)
	cli.SetVersion(version)

	if err := cli.ExecuteContext(ctx); err != nil {
		report(err)
		return exitCode(err)
	}
	return 0
}

// report prints err through the logger so registered secrets stay masked.
func report(err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	logger.Error("%v", err)
}

// exitCode maps domain errors to process exit codes.
func exitCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnsupportedFileType):
		return 2
	case errors.Is(err, domain.ErrFetch):
		return 3
	case errors.Is(err, domain.ErrPublish):
		return 4
	case errors.Is(err, context.Canceled):
		logger.Debug("Interrupted")
		return 130
	default:
		return 1
	}
}
