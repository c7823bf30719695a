// Command boardctl administers a project board database: schema migrations,
// account creation and demo data.
package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"project-board/internal/observability/logging"
)

func main() {
	logger := logging.NewConsoleLogger(os.Stderr, os.Getenv("LOG_LEVEL"), "boardctl")

	r := &Runner{Logger: logger}
	app := &cli.Command{
		Name:     "boardctl",
		Usage:    "Administer the project board database",
		Version:  version(),
		Commands: r.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func version() string {
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}
