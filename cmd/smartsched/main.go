package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/hyowon/smartsched/pkg/interfaces/cli/commands"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	app := &commands.App{Logger: logger}
	return commands.NewRootCmd(app).Execute()
}
