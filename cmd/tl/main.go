package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"timelog/internal/cli"
	"timelog/internal/config"
	"timelog/internal/errors"
)

func main() {
	// Create app factory based on environment
	factory := NewAppFactory(getEnvironment())

	root := cli.NewRootCommand(config.NewLoader(), factory.CreateApp)
	if err := root.Execute(); err != nil {
		reportError(factory.Logger(), os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints err for the user and logs it when it is a fault
// rather than a user mistake.
func reportError(logger *zerolog.Logger, w io.Writer, err error) {
	if errors.ShouldLogError(err) {
		logger.Error().Err(err).Str("code", errors.GetErrorCode(err)).Msg("command failed")
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
