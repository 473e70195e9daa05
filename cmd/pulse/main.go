package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/brokerops/pulse/internal/config"
)

// Exit codes for different failure modes
const (
	ExitSuccess   = 0 // Report generated and delivered
	ExitRunFailed = 1 // Fetch, render, or publish failed
	ExitConfig    = 2 // Configuration error
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// Check error type to determine exit code
		var cfgErr *config.Error
		if errors.As(err, &cfgErr) {
			os.Exit(ExitConfig)
		}

		// Everything else is a run failure
		os.Exit(ExitRunFailed)
	}
}
