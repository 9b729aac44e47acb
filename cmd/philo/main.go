package main

// Entry point. All logic lives in internal/cli; main only handles top-level
// errors and the panic guard, exiting non-zero on any fatal failure.

import (
	"fmt"
	"os"

	"github.com/hosu-kim/the-last-supper/internal/cli"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", r)
			os.Exit(1)
		}
	}()

	if err := cli.BuildCLI().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
