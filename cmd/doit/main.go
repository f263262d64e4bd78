package main

import (
	"os"

	"github.com/Makepad-fr/doit/internal/cli"
)

func main() {
	// Root flags and subcommands are parsed by the runner.
	os.Exit(cli.Run(os.Args[1:]))
}
