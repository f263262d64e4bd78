package main

import (
	"os"

	"github.com/Makepad-fr/doit/internal/cli"
)

// Same entrypoint as cmd/doit, so `go install github.com/Makepad-fr/doit@latest` works.
func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
