package main

import (
	"os"

	"github.com/sdkci/protobot/internal/cli"
)

// main is the entry point for the protobot CLI binary.
func main() {
	if err := cli.Execute(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
