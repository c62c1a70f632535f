// Package main provides the gridforge CLI, a collection of batch layout
// and netlist generators for the GF180MCU open PDK.
package main

import (
	"os"

	"github.com/openfab-labs/gridforge/internal/cli"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(cli.Execute(version))
}
