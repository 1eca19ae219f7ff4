package main

import (
	"os"

	"github.com/niveshlabs/quantmomentum/cmd/momentum/commands"
)

// main is the entry point for the momentum CLI:
// go run ./cmd/momentum [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
