// Package main is the entry point for the xmark CLI.
package main

import (
	"os"

	"github.com/jmylchreest/xmark/cmd/xmark/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
