// Package main is the entry point for the maa CLI orchestrator.
package main

import (
	"os"

	"github.com/maa-cli/maa-go/internal/cmd"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(cmd.Execute(version))
}
