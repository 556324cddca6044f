// Package main is the entry point for the contentctl CLI
package main

import (
	"os"

	"github.com/vscj1234/content-agent-langgraph/cmd"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.HandleError(err))
	}
}
