package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0"
var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "planctl",
	Short:   "Build and inspect inventory optimization plans",
	Long:    "planctl runs the yieldplan engine locally: feed it a JSON plan request and get back the prioritized remediation plan, without a running server.",
	Version: version,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("❌ %v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(benchmarksCmd)
}
