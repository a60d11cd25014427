package main

import "github.com/spf13/cobra"

// This variable is set during build time.
var version string

var rootCmd = &cobra.Command{
	Use:     "schedboard-api",
	Short:   "Record store and REST gateway for the manufacturing schedule board",
	Version: version,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(migrateCmd)
}
