// Package main provides the entry point for the manscan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for manscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manscan",
		Short: "Static security analyzer for Android manifest files",
		Long: `manscan is a static security analyzer for Android manifest files.

It parses an AndroidManifest.xml, resolves string resource references,
classifies components and permissions, extracts deep links, and reports
risky configurations such as unprotected exported components.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
