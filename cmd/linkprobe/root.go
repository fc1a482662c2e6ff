package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for linkprobe.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linkprobe",
		Short: "Check whether the links in a document are alive",
		Long: `linkprobe scans a text or HTML document for absolute web addresses
and verifies each one with a lightweight HEAD request. Probes run
concurrently with a bounded worker limit, and every address gets a
classified result: good (2xx), bad (error response or timeout), or
error (connection failure).`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewHistoryCmd())
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
