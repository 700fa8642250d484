// Package main provides the entry point for the clinreport CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for clinreport.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clinreport",
		Short: "Clinical report generator for OpenCRAVAT result databases",
		Long: `clinreport generates clinical variant report documents from annotated
OpenCRAVAT SQLite databases.

Clinicians mark reportable variants by typing a classification code into the
variant note column (1 pathogenic, 2 likely pathogenic, 3 uncertain
significance, 7 unrelated to the primary diagnosis, 8 carrier status).
clinreport collects the marked variants, resolves the target sample's
genotypes and renders a report document ready for clinical sign-off.

The input database is opened read-only and is never modified.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewSamplesCmd())
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

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}
