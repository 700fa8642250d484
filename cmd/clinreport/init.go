package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed templates/clinreport.yaml
var profileTemplate []byte

// profileFileName is the default name for the generated profile file.
const profileFileName = ".clinreport"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a report profile file with default values",
		Long: `Create a report profile file with default values.

The profile holds the laboratory boilerplate rendered into every report:
the clinician's name, the issuing laboratory and the sequencing assay
characteristics. Edit the generated file to match your laboratory.

By default, the file is created as ` + profileFileName + ` in the current
directory. Use --output to specify a different location.`,
		RunE: runInit,
	}

	cmd.Flags().StringP("output", "o", profileFileName, "Output path for the profile file")
	cmd.Flags().BoolP("force", "f", false, "Overwrite existing profile file")

	return cmd
}

// runInit executes the init command.
func runInit(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("failed to get force flag: %w", err)
	}

	if _, err := os.Stat(outputPath); err == nil && !force {
		return fmt.Errorf("profile file already exists: %s (use -f to overwrite)", outputPath)
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, profileTemplate, 0600); err != nil {
		return fmt.Errorf("failed to write profile file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created profile file: %s\n", outputPath)
	fmt.Fprintln(cmd.OutOrStdout(), "Edit it to set your clinician name, laboratory and assay details.")
	return nil
}
