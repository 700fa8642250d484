package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/genlab/clinreport/internal/database"
	"github.com/genlab/clinreport/internal/model"
)

// NewSamplesCmd creates the samples command.
func NewSamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "samples DATABASE",
		Short: "List the samples registered in a database",
		Long: `List the sample identifiers registered in an OpenCRAVAT database.

Useful before a duo/trio report build to find the exact identifier to pass
to --target-sample. The database is opened read-only.`,
		Args: cobra.ExactArgs(1),
		RunE: runSamples,
	}
}

// runSamples executes the samples command.
func runSamples(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	db, err := database.Open(ctx, args[0])
	if err != nil {
		return err
	}
	defer db.Close()

	samples, err := db.Samples(ctx)
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return model.ErrNoSamples
	}

	if len(samples) == 1 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s study, 1 sample:\n", model.StudySingle)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s study, %d samples:\n",
			model.StudyKind(len(samples)), len(samples))
	}

	for _, sample := range samples {
		if display := model.DisplayID(sample); display != sample {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s (%s)\n", sample, display)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", sample)
	}
	return nil
}
