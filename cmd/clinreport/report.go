package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/genlab/clinreport/internal/builder"
	"github.com/genlab/clinreport/internal/config"
	"github.com/genlab/clinreport/internal/log"
)

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [flags] DATABASE...",
		Short: "Generate a clinical report from annotated OpenCRAVAT databases",
		Long: `Generate a clinical report document for each input database.

The command collects the variants a clinician has marked with a
classification code, resolves the target sample's genotype for each of
them and renders the report. The input databases are opened read-only.

Examples:
  # Single-sample database, report written next to the input
  clinreport report case42.sqlite

  # Trio database: the proband must be named explicitly
  clinreport report -t NA12878 trio.sqlite

  # Several databases into one output directory
  clinreport report -o reports/ batch/*.sqlite`,
		Args: cobra.MinimumNArgs(1),
		RunE: runReport,
	}

	cmd.Flags().StringP("target-sample", "t", "", "Proband sample identifier (required for duo/trio databases)")
	cmd.Flags().StringP("output", "o", "", "Output file, or directory for multiple inputs (default: beside each input)")
	cmd.Flags().StringP("config", "c", "", "Report profile file (default: search .clinreport)")
	cmd.Flags().String("clinician", "", "Clinician name for the report signature (overrides the profile)")
	cmd.Flags().Bool("markdown", false, "Write the report as markdown (the default)")
	cmd.Flags().Bool("json", false, "Write the report as JSON instead of markdown")
	cmd.Flags().Bool("text", false, "Write the report as plain text instead of markdown")
	cmd.Flags().Bool("no-archive", false, "Do not record reported variants in the local archive")

	return cmd
}

// runReport executes the report command.
func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	logger.Debug("configuration loaded",
		"databases", len(cfg.Databases),
		"target_sample", cfg.TargetSample,
		"format", cfg.ReportFormat)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Warn("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	b := builder.New(cfg,
		builder.WithLogger(logger),
		builder.WithVersion(getVersion()))

	results, err := b.Build(ctx)
	for _, res := range results {
		switch {
		case res.Err != nil:
			fmt.Fprintf(cmd.ErrOrStderr(), "failed: %s: %v\n", res.Database, res.Err)
		case res.Empty:
			fmt.Fprintf(cmd.OutOrStdout(), "written: %s (no reportable variants)\n", res.Output)
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "written: %s (%d variants)\n", res.Output, res.Variants)
		}
	}
	return err
}

// buildConfig creates a Config from command-line flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Databases = args
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	if cfg.TargetSample, err = cmd.Flags().GetString("target-sample"); err != nil {
		return nil, fmt.Errorf("failed to get target-sample flag: %w", err)
	}
	if cfg.OutputPath, err = cmd.Flags().GetString("output"); err != nil {
		return nil, fmt.Errorf("failed to get output flag: %w", err)
	}
	if cfg.Clinician, err = cmd.Flags().GetString("clinician"); err != nil {
		return nil, fmt.Errorf("failed to get clinician flag: %w", err)
	}
	if cfg.NoArchive, err = cmd.Flags().GetBool("no-archive"); err != nil {
		return nil, fmt.Errorf("failed to get no-archive flag: %w", err)
	}

	markdownFormat, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, fmt.Errorf("failed to get markdown flag: %w", err)
	}
	jsonFormat, err := cmd.Flags().GetBool("json")
	if err != nil {
		return nil, fmt.Errorf("failed to get json flag: %w", err)
	}
	textFormat, err := cmd.Flags().GetBool("text")
	if err != nil {
		return nil, fmt.Errorf("failed to get text flag: %w", err)
	}
	formatFlags := 0
	for _, set := range []bool{markdownFormat, jsonFormat, textFormat} {
		if set {
			formatFlags++
		}
	}
	switch {
	case formatFlags > 1:
		return nil, config.ErrConflictingFormats
	case jsonFormat:
		cfg.ReportFormat = config.FormatJSON
	case textFormat:
		cfg.ReportFormat = config.FormatText
	}

	if cfg.ProfilePath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if err := loadProfile(cfg); err != nil {
		return nil, err
	}

	// The profile may name a default format; explicit flags win.
	if formatFlags == 0 && cfg.Profile != nil && cfg.Profile.Format != "" {
		cfg.ReportFormat = config.Format(cfg.Profile.Format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadProfile resolves and loads the report profile.
// An explicitly requested profile that does not exist is an error; a missing
// default profile just means the built-in defaults are used.
func loadProfile(cfg *config.Config) error {
	found := config.FindProfileFile(cfg.ProfilePath)
	if found == "" {
		if cfg.ProfilePath != "" {
			return fmt.Errorf("%w: %s", config.ErrProfileNotFound, cfg.ProfilePath)
		}
		return nil
	}

	profile, err := config.LoadProfile(found)
	if err != nil {
		return err
	}
	cfg.Profile = profile
	return nil
}
