package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/genlab/clinreport/internal/config"
	"github.com/genlab/clinreport/internal/history"
	"github.com/genlab/clinreport/internal/model"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Query the local archive of previously reported variants",
		Long: `Query the local archive of previously reported variants.

Every report build records its variants in a local archive database, so a
clinician can check whether a variant has been reported before and in which
case. Without a filter the command lists recent report builds.

Examples:
  # Recent report builds
  clinreport history

  # All reported variants in a gene
  clinreport history --gene BRCA1

  # All variants ever reported for a sample
  clinreport history --sample 24-1234.wgs`,
		RunE: runHistory,
	}

	cmd.Flags().String("gene", "", "List reported variants in the given gene")
	cmd.Flags().String("variation", "", "List reports of a variant given as chrom-pos-ref-alt")
	cmd.Flags().String("sample", "", "List reported variants for the given sample")
	cmd.Flags().IntP("limit", "n", 20, "Maximum number of report builds to list")
	cmd.Flags().String("archive-dir", "", "Archive database directory (default: XDG data directory)")

	return cmd
}

// runHistory executes the history command.
func runHistory(cmd *cobra.Command, _ []string) error {
	gene, err := cmd.Flags().GetString("gene")
	if err != nil {
		return fmt.Errorf("failed to get gene flag: %w", err)
	}
	variation, err := cmd.Flags().GetString("variation")
	if err != nil {
		return fmt.Errorf("failed to get variation flag: %w", err)
	}
	sample, err := cmd.Flags().GetString("sample")
	if err != nil {
		return fmt.Errorf("failed to get sample flag: %w", err)
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return fmt.Errorf("failed to get limit flag: %w", err)
	}
	archiveDir, err := cmd.Flags().GetString("archive-dir")
	if err != nil {
		return fmt.Errorf("failed to get archive-dir flag: %w", err)
	}
	if archiveDir == "" {
		archiveDir = config.XDGDataDir()
	}

	archive, err := history.Open(archiveDir, history.Options{})
	if err != nil {
		if errors.Is(err, history.ErrArchiveNotFound) {
			fmt.Fprintln(cmd.OutOrStdout(), "No archive found. Build a report first; variants are archived automatically.")
			return nil
		}
		return err
	}
	defer archive.Close()

	ctx := cmd.Context()

	switch {
	case gene != "":
		entries, err := archive.ByGene(ctx, gene)
		if err != nil {
			return err
		}
		printEntries(cmd, entries, fmt.Sprintf("gene %s", gene))
	case variation != "":
		chrom, pos, ref, alt, err := parseVariation(variation)
		if err != nil {
			return err
		}
		entries, err := archive.PriorReports(ctx, chrom, pos, ref, alt)
		if err != nil {
			return err
		}
		printEntries(cmd, entries, fmt.Sprintf("variant %s", variation))
	case sample != "":
		entries, err := archive.BySample(ctx, sample)
		if err != nil {
			return err
		}
		printEntries(cmd, entries, fmt.Sprintf("sample %s", sample))
	default:
		runs, err := archive.RecentRuns(ctx, limit)
		if err != nil {
			return err
		}
		printRuns(cmd, runs)
	}
	return nil
}

// parseVariation splits a chrom-pos-ref-alt variation string into its parts.
func parseVariation(s string) (chrom string, pos int64, ref, alt string, err error) {
	parts := strings.SplitN(s, "-", 4)
	if len(parts) != 4 {
		return "", 0, "", "", fmt.Errorf("invalid variation %q: expected chrom-pos-ref-alt", s)
	}
	pos, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", 0, "", "", fmt.Errorf("invalid position in variation %q: %w", s, err)
	}
	return parts[0], pos, parts[2], parts[3], nil
}

// printEntries lists archived variant entries in column form.
func printEntries(cmd *cobra.Command, entries []history.Entry, what string) {
	if len(entries) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No reported variants for %s.\n", what)
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d reported variant(s) for %s:\n\n", len(entries), what)
	fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-24s %-10s %-6s %-18s %s\n",
		"DATE", "LOCUS", "GENE", "CODE", "SAMPLE", "ZYGOSITY")
	fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("-", 90))

	for _, e := range entries {
		locus := fmt.Sprintf("%s-%d-%s-%s", e.Chrom, e.Pos, e.Ref, e.Alt)
		fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-24s %-10s %-6d %-18s %s\n",
			e.Timestamp.Format("2006-01-02"), locus, e.Gene, int(e.Code),
			model.DisplayID(e.Sample), e.Zygosity)
	}
}

// printRuns lists recent report builds in column form.
func printRuns(cmd *cobra.Command, runs []history.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No report builds recorded yet.")
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d recent report build(s):\n\n", len(runs))
	fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-18s %-8s %-9s %s\n",
		"DATE", "SAMPLE", "STUDY", "VARIANTS", "SOURCE")
	fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("-", 90))

	for _, r := range runs {
		fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-18s %-8s %-9d %s\n",
			r.Timestamp.Format("2006-01-02 15:04"), model.DisplayID(r.Sample),
			r.Study, r.VariantCount, r.SourceDB)
	}
}
