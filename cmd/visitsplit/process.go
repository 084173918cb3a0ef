package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/clinicops/visitsplit/internal/cli"
	"github.com/clinicops/visitsplit/internal/common"
	"github.com/clinicops/visitsplit/internal/config"
	"github.com/clinicops/visitsplit/internal/engine"
	"github.com/clinicops/visitsplit/internal/ingest"
	"github.com/clinicops/visitsplit/internal/model"
	"github.com/clinicops/visitsplit/internal/report"
)

func processCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Reconcile a schedule against the roster and write the report archive",
		Long: `Reconcile every appointment row against the patient roster, split the
visits by provider, and write one workbook per provider plus a processing
summary, bundled into a zip.

Examples:
  # Process November's schedule
  visitsplit process -a schedule.csv -r roster.xlsx -p 11_2025

  # Custom output path and roster sheet
  visitsplit process -a schedule.csv -r roster.xlsx -p 11_2025 -o /tmp/out.zip --sheet Active`,
		RunE: runProcess,
	}

	cmd.Flags().StringP("appointments", "a", "", "appointment schedule CSV (required)")
	cmd.Flags().StringP("roster", "r", "", "patient roster XLSX (required)")
	cmd.Flags().StringP("period", "p", "", "period label used in output filenames, e.g. 11_2025 (required)")
	cmd.Flags().StringP("out", "o", "", "output zip path (default: visits_<period>.zip)")
	cmd.Flags().String("sheet", "", "roster worksheet name (default: from config, \"Active\")")
	cmd.Flags().Bool("no-progress", false, "disable the progress bar")
	_ = cmd.MarkFlagRequired("appointments")
	_ = cmd.MarkFlagRequired("roster")
	_ = cmd.MarkFlagRequired("period")

	return cmd
}

func runProcess(cmd *cobra.Command, _ []string) error {
	apptPath, _ := cmd.Flags().GetString("appointments")
	rosterPath, _ := cmd.Flags().GetString("roster")
	period, _ := cmd.Flags().GetString("period")
	outPath, _ := cmd.Flags().GetString("out")
	sheet, _ := cmd.Flags().GetString("sheet")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	if sheet == "" {
		sheet = config.RosterSheet()
	}
	if outPath == "" {
		outPath = report.ArchiveName(period)
	}

	matchCfg, err := config.MatcherConfig()
	if err != nil {
		return err
	}
	mapping := config.Providers()
	if len(mapping) == 0 {
		slog.Warn("no provider mapping configured, all rows will be unmapped",
			"hint", "run 'visitsplit providers --configure' first")
	}

	appointments, err := readAppointmentsFile(config.ExpandPath(apptPath))
	if err != nil {
		return err
	}
	roster, err := readRosterFile(config.ExpandPath(rosterPath), sheet)
	if err != nil {
		return err
	}

	slog.Info("Reconciling schedule against roster",
		"appointments", len(appointments),
		"roster_rows", len(roster),
		"threshold", matchCfg.Threshold)

	rec := engine.New(matchCfg)
	if !noProgress && len(appointments) > 0 {
		bar := cli.NewReconcileProgress(os.Stderr, len(appointments))
		rec.OnProgress = func(_, _ int) { _ = bar.Add(1) }
	}

	result := rec.Reconcile(appointments, roster)
	if result.EmptyInput {
		return common.NewUserError("schedule contains no appointment rows", common.ErrNoAppointments)
	}

	groups := engine.Group(result.Matches, mapping)
	stats := engine.Summarize(result, groups)
	if err := stats.Validate(); err != nil {
		// Should be impossible; a broken tally means a bug, not bad data.
		return fmt.Errorf("summary invariant violated: %w", err)
	}

	now := time.Now()
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create archive %s: %w", outPath, err)
	}
	defer func() { _ = out.Close() }()

	if err := report.WriteArchive(out, groups, stats, result.Diagnostics, period, now); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), report.RenderSummary(stats, result.Diagnostics, period, now))
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Wrote %s", outPath)))
	if stats.Ambiguous > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning(
			fmt.Sprintf("%d ambiguous matches need human review", stats.Ambiguous)))
	}
	return nil
}

func readAppointmentsFile(path string) ([]model.AppointmentRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open schedule %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return ingest.ReadAppointments(f)
}

func readRosterFile(path, sheet string) ([]model.RosterEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return ingest.ReadRoster(f, sheet)
}
