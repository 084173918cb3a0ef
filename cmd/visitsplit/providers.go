package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clinicops/visitsplit/internal/cli"
	"github.com/clinicops/visitsplit/internal/config"
)

func providersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List providers found in a schedule and configure short names",
		Long: `List every distinct provider name in an appointment schedule with its row
count, and optionally configure the display short names used for report
filenames.

Examples:
  # See who appears in the schedule
  visitsplit providers -a schedule.csv

  # Interactively fill in short names and save them to the config file
  visitsplit providers -a schedule.csv --configure --write config.yaml`,
		RunE: runProviders,
	}

	cmd.Flags().StringP("appointments", "a", "", "appointment schedule CSV (required)")
	cmd.Flags().Bool("configure", false, "prompt for a short name per provider")
	cmd.Flags().String("write", "", "write the resulting mapping to this config file")
	_ = cmd.MarkFlagRequired("appointments")

	return cmd
}

func runProviders(cmd *cobra.Command, _ []string) error {
	apptPath, _ := cmd.Flags().GetString("appointments")
	configure, _ := cmd.Flags().GetBool("configure")
	writePath, _ := cmd.Flags().GetString("write")

	appointments, err := readAppointmentsFile(config.ExpandPath(apptPath))
	if err != nil {
		return err
	}

	counts := make(map[string]int)
	for _, appt := range appointments {
		if appt.RawProviderName != "" {
			counts[appt.RawProviderName]++
		}
	}
	providers := make([]string, 0, len(counts))
	for p := range counts {
		providers = append(providers, p)
	}
	sort.Strings(providers)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatTitle("Providers in schedule"))
	mapping := config.Providers()
	for _, p := range providers {
		label := fmt.Sprintf("%-40s %4d rows", p, counts[p])
		if short, ok := mapping.Resolve(p); ok {
			fmt.Fprintf(out, "  %s  -> %s\n", label, short)
		} else {
			fmt.Fprintf(out, "  %s  %s\n", label, cli.WarningStyle.Render("(unmapped)"))
		}
	}

	if !configure {
		return nil
	}

	prompter := cli.NewPrompter(cmd.InOrStdin(), out)
	configured, err := prompter.ConfigureProviders(providers)
	if err != nil {
		return err
	}
	viper.Set(config.KeyProviders, map[string]string(configured))

	if writePath == "" {
		fmt.Fprintln(out, cli.FormatWarning("mapping not saved, pass --write to persist it"))
		return nil
	}
	if err := viper.WriteConfigAs(config.ExpandPath(writePath)); err != nil {
		return fmt.Errorf("failed to write config %s: %w", writePath, err)
	}
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Wrote provider mapping to %s", writePath)))
	return nil
}
