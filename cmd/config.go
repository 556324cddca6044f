package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Long: `Display the current contentctl configuration after file, environment
(CONTENTCTL_*) and flag overrides.

Examples:
  contentctl config                # Show all config
  contentctl config --path         # Show config file path
  contentctl config --json         # Output as JSON`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().Bool("path", false, "show config file path")
	configCmd.Flags().Bool("json", false, "output as JSON")
}

func runConfig(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)

	showPath, _ := cmd.Flags().GetBool("path")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if showPath {
		if cfg.File == "" {
			printer.Info("No config file found (using defaults)")
		} else {
			printer.Info("Config file: %s", cfg.File)
		}
		return nil
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}

	printer.Header("Current Configuration")

	table := printer.Table([]string{"KEY", "VALUE"})
	table.AddRow([]string{"api.base_url", cfg.API.BaseURL})
	table.AddRow([]string{"api.generate_path", cfg.API.GeneratePath})
	table.AddRow([]string{"api.timeout", cfg.API.Timeout.String()})
	table.AddRow([]string{"platforms.available", strings.Join(cfg.Platforms.Available, ", ")})
	table.AddRow([]string{"platforms.default", strings.Join(cfg.Platforms.Default, ", ")})
	table.AddRow([]string{"progress.interval", cfg.Progress.Interval.String()})
	table.AddRow([]string{"progress.stages", strings.Join(cfg.Progress.Stages, " → ")})
	table.AddRow([]string{"notifications.dismiss_after", cfg.Notifications.DismissAfter.String()})
	table.AddRow([]string{"notifications.exit_duration", cfg.Notifications.ExitDuration.String()})
	table.AddRow([]string{"schedule.min_lead", cfg.Schedule.MinLead.String()})
	table.AddRow([]string{"schedule.timezone", cfg.Schedule.Timezone})
	table.AddRow([]string{"logging.level", cfg.Logging.Level})
	table.AddRow([]string{"logging.format", cfg.Logging.Format})
	table.AddRow([]string{"output.colors", fmt.Sprintf("%v", cfg.Output.Colors)})
	table.AddRow([]string{"output.progress", fmt.Sprintf("%v", cfg.Output.Progress)})
	table.Render()

	printer.Print("")
	printer.Info("Generate endpoint: %s", cfg.GenerateURL())
	printer.PrintHints("config")

	return nil
}
