package cmd

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vscj1234/content-agent-langgraph/internal/output"
	"github.com/vscj1234/content-agent-langgraph/internal/platform"
)

var platformsCmd = &cobra.Command{
	Use:     "platforms",
	Aliases: []string{"ls"},
	Short:   "List available platforms",
	Long: `List the platforms content can be generated for, with the rules the
content service applies to each.

Examples:
  contentctl platforms         # List platforms
  contentctl platforms --json  # Output as JSON`,
	Args: cobra.NoArgs,
	RunE: runPlatforms,
}

func init() {
	rootCmd.AddCommand(platformsCmd)

	platformsCmd.Flags().Bool("json", false, "output as JSON")
}

func runPlatforms(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)
	registry := platform.NewRegistryFor(cfg.Platforms.Available)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(registry.All())
	}

	return outputPlatformList(printer, registry)
}

func outputPlatformList(printer *output.Printer, registry *platform.Registry) error {
	printer.Header("Available Platforms")

	table := printer.Table([]string{"PLATFORM", "NAME", "DESCRIPTION", "IMAGE", "SCHEDULING"})
	for _, p := range registry.All() {
		image := ""
		if p.RequiresImage {
			image = "required"
		}
		scheduling := "yes"
		if !p.Schedulable {
			scheduling = "no"
		}
		table.AddRow([]string{
			printer.Bold(p.Name),
			p.Label(),
			p.Description,
			image,
			scheduling,
		})
	}
	table.Render()
	printer.Print("")

	if len(cfg.Platforms.Default) > 0 {
		printer.Info("Default platforms: %s", strings.Join(cfg.Platforms.Default, ", "))
	} else {
		printer.Info("No default platforms; pass --platform to generate")
	}
	printer.PrintHints("platforms")
	return nil
}
