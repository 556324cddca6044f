package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var docsCmd = &cobra.Command{
	Use:    "docs",
	Short:  "Generate man pages or markdown reference",
	Hidden: true,
	Long: `Generate reference documentation for every contentctl command.

Examples:
  contentctl docs --format man --output ./man
  contentctl docs --format markdown --output ./docs/cli`,
	Args: cobra.NoArgs,
	RunE: runDocs,
}

func init() {
	rootCmd.AddCommand(docsCmd)

	docsCmd.Flags().String("format", "man", "output format: man or markdown")
	docsCmd.Flags().String("output", ".", "directory to write files to")
}

func runDocs(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	dir, _ := cmd.Flags().GetString("output")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	rootCmd.DisableAutoGenTag = true

	switch format {
	case "man":
		header := &doc.GenManHeader{
			Title:   "CONTENTCTL",
			Section: "1",
			Source:  "contentctl " + version,
		}
		return doc.GenManTree(rootCmd, header, dir)
	case "markdown", "md":
		return doc.GenMarkdownTree(rootCmd, dir)
	default:
		return usageError("invalid --format %q: must be man or markdown", format)
	}
}
