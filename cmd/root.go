// Package cmd contains all CLI commands for contentctl
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vscj1234/content-agent-langgraph/internal/config"
	"github.com/vscj1234/content-agent-langgraph/internal/output"
)

var (
	cfgFile   string
	verbose   bool
	quiet     bool
	colorMode string
	baseURL   string
	cfg       *config.Config
	logger    *slog.Logger
	version   = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "contentctl",
	Short: "Social media content generator CLI",
	Long: `contentctl drives the content generator service from the terminal.

It validates a topic and a set of platforms, shows progress while the
service crawls context and writes the post, and prints the caption,
content and image link that come back.

Example usage:
  contentctl generate --topic "Product launch" --platform linkedin
  contentctl generate -t "Team offsite" -p facebook -p instagram --schedule-at 2026-10-20T09:00
  contentctl interactive          # Prompt for topics and copy results
  contentctl platforms            # List available platforms`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

// HandleError prints err and returns the process exit code for it
func HandleError(err error) int {
	if err == nil {
		return output.ExitSuccess
	}
	colors := true
	if cfg != nil {
		colors = cfg.Output.Colors
	}
	mode, _ := output.ParseColorMode(colorMode)
	printer := output.NewPrinter(output.PrinterOptions{ColorMode: mode, ConfigColors: colors})

	cliErr := cliErrorFor(err)
	printer.FormatError(cliErr)
	return cliErr.ExitCode
}

func cliErrorFor(err error) *output.CLIError {
	endpoint := ""
	if cfg != nil {
		endpoint = cfg.GenerateURL()
	}
	return output.FromError(err, endpoint)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .contentctl.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress everything but errors and results")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "color output: auto, always, or never")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "content service base URL (overrides api.base_url)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	if _, err := output.ParseColorMode(colorMode); err != nil {
		return &output.CLIError{
			Summary:  err.Error(),
			ExitCode: output.ExitValidation,
		}
	}

	loaded, err := config.Load(cfgFile)
	if err != nil {
		return &output.CLIError{
			Summary:    "Failed to load configuration",
			Detail:     err.Error(),
			Suggestion: "Check .contentctl.yaml syntax or use --config flag",
			ExitCode:   output.ExitConfig,
		}
	}

	if baseURL != "" {
		loaded.API.BaseURL = baseURL
		if err := config.Validate(loaded); err != nil {
			return &output.CLIError{
				Summary:  "Invalid --base-url",
				Detail:   err.Error(),
				ExitCode: output.ExitConfig,
			}
		}
	}
	cfg = loaded

	logger = newLogger(cfg.Logging)

	logger.Debug("configuration loaded",
		"config_file", cfg.File,
		"endpoint", cfg.GenerateURL(),
		"platforms", cfg.Platforms.Available,
		"timezone", cfg.Schedule.Timezone,
	)

	return nil
}

func newLogger(lc config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch lc.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// newPrinter builds the printer for cmd from the global flags and config
func newPrinter(cmd *cobra.Command) *output.Printer {
	mode, _ := output.ParseColorMode(colorMode)
	return output.NewPrinter(output.PrinterOptions{
		ColorMode:    mode,
		ConfigColors: cfg.Output.Colors,
		Quiet:        quiet,
		Out:          cmd.OutOrStdout(),
		Err:          cmd.ErrOrStderr(),
	})
}

func usageError(format string, args ...any) error {
	return &output.CLIError{
		Summary:  fmt.Sprintf(format, args...),
		ExitCode: output.ExitValidation,
	}
}
