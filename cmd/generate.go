package cmd

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vscj1234/content-agent-langgraph/internal/clipboard"
	"github.com/vscj1234/content-agent-langgraph/internal/controller"
	"github.com/vscj1234/content-agent-langgraph/internal/generation"
	"github.com/vscj1234/content-agent-langgraph/internal/notify"
	"github.com/vscj1234/content-agent-langgraph/internal/output"
	"github.com/vscj1234/content-agent-langgraph/internal/platform"
	"github.com/vscj1234/content-agent-langgraph/internal/schedule"
)

// newClipboard is replaced in tests
var newClipboard = func() clipboard.Writer {
	return clipboard.NewSystem(nil, logger)
}

var generateCmd = &cobra.Command{
	Use:     "generate [topic]",
	Aliases: []string{"gen"},
	Short:   "Generate a caption, post content and image for a topic",
	Long: `Send one generate request to the content service and print the result.

The topic may be given with --topic or as arguments. At least one platform is
required; platforms.default from the config is used when --platform is omitted.
With --schedule-at the post is scheduled instead of published immediately; the
time is read in schedule.timezone and must be at least schedule.min_lead ahead.

Examples:
  contentctl generate --topic "Product launch" --platform linkedin
  contentctl generate "Summer sale" -p facebook -p instagram --image banner.png
  contentctl generate -t "Webinar" -p linkedin --schedule-at 2026-10-20T09:00
  contentctl generate -t "Webinar" -p linkedin --json
  contentctl generate -t "Webinar" -p linkedin --copy caption`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("topic", "t", "", "topic to write about")
	generateCmd.Flags().StringSliceP("platform", "p", nil, "target platform (repeatable or comma separated)")
	generateCmd.Flags().String("schedule-at", "", "post later at this time (YYYY-MM-DDTHH:MM)")
	generateCmd.Flags().String("image", "", "image to attach (preview only)")
	generateCmd.Flags().Duration("timeout", 0, "give up after this long (default api.timeout, 0 waits indefinitely)")
	generateCmd.Flags().Bool("json", false, "output the result as JSON")
	generateCmd.Flags().String("copy", "", "copy caption or content to the clipboard")

	_ = generateCmd.RegisterFlagCompletionFunc("platform", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return platform.NewRegistry().Names(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = generateCmd.RegisterFlagCompletionFunc("copy", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{string(controller.CopyCaption), string(controller.CopyContent)}, cobra.ShellCompDirectiveNoFileComp
	})
}

// generateOutput is the --json document
type generateOutput struct {
	Success      bool     `json:"success"`
	Topic        string   `json:"topic"`
	Platforms    []string `json:"platforms"`
	ScheduleTime *string  `json:"schedule_time"`
	Caption      string   `json:"caption"`
	Content      string   `json:"content"`
	ImageURL     string   `json:"image_url,omitempty"`
	Message      string   `json:"message,omitempty"`
}

// exitNotifier drops error notifications; generate reports failures through its exit status
type exitNotifier struct {
	*notify.Center
}

func (n exitNotifier) Show(level notify.Level, message string) uint64 {
	if level == notify.Error {
		return 0
	}
	return n.Center.Show(level, message)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	platforms, _ := cmd.Flags().GetStringSlice("platform")
	scheduleAt, _ := cmd.Flags().GetString("schedule-at")
	image, _ := cmd.Flags().GetString("image")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	copyTarget, _ := cmd.Flags().GetString("copy")

	if topic == "" && len(args) > 0 {
		topic = strings.Join(args, " ")
	}
	if len(platforms) == 0 {
		platforms = cfg.Platforms.Default
	}

	target := controller.Target(strings.ToLower(copyTarget))
	if copyTarget != "" && target != controller.CopyCaption && target != controller.CopyContent {
		return usageError("invalid --copy value %q: must be caption or content", copyTarget)
	}

	timeout := cfg.API.Timeout
	if cmd.Flags().Changed("timeout") {
		timeout, _ = cmd.Flags().GetDuration("timeout")
	}

	printer := newPrinter(cmd)
	viewPrinter := printer
	if jsonOutput {
		viewPrinter = output.NewPrinter(output.PrinterOptions{Quiet: true, Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()})
	}

	client, err := generation.NewClient(generation.ClientOptions{
		Endpoint: cfg.GenerateURL(),
		Logger:   logger,
	})
	if err != nil {
		return &output.CLIError{
			Summary:  "Invalid content service endpoint",
			Detail:   err.Error(),
			ExitCode: output.ExitConfig,
		}
	}

	center := newNotificationCenter()
	defer center.Close()

	view := output.NewTerminalView(viewPrinter, cfg.Output.Progress)
	view.Watch(center)

	ctrl := newController(client, view, exitNotifier{center})
	defer ctrl.Close()

	form := controller.FormState{
		Topic:          topic,
		Platforms:      platforms,
		ScheduleOption: schedule.Now,
	}
	if scheduleAt != "" {
		ctrl.SelectScheduleOption(schedule.Later)
		form.ScheduleOption = schedule.Later
		form.ScheduleTime = scheduleAt
	}
	if image != "" {
		if err := ctrl.Attach(image); err != nil {
			return &output.CLIError{
				Summary:    "Could not attach image",
				Detail:     err.Error(),
				Suggestion: "Check the --image path",
				ExitCode:   output.ExitValidation,
			}
		}
		form.Attachment = image
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	res, err := ctrl.SubmitForm(ctx, form)
	if err != nil {
		return err
	}
	logger.Debug("generate finished", "elapsed", time.Since(start))

	if target != "" {
		if err := ctrl.Copy(ctx, target); err != nil {
			return err
		}
	}

	if jsonOutput {
		snap := ctrl.Snapshot()
		req := snap.Submitted
		out := generateOutput{
			Success:      res.Success,
			Topic:        req.Topic,
			Platforms:    req.Platforms,
			ScheduleTime: req.ScheduleTime,
			Caption:      snap.Results.Caption,
			Content:      snap.Results.Content,
			Message:      res.Message,
		}
		if snap.ImageVisible() {
			out.ImageURL = snap.Results.ImageURL
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	printer.PrintHints("generate")
	return nil
}

// withTimeout bounds ctx by d; zero leaves it unbounded
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}

func newNotificationCenter() *notify.Center {
	return notify.NewCenter(notify.Options{
		DismissAfter: cfg.Notifications.DismissAfter,
		ExitDuration: cfg.Notifications.ExitDuration,
	})
}

func newController(gen controller.Generator, view controller.View, notifier controller.Notifier) *controller.Controller {
	return controller.New(gen, view, controller.Options{
		Platforms:     platform.NewRegistryFor(cfg.Platforms.Available),
		Stages:        cfg.Progress.Stages,
		StageInterval: cfg.Progress.Interval,
		MinLead:       cfg.Schedule.MinLead,
		Location:      cfg.Location(),
		Clipboard:     newClipboard(),
		Notifier:      notifier,
		Logger:        logger,
	})
}
