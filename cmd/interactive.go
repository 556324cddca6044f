package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vscj1234/content-agent-langgraph/internal/controller"
	"github.com/vscj1234/content-agent-langgraph/internal/generation"
	"github.com/vscj1234/content-agent-langgraph/internal/output"
	"github.com/vscj1234/content-agent-langgraph/internal/schedule"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i"},
	Short:   "Fill in the generate form at a prompt, repeatedly",
	Long: `Prompt for a topic, platforms, schedule and image, submit, and then act on
the results: copy the caption or content, start a new post, or quit.

A failed or rejected submission returns to the topic prompt. Press Ctrl-D to
leave at any prompt.

Examples:
  contentctl interactive
  contentctl i --base-url http://content.internal:5000`,
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

// prompter reads one answer per line
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func (p *prompter) ask(label string) (string, bool) {
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		fmt.Fprintln(p.out)
		return "", false
	}
	return strings.TrimSpace(p.in.Text()), true
}

func runInteractive(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)

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

	view := output.NewTerminalView(printer, cfg.Output.Progress)
	view.Watch(center)

	ctrl := newController(client, view, center)
	defer ctrl.Close()

	p := &prompter{in: bufio.NewScanner(cmd.InOrStdin()), out: cmd.OutOrStdout()}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	printer.Header("Content generator")
	printer.Print("Endpoint: %s", cfg.GenerateURL())

	for {
		form, ok := readForm(p, ctrl)
		if !ok {
			return nil
		}

		submitCtx, cancel := withTimeout(ctx, cfg.API.Timeout)
		_, err := ctrl.SubmitForm(submitCtx, form)
		cancel()
		if err != nil {
			// Reported through the notification center; the form is shown again.
			logger.Debug("submission failed", "error", err)
			continue
		}

		if !resultActions(ctx, p, ctrl) {
			return nil
		}
		ctrl.Reset()
	}
}

// readForm prompts for every field of the form. It returns false on end of input.
func readForm(p *prompter, ctrl *controller.Controller) (controller.FormState, bool) {
	var form controller.FormState

	topic, ok := p.ask("Topic: ")
	if !ok {
		return form, false
	}
	form.Topic = topic

	label := "Platforms (comma separated): "
	if len(cfg.Platforms.Default) > 0 {
		label = fmt.Sprintf("Platforms (comma separated) [%s]: ", strings.Join(cfg.Platforms.Default, ","))
	}
	answer, ok := p.ask(label)
	if !ok {
		return form, false
	}
	if answer == "" {
		form.Platforms = append([]string(nil), cfg.Platforms.Default...)
	} else {
		form.Platforms = strings.Split(answer, ",")
	}

	for {
		answer, ok = p.ask("Post now or later? [now]: ")
		if !ok {
			return form, false
		}
		opt, err := schedule.ParseOption(answer)
		if err != nil {
			fmt.Fprintln(p.out, err)
			continue
		}
		form.ScheduleOption = opt
		break
	}

	earliest := ctrl.SelectScheduleOption(form.ScheduleOption)
	if form.ScheduleOption == schedule.Later {
		at, ok := p.ask(fmt.Sprintf("Schedule time (YYYY-MM-DDTHH:MM, %s or later): ", schedule.Format(earliest, cfg.Location())))
		if !ok {
			return form, false
		}
		form.ScheduleTime = at
	}

	image, ok := p.ask("Image path (optional): ")
	if !ok {
		return form, false
	}
	if image != "" {
		if err := ctrl.Attach(image); err == nil {
			form.Attachment = image
		}
	}

	return form, true
}

// resultActions handles copy requests until the user asks for a new post (true) or quits (false)
func resultActions(ctx context.Context, p *prompter, ctrl *controller.Controller) bool {
	for {
		answer, ok := p.ask("[caption] copy caption, [content] copy content, [new] post, [quit]: ")
		if !ok {
			return false
		}
		switch strings.ToLower(answer) {
		case "caption":
			copyResult(ctx, ctrl, controller.CopyCaption)
		case "content":
			copyResult(ctx, ctrl, controller.CopyContent)
		case "", "new", "n", "reset":
			return true
		case "quit", "q", "exit":
			return false
		default:
			fmt.Fprintf(p.out, "unknown action %q\n", answer)
		}
	}
}

func copyResult(ctx context.Context, ctrl *controller.Controller, target controller.Target) {
	if err := ctrl.Copy(ctx, target); err != nil && !errors.Is(err, controller.ErrNothingToCopy) {
		logger.Debug("copy failed", "target", target, "error", err)
	}
}
