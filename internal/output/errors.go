package output

import (
	"errors"
	"fmt"

	"github.com/fatih/color"

	"github.com/vscj1234/content-agent-langgraph/internal/clipboard"
	"github.com/vscj1234/content-agent-langgraph/internal/generation"
)

// Exit code constants
const (
	ExitSuccess    = 0
	ExitGeneral    = 1
	ExitValidation = 2
	ExitServer     = 3
	ExitConfig     = 4
	ExitTimeout    = 5
	ExitTransport  = 6
)

// CLIError is a structured error with user-facing context
type CLIError struct {
	Summary    string
	Detail     string
	Suggestion string
	ExitCode   int
}

// Error implements the error interface, returning the summary
func (e *CLIError) Error() string {
	return e.Summary
}

// FromError maps a generation or clipboard failure to a CLIError.
// Errors that are already a *CLIError are returned unchanged.
func FromError(err error, endpoint string) *CLIError {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	var ve *generation.ValidationError
	if errors.As(err, &ve) {
		return &CLIError{
			Summary:    ve.Message,
			Detail:     fmt.Sprintf("invalid %s (%s)", ve.Field, ve.Kind),
			Suggestion: validationSuggestion(ve.Kind),
			ExitCode:   ExitValidation,
		}
	}

	var te *generation.TransportError
	if errors.As(err, &te) {
		if te.Timeout() {
			return &CLIError{
				Summary:    "Timed out waiting for the content service",
				Detail:     te.Err.Error(),
				Suggestion: "Increase --timeout or set api.timeout to 0 to wait indefinitely",
				ExitCode:   ExitTimeout,
			}
		}
		return &CLIError{
			Summary:    generation.FallbackMessage,
			Detail:     te.Err.Error(),
			Suggestion: fmt.Sprintf("Check that the content service is reachable at %s", endpoint),
			ExitCode:   ExitTransport,
		}
	}

	var se *generation.ServerError
	if errors.As(err, &se) {
		e := &CLIError{
			Summary:  generation.UserMessage(se),
			ExitCode: ExitServer,
		}
		if se.Err != nil {
			e.Detail = se.Err.Error()
		}
		if se.StatusCode != 0 {
			e.Detail = joinDetail(fmt.Sprintf("HTTP %d", se.StatusCode), e.Detail)
		}
		return e
	}

	var ce *clipboard.ClipboardError
	if errors.As(err, &ce) {
		e := &CLIError{
			Summary:  "Failed to copy to clipboard",
			Detail:   ce.Err.Error(),
			ExitCode: ExitGeneral,
		}
		if errors.Is(err, clipboard.ErrNoTool) {
			e.Suggestion = "Install pbcopy, wl-copy, xclip or xsel"
		}
		return e
	}

	return &CLIError{
		Summary:  err.Error(),
		ExitCode: ExitGeneral,
	}
}

func validationSuggestion(kind generation.ValidationKind) string {
	switch kind {
	case generation.KindMissingTopic:
		return "Pass --topic"
	case generation.KindMissingPlatform, generation.KindInvalidPlatform:
		return "Run 'contentctl platforms' to see available platforms"
	case generation.KindInvalidSchedule, generation.KindScheduleTooSoon:
		return "Pass --schedule-at in YYYY-MM-DDTHH:MM form"
	default:
		return ""
	}
}

func joinDetail(a, b string) string {
	if b == "" {
		return a
	}
	return a + ": " + b
}

// FormatError prints a structured error message to stderr
func (p *Printer) FormatError(e *CLIError) {
	if p.useColors {
		color.New(color.FgRed, color.Bold).Fprintf(p.err, "Error: %s\n", e.Summary)
		if e.Detail != "" {
			fmt.Fprintf(p.err, "  Cause: %s\n", e.Detail)
		}
		if e.Suggestion != "" {
			color.New(color.FgCyan).Fprintf(p.err, "  Suggestion: %s\n", e.Suggestion)
		}
	} else {
		fmt.Fprintf(p.err, "[ERROR] %s\n", e.Summary)
		if e.Detail != "" {
			fmt.Fprintf(p.err, "  Cause: %s\n", e.Detail)
		}
		if e.Suggestion != "" {
			fmt.Fprintf(p.err, "  Suggestion: %s\n", e.Suggestion)
		}
	}
}
