// Package clipboard copies generated text to the system clipboard
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrNoTool is returned when none of the known clipboard helpers is installed
var ErrNoTool = errors.New("no clipboard tool found")

// Writer puts text on a clipboard
type Writer interface {
	Write(ctx context.Context, text string) error
}

// ClipboardError reports a failed copy
type ClipboardError struct {
	Tool string
	Err  error
}

func (e *ClipboardError) Error() string {
	if e.Tool == "" {
		return fmt.Sprintf("copy to clipboard: %v", e.Err)
	}
	return fmt.Sprintf("copy to clipboard with %s: %v", e.Tool, e.Err)
}

func (e *ClipboardError) Unwrap() error { return e.Err }

// Tool is a clipboard helper command and the arguments that make it read stdin
type Tool struct {
	Name string
	Args []string
}

func (t Tool) String() string {
	return strings.TrimSpace(t.Name + " " + strings.Join(t.Args, " "))
}

// DefaultTools are tried in order
var DefaultTools = []Tool{
	{Name: "pbcopy"},
	{Name: "wl-copy"},
	{Name: "xclip", Args: []string{"-selection", "clipboard"}},
	{Name: "xsel", Args: []string{"--clipboard", "--input"}},
	{Name: "clip.exe"},
}

// System writes to the clipboard through the first installed helper tool
type System struct {
	exec   Executor
	tools  []Tool
	logger *slog.Logger
}

// NewSystem creates a System clipboard. A nil executor uses the os/exec one.
func NewSystem(executor Executor, logger *slog.Logger) *System {
	if logger == nil {
		logger = slog.Default()
	}
	if executor == nil {
		executor = NewExecutor(logger)
	}
	return &System{exec: executor, tools: DefaultTools, logger: logger}
}

// WithTools overrides the helper search order
func (s *System) WithTools(tools ...Tool) *System {
	s.tools = tools
	return s
}

// Write copies text using the first available tool.
// A tool that is installed but fails does not fall through to the next one.
func (s *System) Write(ctx context.Context, text string) error {
	for _, tool := range s.tools {
		if _, err := s.exec.LookPath(tool.Name); err != nil {
			continue
		}
		s.logger.Debug("copying to clipboard", "tool", tool.Name, "bytes", len(text))
		if err := s.exec.RunWithInput(ctx, tool.Name, tool.Args, strings.NewReader(text)); err != nil {
			return &ClipboardError{Tool: tool.Name, Err: err}
		}
		return nil
	}
	return &ClipboardError{Err: ErrNoTool}
}

// Func adapts a function to the Writer interface
type Func func(ctx context.Context, text string) error

func (f Func) Write(ctx context.Context, text string) error { return f(ctx, text) }
