package clipboard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Executor runs clipboard helper commands
type Executor interface {
	LookPath(name string) (string, error)
	RunWithInput(ctx context.Context, cmd string, args []string, stdin io.Reader) error
}

// DefaultExecutor implements Executor using os/exec
type DefaultExecutor struct {
	env    []string
	logger *slog.Logger
}

// NewExecutor creates a new command executor
func NewExecutor(logger *slog.Logger) *DefaultExecutor {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultExecutor{
		env:    os.Environ(),
		logger: logger,
	}
}

// LookPath reports where name is installed
func (e *DefaultExecutor) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// RunWithInput executes a command feeding stdin and waits for completion
func (e *DefaultExecutor) RunWithInput(ctx context.Context, cmd string, args []string, stdin io.Reader) error {
	e.logger.Debug("executing clipboard command",
		"cmd", cmd,
		"args", args,
	)

	c := exec.CommandContext(ctx, cmd, args...)
	c.Env = e.env
	c.Stdin = stdin

	var stderr bytes.Buffer
	c.Stderr = &stderr

	if err := c.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
