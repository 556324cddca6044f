package clipboard

import (
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"testing"
)

func TestDefaultExecutor_RunWithInput(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	e := NewExecutor(slog.Default())

	err := e.RunWithInput(context.Background(), "sh", []string{"-c", "cat >/dev/null"}, strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDefaultExecutor_RunWithInput_StderrInError(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	e := NewExecutor(nil)

	err := e.RunWithInput(context.Background(), "sh", []string{"-c", "echo no display >&2; exit 1"}, strings.NewReader(""))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "no display") {
		t.Errorf("expected stderr in error, got %q", err.Error())
	}
}

func TestDefaultExecutor_LookPath(t *testing.T) {
	e := NewExecutor(nil)
	if _, err := e.LookPath("definitely-not-a-clipboard-tool"); err == nil {
		t.Error("expected error for missing tool")
	}
}
