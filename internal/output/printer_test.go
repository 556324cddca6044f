package output

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func newTestPrinter(quiet bool) (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	p := NewPrinter(PrinterOptions{
		ColorMode: ColorNever,
		Quiet:     quiet,
		Out:       &stdout,
		Err:       &stderr,
	})
	return p, &stdout, &stderr
}

func TestParseColorMode_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  ColorMode
	}{
		{"auto", ColorAuto},
		{"always", ColorAlways},
		{"never", ColorNever},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColorMode(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseColorMode(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseColorMode_Invalid(t *testing.T) {
	_, err := ParseColorMode("sometimes")
	if err == nil {
		t.Error("expected error for invalid color mode, got nil")
	}
}

func TestResolveColors_Always(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if !ResolveColors(ColorAlways, false) {
		t.Error("ResolveColors(ColorAlways, false) with NO_COLOR=1 should return true")
	}
}

func TestResolveColors_Never(t *testing.T) {
	if ResolveColors(ColorNever, true) {
		t.Error("ResolveColors(ColorNever, true) should return false")
	}
}

func TestResolveColors_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	if ResolveColors(ColorAuto, true) {
		t.Error("ResolveColors(ColorAuto, true) with NO_COLOR set should return false")
	}
}

func TestResolveColors_TermDumb(t *testing.T) {
	os.Unsetenv("NO_COLOR")
	t.Setenv("TERM", "dumb")
	if ResolveColors(ColorAuto, true) {
		t.Error("ResolveColors(ColorAuto, true) with TERM=dumb should return false")
	}
}

func TestResolveColors_AutoDefault(t *testing.T) {
	os.Unsetenv("NO_COLOR")
	t.Setenv("TERM", "xterm-256color")

	if !ResolveColors(ColorAuto, true) {
		t.Error("ResolveColors(ColorAuto, true) should return true when no overrides")
	}
	if ResolveColors(ColorAuto, false) {
		t.Error("ResolveColors(ColorAuto, false) should return false when no overrides")
	}
}

func TestQuietMode_InfoSuppressed(t *testing.T) {
	p, stdout, stderr := newTestPrinter(true)

	p.Info("should not appear")
	p.Success("should not appear")
	p.Warning("should not appear")
	p.Header("should not appear")
	p.Print("should not appear")
	p.Table([]string{"A"}).Render()

	if stdout.Len() != 0 {
		t.Errorf("expected empty stdout in quiet mode, got: %q", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Errorf("expected empty stderr in quiet mode (except Error), got: %q", stderr.String())
	}
}

func TestQuietMode_ErrorNotSuppressed(t *testing.T) {
	p, _, stderr := newTestPrinter(true)

	p.Error("this should appear")

	if stderr.Len() == 0 {
		t.Error("Error output should not be suppressed in quiet mode")
	}
}

func TestPrinter_PlainPrefixes(t *testing.T) {
	p, stdout, stderr := newTestPrinter(false)

	p.Success("done")
	p.Warning("careful")
	p.Header("Caption")

	if !strings.Contains(stdout.String(), "[OK] done") {
		t.Errorf("missing success prefix: %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "Caption\n-------") {
		t.Errorf("missing header underline: %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "[WARN] careful") {
		t.Errorf("missing warning prefix: %q", stderr.String())
	}
}

func TestStateBadge_NoColor(t *testing.T) {
	p, _, _ := newTestPrinter(false)
	if got := p.StateBadge("loading"); got != "[loading]" {
		t.Errorf("StateBadge(loading) = %q, want [loading]", got)
	}
}

func TestIsQuiet(t *testing.T) {
	p, _, _ := newTestPrinter(true)
	if !p.IsQuiet() {
		t.Error("IsQuiet should return true")
	}
	p2, _, _ := newTestPrinter(false)
	if p2.IsQuiet() {
		t.Error("IsQuiet should return false")
	}
}

func TestNewPrinter_DefaultWriters(t *testing.T) {
	p := NewPrinter(PrinterOptions{})
	if p.Out() != os.Stdout {
		t.Error("expected stdout as default output")
	}
}
