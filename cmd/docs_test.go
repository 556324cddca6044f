package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDocsMan(t *testing.T) {
	setupCmdTest(t)

	tmpDir := t.TempDir()
	rootCmd.SetArgs([]string{"docs", "--format", "man", "--output", tmpDir})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("docs --format man failed: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(tmpDir, "*.1"))
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(matches) == 0 {
		t.Error("no man pages generated")
	}
}

func TestDocsMarkdown(t *testing.T) {
	setupCmdTest(t)

	tmpDir := t.TempDir()
	rootCmd.SetArgs([]string{"docs", "--format", "markdown", "--output", tmpDir})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("docs --format markdown failed: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(tmpDir, "*.md"))
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(matches) == 0 {
		entries, _ := os.ReadDir(tmpDir)
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("no markdown files generated. Files in dir: %v", names)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "contentctl_generate.md")); err != nil {
		t.Errorf("expected generate page: %v", err)
	}
}

func TestDocsInvalidFormat(t *testing.T) {
	setupCmdTest(t)
	rootCmd.SetArgs([]string{"docs", "--format", "pdf", "--output", t.TempDir()})

	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
