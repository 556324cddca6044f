package cmd

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestPlatforms_Table(t *testing.T) {
	stdout, _ := setupCmdTest(t)
	rootCmd.SetArgs([]string{"platforms"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("platforms failed: %v", err)
	}

	out := stdout.String()
	for _, want := range []string{"facebook", "instagram", "linkedin", "twitter", "required", "No default platforms"} {
		if !strings.Contains(out, want) {
			t.Errorf("platforms output missing %q:\n%s", want, out)
		}
	}
}

func TestPlatforms_JSON(t *testing.T) {
	stdout, _ := setupCmdTest(t)
	rootCmd.SetArgs([]string{"platforms", "--json"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("platforms --json failed: %v", err)
	}

	var got []struct {
		Name          string `json:"name"`
		RequiresImage bool   `json:"requires_image"`
		Schedulable   bool   `json:"schedulable"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\nGot: %s", err, stdout.String())
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 platforms, got %d", len(got))
	}
	for _, p := range got {
		if p.Name == "instagram" && !p.RequiresImage {
			t.Error("instagram should require an image")
		}
		if p.Name == "twitter" && p.Schedulable {
			t.Error("twitter should not be schedulable")
		}
	}
}

func TestPlatforms_ConfiguredSubset(t *testing.T) {
	stdout, _ := setupCmdTest(t)
	cfgYAML := "platforms:\n  available: [linkedin, facebook]\n  default: [linkedin]\n"
	if err := os.WriteFile(".contentctl.yaml", []byte(cfgYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	rootCmd.SetArgs([]string{"platforms"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("platforms failed: %v", err)
	}

	out := stdout.String()
	if strings.Contains(out, "instagram") {
		t.Errorf("instagram should not be listed:\n%s", out)
	}
	if !strings.Contains(out, "Default platforms: linkedin") {
		t.Errorf("expected default platforms line:\n%s", out)
	}
}
